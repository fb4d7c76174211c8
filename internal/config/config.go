// Copyright 2025 Stakefund Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/stakefund-io/stakefund/database/plugin"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "stakefund.config"

const (
	DefaultBlobPlugin     = "badger"
	DefaultMetadataPlugin = "sqlite"
)

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type Config struct {
	DataDir        string `yaml:"dataDir"        envconfig:"DATA_DIR"`
	MetadataPlugin string `yaml:"metadataPlugin" envconfig:"DATABASE_METADATA_PLUGIN"`
	BlobPlugin     string `yaml:"blobPlugin"     envconfig:"DATABASE_BLOB_PLUGIN"`
	RewardPool     uint64 `yaml:"rewardPool"     envconfig:"REWARD_POOL"`
	MetricsPort    uint   `yaml:"metricsPort"                                         split_words:"true"`
	Debug          bool   `yaml:"debug"`
}

// tempConfig wraps the main config so a config file can also carry
// per-plugin sections
type tempConfig struct {
	Config   *Config                   `yaml:"config,omitempty"`
	Blob     map[string]map[string]any `yaml:"blob,omitempty"`
	Metadata map[string]map[string]any `yaml:"metadata,omitempty"`
}

var globalConfig = &Config{
	DataDir:        ".stakefund",
	MetadataPlugin: DefaultMetadataPlugin,
	BlobPlugin:     DefaultBlobPlugin,
	RewardPool:     100,
	MetricsPort:    12798,
}

func LoadConfig(configFile string) (*Config, error) {
	if configFile == "" {
		// Check for a config file at ~/.stakefund/stakefund.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(
				homeDir,
				".stakefund",
				"stakefund.yaml",
			)
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
		if configFile == "" {
			systemPath := "/etc/stakefund/stakefund.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		var tempCfg tempConfig
		if err := yaml.Unmarshal(buf, &tempCfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}

		if tempCfg.Config != nil {
			// Overlay config values onto existing defaults
			configBytes, err := yaml.Marshal(tempCfg.Config)
			if err != nil {
				return nil, fmt.Errorf("error re-marshalling config: %w", err)
			}
			if err := yaml.Unmarshal(configBytes, globalConfig); err != nil {
				return nil, fmt.Errorf(
					"error parsing config section: %w",
					err,
				)
			}
		} else {
			// Treat the whole file as the main config
			if err := yaml.Unmarshal(buf, globalConfig); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}

		// Forward per-plugin sections to the plugin registry
		pluginConfig := make(map[string]map[string]map[string]any)
		if tempCfg.Blob != nil {
			pluginConfig["blob"] = tempCfg.Blob
		}
		if tempCfg.Metadata != nil {
			pluginConfig["metadata"] = tempCfg.Metadata
		}
		if len(pluginConfig) > 0 {
			if err := plugin.ProcessConfig(pluginConfig); err != nil {
				return nil, fmt.Errorf(
					"error processing plugin config: %w",
					err,
				)
			}
		}
	}

	// Process environment variables
	if err := envconfig.Process("stakefund", globalConfig); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := plugin.ProcessEnvVars(); err != nil {
		return nil, fmt.Errorf(
			"error processing plugin environment variables: %w",
			err,
		)
	}

	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
