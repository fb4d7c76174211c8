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

package stakefund

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stakefund-io/stakefund/issuer"
)

type Config struct {
	promRegistry   prometheus.Registerer
	logger         *slog.Logger
	issuer         issuer.RewardIssuer
	timeNow        func() time.Time
	dataDir        string
	blobPlugin     string
	metadataPlugin string
	rewardPool     uint64
}

type ConfigOptionFunc func(*Config)

// NewConfig creates a new ledger config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default to no persistence
		dataDir:        "",
		blobPlugin:     "badger",
		metadataPlugin: "sqlite",
		rewardPool:     DefaultRewardPool,
		timeNow:        time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithDataDir specifies the persistent data directory to use. An empty
// string (the default) keeps all data in memory.
func WithDataDir(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithLogger specifies the logger to use. This defaults to discarding log
// output.
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithBlobPlugin specifies the blob store plugin to use. This defaults to
// badger.
func WithBlobPlugin(plugin string) ConfigOptionFunc {
	return func(c *Config) {
		c.blobPlugin = plugin
	}
}

// WithMetadataPlugin specifies the metadata store plugin to use. This
// defaults to sqlite.
func WithMetadataPlugin(plugin string) ConfigOptionFunc {
	return func(c *Config) {
		c.metadataPlugin = plugin
	}
}

// WithPrometheusRegistry specifies a prometheus registerer for ledger and
// event bus metrics
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithRewardPool specifies the scaling constant for proportional voting
// rewards. This defaults to DefaultRewardPool.
func WithRewardPool(pool uint64) ConfigOptionFunc {
	return func(c *Config) {
		c.rewardPool = pool
	}
}

// WithRewardIssuer specifies the reward issuer to delegate reward
// transfers to. This defaults to an account issuer crediting balances in
// the ledger's own store.
func WithRewardIssuer(iss issuer.RewardIssuer) ConfigOptionFunc {
	return func(c *Config) {
		c.issuer = iss
	}
}

// WithTimeSource specifies the function used to read the current time.
// This exists for tests that need deterministic voting windows and
// defaults to time.Now.
func WithTimeSource(timeNow func() time.Time) ConfigOptionFunc {
	return func(c *Config) {
		c.timeNow = timeNow
	}
}
