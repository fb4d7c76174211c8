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

package plugin

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// PopulateCmdlineOptions registers a command line flag for every option of
// every registered plugin. Flags are named <type>-<plugin>-<option>, for
// example blob-badger-data-dir, and bind directly to the option's
// destination.
func PopulateCmdlineOptions(fs *pflag.FlagSet) error {
	for i := range pluginEntries {
		entry := &pluginEntries[i]
		for _, opt := range entry.Options {
			flagName := fmt.Sprintf(
				"%s-%s-%s",
				PluginTypeName(entry.Type),
				entry.Name,
				opt.Name,
			)
			switch opt.Type {
			case PluginOptionTypeString:
				dest, ok := opt.Dest.(*string)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s",
						flagName,
					)
				}
				fs.StringVar(dest, flagName, *dest, opt.Description)
			case PluginOptionTypeBool:
				dest, ok := opt.Dest.(*bool)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s",
						flagName,
					)
				}
				fs.BoolVar(dest, flagName, *dest, opt.Description)
			case PluginOptionTypeUint:
				dest, ok := opt.Dest.(*uint64)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s",
						flagName,
					)
				}
				fs.Uint64Var(dest, flagName, *dest, opt.Description)
			default:
				return fmt.Errorf(
					"unknown option type for option %s",
					flagName,
				)
			}
		}
	}
	return nil
}

// ProcessConfig applies plugin option values from a parsed config file.
// The outer map is keyed by plugin type name, then plugin name, then
// option name.
func ProcessConfig(cfg map[string]map[string]map[string]any) error {
	for typeName, plugins := range cfg {
		var pluginType PluginType
		switch typeName {
		case "blob":
			pluginType = PluginTypeBlob
		case "metadata":
			pluginType = PluginTypeMetadata
		default:
			return fmt.Errorf("unknown plugin type: %s", typeName)
		}
		for pluginName, options := range plugins {
			for optName, optValue := range options {
				if err := SetPluginOption(
					pluginType,
					pluginName,
					optName,
					optValue,
				); err != nil {
					return fmt.Errorf(
						"%s plugin %s option %s: %w",
						typeName,
						pluginName,
						optName,
						err,
					)
				}
			}
		}
	}
	return nil
}

// ProcessEnvVars applies plugin option values from the environment.
// Variables are named STAKEFUND_<TYPE>_<PLUGIN>_<OPTION>, for example
// STAKEFUND_BLOB_BADGER_DATA_DIR.
func ProcessEnvVars() error {
	for i := range pluginEntries {
		entry := &pluginEntries[i]
		for _, opt := range entry.Options {
			envName := strings.ToUpper(
				strings.ReplaceAll(
					fmt.Sprintf(
						"stakefund_%s_%s_%s",
						PluginTypeName(entry.Type),
						entry.Name,
						opt.Name,
					),
					"-",
					"_",
				),
			)
			envValue, ok := os.LookupEnv(envName)
			if !ok {
				continue
			}
			var value any
			switch opt.Type {
			case PluginOptionTypeString:
				value = envValue
			case PluginOptionTypeBool:
				v, err := strconv.ParseBool(envValue)
				if err != nil {
					return fmt.Errorf("invalid value for %s: %w", envName, err)
				}
				value = v
			case PluginOptionTypeUint:
				v, err := strconv.ParseUint(envValue, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid value for %s: %w", envName, err)
				}
				value = v
			default:
				return fmt.Errorf("unknown option type for %s", envName)
			}
			if err := SetPluginOption(
				entry.Type,
				entry.Name,
				opt.Name,
				value,
			); err != nil {
				return fmt.Errorf("applying %s: %w", envName, err)
			}
		}
	}
	return nil
}
