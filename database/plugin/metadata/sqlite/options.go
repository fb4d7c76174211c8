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

package sqlite

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type MetadataStoreSqliteOptionFunc func(*MetadataStoreSqlite)

// WithDataDir specifies the persistent data directory. An empty value
// selects an in-memory database.
func WithDataDir(dataDir string) MetadataStoreSqliteOptionFunc {
	return func(d *MetadataStoreSqlite) {
		d.dataDir = dataDir
	}
}

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) MetadataStoreSqliteOptionFunc {
	return func(d *MetadataStoreSqlite) {
		d.logger = logger
	}
}

// WithPromRegistry specifies a prometheus.Registerer instance for metrics
func WithPromRegistry(
	registry prometheus.Registerer,
) MetadataStoreSqliteOptionFunc {
	return func(d *MetadataStoreSqlite) {
		d.promRegistry = registry
	}
}
