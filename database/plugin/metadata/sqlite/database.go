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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stakefund-io/stakefund/database/types"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

const (
	metadataDbName = "metadata.sqlite"

	// Interval between automatic VACUUM runs on file-based stores
	vacuumInterval = 24 * time.Hour
)

var memDbCounter atomic.Int64

// MetadataStoreSqlite is a SQLite-based implementation of the metadata
// store. It provides persistent storage for campaign, donation, proposal,
// and reward account records.
type MetadataStoreSqlite struct {
	promRegistry prometheus.Registerer
	db           *gorm.DB
	logger       *slog.Logger
	timerVacuum  *time.Timer
	timerMutex   sync.Mutex
	vacuumWG     sync.WaitGroup
	// SQLite allows a single writer at a time. Serializing transactions
	// in-process avoids SQLITE_BUSY failures under concurrent submitters
	// while keeping each transaction linearizable.
	txMutex sync.Mutex
	dataDir string
	closed  bool
}

// New creates a SQLite metadata store. Uses an in-memory database if
// dataDir is empty.
func New(
	dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*MetadataStoreSqlite, error) {
	return NewWithOptions(
		WithDataDir(dataDir),
		WithLogger(logger),
		WithPromRegistry(promRegistry),
	)
}

// NewWithOptions creates a SQLite metadata store from the given options
func NewWithOptions(
	opts ...MetadataStoreSqliteOptionFunc,
) (*MetadataStoreSqlite, error) {
	db := &MetadataStoreSqlite{}
	for _, opt := range opts {
		if opt != nil {
			opt(db)
		}
	}
	if db.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		db.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	var metadataDb *gorm.DB
	var err error
	if db.dataDir == "" {
		// Use in-memory database when no data directory is specified, useful
		// for testing. cache=shared lets pooled connections see the same
		// database, and the unique name keeps separate store instances from
		// sharing state.
		dbName := fmt.Sprintf(
			"file:memdb%d?mode=memory&cache=shared",
			memDbCounter.Add(1),
		)
		metadataDb, err = gorm.Open(
			sqlite.Open(dbName),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(db.dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(db.dataDir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		metadataDbPath := filepath.Join(db.dataDir, metadataDbName)
		// WAL journal mode and a generous busy timeout for concurrent readers
		metadataConnOpts := "_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=cache_size(-50000)"
		metadataDb, err = gorm.Open(
			sqlite.Open(
				fmt.Sprintf("file:%s?%s", metadataDbPath, metadataConnOpts),
			),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
	}
	db.db = metadataDb
	if err := db.init(); err != nil {
		// MetadataStoreSqlite is available for recovery, so return it with error
		return db, err
	}
	return db, nil
}

func (d *MetadataStoreSqlite) init() error {
	// Enable otel query tracing
	if err := d.db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return fmt.Errorf("failed to enable tracing: %w", err)
	}
	// Create table schemas
	d.logger.Debug(fmt.Sprintf("creating table: %#v", &CommitTimestamp{}))
	if err := d.db.AutoMigrate(&CommitTimestamp{}); err != nil {
		return err
	}
	for _, model := range models.MigrateModels {
		d.logger.Debug(fmt.Sprintf("creating table: %#v", model))
		if err := d.db.AutoMigrate(model); err != nil {
			return err
		}
	}
	return nil
}

// Start begins background maintenance for the store
func (d *MetadataStoreSqlite) Start() error {
	if d.dataDir != "" {
		d.scheduleVacuum()
	}
	return nil
}

// Stop halts background maintenance for the store
func (d *MetadataStoreSqlite) Stop() error {
	d.timerMutex.Lock()
	if d.timerVacuum != nil {
		d.timerVacuum.Stop()
		d.timerVacuum = nil
	}
	d.timerMutex.Unlock()
	d.vacuumWG.Wait()
	return nil
}

// Close shuts down maintenance and closes the underlying SQLite database
func (d *MetadataStoreSqlite) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if err := d.Stop(); err != nil {
		return err
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying gorm DB handle
func (d *MetadataStoreSqlite) DB() *gorm.DB {
	return d.db
}

// sqliteTxn wraps a gorm transaction and implements types.Txn. It holds the
// store's transaction mutex until it finishes.
type sqliteTxn struct {
	store    *MetadataStoreSqlite
	db       *gorm.DB
	finished bool
}

func (t *sqliteTxn) Commit() error {
	if t.finished {
		return nil
	}
	t.finished = true
	defer t.store.txMutex.Unlock()
	if result := t.db.Commit(); result.Error != nil {
		return result.Error
	}
	return nil
}

func (t *sqliteTxn) Rollback() error {
	if t.finished {
		return nil
	}
	t.finished = true
	defer t.store.txMutex.Unlock()
	if result := t.db.Rollback(); result.Error != nil {
		return result.Error
	}
	return nil
}

// Transaction creates a new database transaction
func (d *MetadataStoreSqlite) Transaction() types.Txn {
	d.txMutex.Lock()
	return &sqliteTxn{
		store: d,
		db:    d.db.Begin(),
	}
}

// resolveDB returns the *gorm.DB for the given transaction, or the store's
// own handle if txn is nil. Returns ErrTxnWrongType for foreign transaction
// types.
func (d *MetadataStoreSqlite) resolveDB(txn types.Txn) (*gorm.DB, error) {
	if txn == nil {
		return d.db, nil
	}
	stx, ok := txn.(*sqliteTxn)
	if !ok || stx.db == nil {
		return nil, types.ErrTxnWrongType
	}
	if stx.db.Error != nil {
		return nil, stx.db.Error
	}
	return stx.db, nil
}

func (d *MetadataStoreSqlite) runVacuum() error {
	d.logger.Debug("starting database vacuum")
	if result := d.db.Exec("VACUUM"); result.Error != nil {
		return result.Error
	}
	d.logger.Debug("finished database vacuum")
	return nil
}

func (d *MetadataStoreSqlite) scheduleVacuum() {
	d.timerMutex.Lock()
	defer d.timerMutex.Unlock()
	if d.closed {
		return
	}
	d.timerVacuum = time.AfterFunc(vacuumInterval, func() {
		d.vacuumWG.Add(1)
		defer d.vacuumWG.Done()
		if err := d.runVacuum(); err != nil {
			d.logger.Error(
				"database vacuum failed",
				"component", "database",
				"error", err,
			)
		}
		d.scheduleVacuum()
	})
}
