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

// Package stakefund implements a crowdfunding ledger with proportional
// stake-weighted governance. Contributors fund campaigns through immutable
// donation records, vote on time-bounded spending proposals, and earn
// rewards proportional to their share of the campaign's funds.
package stakefund

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/stakefund-io/stakefund/database"
	"github.com/stakefund-io/stakefund/event"
	"github.com/stakefund-io/stakefund/issuer"
)

// Ledger is the top-level handle for the funding/voting state machine. All
// operations are synchronous and atomic per entity; the ledger spawns no
// goroutines of its own outside the event bus.
type Ledger struct {
	config   Config
	db       *database.Database
	eventBus *event.EventBus
	issuer   issuer.RewardIssuer
	metrics  *ledgerMetrics
}

// New creates a ledger from the given config
func New(cfg Config) (*Ledger, error) {
	if cfg.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.timeNow == nil {
		cfg.timeNow = time.Now
	}
	if cfg.rewardPool == 0 {
		cfg.rewardPool = DefaultRewardPool
	}
	db, err := database.New(
		cfg.logger,
		cfg.dataDir,
		cfg.blobPlugin,
		cfg.metadataPlugin,
	)
	if err != nil {
		var tsErr database.CommitTimestampError
		if errors.As(err, &tsErr) {
			return nil, fmt.Errorf(
				"store consistency check failed, manual recovery needed: %w",
				err,
			)
		}
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	l := &Ledger{
		config:   cfg,
		db:       db,
		eventBus: event.NewEventBus(cfg.promRegistry, cfg.logger),
		issuer:   cfg.issuer,
	}
	if l.issuer == nil {
		l.issuer = issuer.NewAccountIssuer(db)
	}
	if cfg.promRegistry != nil {
		l.metrics = registerLedgerMetrics(cfg.promRegistry)
	}
	return l, nil
}

// Database returns the underlying database handle
func (l *Ledger) Database() *database.Database {
	return l.db
}

// EventBus returns the ledger's event bus for subscribing to campaign,
// donation, and proposal events
func (l *Ledger) EventBus() *event.EventBus {
	return l.eventBus
}

// Close shuts down the event bus and closes the underlying stores
func (l *Ledger) Close() error {
	l.eventBus.Stop()
	return l.db.Close()
}

func (l *Ledger) now() time.Time {
	return l.config.timeNow()
}
