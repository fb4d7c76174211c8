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

// Package issuer defines the boundary through which voting rewards leave
// the ledger. The ledger computes reward amounts; an issuer is responsible
// for actually delivering them.
package issuer

import (
	"errors"
	"fmt"

	"github.com/stakefund-io/stakefund/database"
	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stakefund-io/stakefund/database/types"
)

// ErrBalanceOverflow is returned when crediting a reward would exceed the
// range of the recipient's balance
var ErrBalanceOverflow = errors.New("reward balance overflow")

// RewardIssuer delivers a computed reward to a recipient. Implementations
// may credit an internal account, call an external payment system, or
// anything in between. Issue is called after the vote tally has been
// durably recorded; a failed issue does not undo the vote.
type RewardIssuer interface {
	Issue(recipient string, amount uint64) error
}

// AccountIssuer credits rewards to accounts kept in the ledger's own
// metadata store
type AccountIssuer struct {
	db *database.Database
}

// NewAccountIssuer creates an issuer backed by the given database
func NewAccountIssuer(db *database.Database) *AccountIssuer {
	return &AccountIssuer{db: db}
}

// Issue credits the reward amount to the recipient's account, creating the
// account if it doesn't exist yet
func (a *AccountIssuer) Issue(recipient string, amount uint64) error {
	txn := a.db.MetadataTxn(true)
	err := txn.Do(func(txn *database.Txn) error {
		account, err := a.db.GetAccount(recipient, txn)
		if err != nil {
			if !errors.Is(err, models.ErrAccountNotFound) {
				return err
			}
			account = &models.Account{Address: recipient}
		}
		balance := uint64(account.Balance)
		if balance+amount < balance {
			return ErrBalanceOverflow
		}
		account.Balance = types.Uint64(balance + amount)
		return a.db.SetAccount(account, txn)
	})
	if err != nil {
		return fmt.Errorf("failed to issue reward: %w", err)
	}
	return nil
}

// Balance returns the recipient's current reward balance. A recipient with
// no account has a zero balance.
func (a *AccountIssuer) Balance(recipient string) (uint64, error) {
	account, err := a.db.GetAccount(recipient, nil)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return uint64(account.Balance), nil
}
