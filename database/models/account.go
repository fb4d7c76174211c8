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

package models

import (
	"errors"

	"github.com/stakefund-io/stakefund/database/types"
)

var ErrAccountNotFound = errors.New("account not found")

// Account tracks the accumulated reward balance for an identity. It is
// written by the reward issuer boundary, not by the core voting engine.
type Account struct {
	ID      uint         `gorm:"primarykey"`
	Address string       `gorm:"uniqueIndex;size:128;not null"`
	Balance types.Uint64 `gorm:"not null"`
}

// TableName returns the table name
func (Account) TableName() string {
	return "account"
}
