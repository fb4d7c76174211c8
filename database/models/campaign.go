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

var ErrCampaignNotFound = errors.New("campaign not found")

// Field caps match the fixed record layout of the original on-chain program.
const (
	CampaignNameMaxLen        = 64
	CampaignDescriptionMaxLen = 128
)

// Campaign represents a funding goal with an accumulating total contributed
// by donors. CurrentFunds is mutated only by validated donation increments
// and is always the exact sum of committed donations.
type Campaign struct {
	ID           uint         `gorm:"primarykey"`
	CampaignID   string       `gorm:"uniqueIndex;size:64;not null"`
	Creator      string       `gorm:"index;size:128;not null"`
	Name         string       `gorm:"size:64;not null"`
	Description  string       `gorm:"size:128"`
	TargetAmount types.Uint64 `gorm:"not null"`
	CurrentFunds types.Uint64 `gorm:"not null"`
	CreatedAt    int64        `gorm:"not null"` // unix seconds
}

// TableName returns the table name
func (Campaign) TableName() string {
	return "campaign"
}
