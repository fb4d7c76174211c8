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

var ErrDonationNotFound = errors.New("donation not found")

// Donation is an append-only record of one contribution to a campaign.
// Rows are created exactly once and never updated or deleted.
type Donation struct {
	ID         uint         `gorm:"primarykey"`
	DonationID string       `gorm:"uniqueIndex;size:64;not null"`
	CampaignID string       `gorm:"index:idx_donation_campaign;index:idx_donation_donor,priority:1;size:64;not null"`
	Donor      string       `gorm:"index:idx_donation_donor,priority:2;size:128;not null"`
	Amount     types.Uint64 `gorm:"not null"`
	CreatedAt  int64        `gorm:"not null"` // unix seconds
}

// TableName returns the table name
func (Donation) TableName() string {
	return "donation"
}
