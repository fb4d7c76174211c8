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

	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stakefund-io/stakefund/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetCampaign retrieves a campaign by its opaque identifier.
// Returns nil if no such campaign exists.
func (d *MetadataStoreSqlite) GetCampaign(
	campaignID string,
	txn types.Txn,
) (*models.Campaign, error) {
	var campaign models.Campaign
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"campaign_id = ?",
		campaignID,
	).First(&campaign); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &campaign, nil
}

// SetCampaign creates or updates a campaign record.
func (d *MetadataStoreSqlite) SetCampaign(
	campaign *models.Campaign,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "campaign_id"},
		},
		// Note: creator, target_amount, and created_at are NOT updated on
		// conflict. They are immutable after the record is allocated; only
		// the metadata text and the running fund total may change.
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"description",
			"current_funds",
		}),
	}
	if result := db.Clauses(onConflict).Create(campaign); result.Error != nil {
		return result.Error
	}
	return nil
}
