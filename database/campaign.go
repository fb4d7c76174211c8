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

package database

import (
	"fmt"

	"github.com/stakefund-io/stakefund/database/models"
)

// GetCampaign returns a campaign by its identifier
func (d *Database) GetCampaign(
	campaignID string,
	txn *Txn,
) (*models.Campaign, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	campaign, err := d.metadata.GetCampaign(campaignID, txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, models.ErrCampaignNotFound
	}
	return campaign, nil
}

// CampaignExists reports whether a campaign with the given identifier exists
func (d *Database) CampaignExists(
	campaignID string,
	txn *Txn,
) (bool, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	campaign, err := d.metadata.GetCampaign(campaignID, txn.Metadata())
	if err != nil {
		return false, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign != nil, nil
}

// SetCampaign stores a campaign record
func (d *Database) SetCampaign(
	campaign *models.Campaign,
	txn *Txn,
) error {
	owned := false
	if txn == nil {
		txn = d.MetadataTxn(true)
		owned = true
		defer func() {
			if owned {
				txn.Rollback() //nolint:errcheck
			}
		}()
	}
	if err := d.metadata.SetCampaign(campaign, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to set campaign: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		owned = false
	}
	return nil
}
