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
)

// AddDonation inserts a donation record. Donations are append-only, so
// there is no upsert path; the unique index on donation_id rejects
// duplicate identifiers.
func (d *MetadataStoreSqlite) AddDonation(
	donation *models.Donation,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(donation); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetDonation retrieves a donation by its opaque identifier.
// Returns nil if no such donation exists.
func (d *MetadataStoreSqlite) GetDonation(
	donationID string,
	txn types.Txn,
) (*models.Donation, error) {
	var donation models.Donation
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"donation_id = ?",
		donationID,
	).First(&donation); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &donation, nil
}

// GetDonationsByCampaign retrieves all donations for a campaign in
// insertion order.
func (d *MetadataStoreSqlite) GetDonationsByCampaign(
	campaignID string,
	txn types.Txn,
) ([]*models.Donation, error) {
	var donations []*models.Donation
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"campaign_id = ?",
		campaignID,
	).Order("id").Find(&donations); result.Error != nil {
		return nil, result.Error
	}
	return donations, nil
}

// GetDonationsByDonor retrieves all donations one donor has made to a
// campaign in insertion order.
func (d *MetadataStoreSqlite) GetDonationsByDonor(
	campaignID string,
	donor string,
	txn types.Txn,
) ([]*models.Donation, error) {
	var donations []*models.Donation
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"campaign_id = ? AND donor = ?",
		campaignID,
		donor,
	).Order("id").Find(&donations); result.Error != nil {
		return nil, result.Error
	}
	return donations, nil
}
