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
	"errors"
	"fmt"

	"github.com/stakefund-io/stakefund/database/models"
)

// ErrAmountOverflow is returned when summing donation amounts would exceed
// the range of a uint64
var ErrAmountOverflow = errors.New("donation amount overflow")

// DonationReceiptKey returns the blob store key for a donation receipt
func DonationReceiptKey(campaignID string, donationID string) []byte {
	return fmt.Appendf(nil, "receipt/%s/%s", campaignID, donationID)
}

// AddDonation stores a donation record in the metadata store and its
// receipt payload in the blob store
func (d *Database) AddDonation(
	donation *models.Donation,
	receipt []byte,
	txn *Txn,
) error {
	owned := false
	if txn == nil {
		txn = d.Transaction(true)
		owned = true
		defer func() {
			if owned {
				txn.Rollback() //nolint:errcheck
			}
		}()
	}
	if err := d.metadata.AddDonation(donation, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to add donation: %w", err)
	}
	if receipt != nil {
		key := DonationReceiptKey(donation.CampaignID, donation.DonationID)
		if err := d.blob.Set(txn.Blob(), key, receipt); err != nil {
			return fmt.Errorf("failed to store donation receipt: %w", err)
		}
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		owned = false
	}
	return nil
}

// GetDonation returns a donation by its identifier
func (d *Database) GetDonation(
	donationID string,
	txn *Txn,
) (*models.Donation, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	donation, err := d.metadata.GetDonation(donationID, txn.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	if donation == nil {
		return nil, models.ErrDonationNotFound
	}
	return donation, nil
}

// GetDonationsByCampaign returns all donations for a campaign in insertion
// order
func (d *Database) GetDonationsByCampaign(
	campaignID string,
	txn *Txn,
) ([]*models.Donation, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	donations, err := d.metadata.GetDonationsByCampaign(
		campaignID,
		txn.Metadata(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get donations: %w", err)
	}
	return donations, nil
}

// GetDonationReceipt returns the receipt payload stored for a donation
func (d *Database) GetDonationReceipt(
	campaignID string,
	donationID string,
	txn *Txn,
) ([]byte, error) {
	if txn == nil {
		txn = d.BlobTxn(false)
		defer txn.Release()
	}
	key := DonationReceiptKey(campaignID, donationID)
	return d.blob.Get(txn.Blob(), key)
}

// DonorTotal returns the sum of all donations one donor has made to a
// campaign. The sum is computed in Go since SQLite integers are signed
// and donation amounts span the full uint64 range.
func (d *Database) DonorTotal(
	campaignID string,
	donor string,
	txn *Txn,
) (uint64, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	donations, err := d.metadata.GetDonationsByDonor(
		campaignID,
		donor,
		txn.Metadata(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to get donations: %w", err)
	}
	var total uint64
	for _, donation := range donations {
		amount := uint64(donation.Amount)
		if total+amount < total {
			return 0, ErrAmountOverflow
		}
		total += amount
	}
	return total, nil
}
