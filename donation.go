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

package stakefund

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stakefund-io/stakefund/database"
	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stakefund-io/stakefund/database/types"
	"github.com/stakefund-io/stakefund/event"
)

// donationReceipt is the immutable payload stored in the blob store for
// each donation
type donationReceipt struct {
	CampaignID string `json:"campaign_id"`
	DonationID string `json:"donation_id"`
	Donor      string `json:"donor"`
	Amount     uint64 `json:"amount"`
	RecordedAt int64  `json:"recorded_at"`
}

// RecordDonation validates and records a contribution to a campaign,
// returning the new donation's identifier.
//
// The donation record, its receipt blob, and the campaign fund increment
// are committed in a single transaction; no reader can observe one without
// the others. Donations are append-only and repeating a call with the same
// arguments records a second, distinct donation.
func (l *Ledger) RecordDonation(
	campaignID string,
	donor string,
	amount uint64,
) (string, error) {
	if donor == "" {
		return "", ErrEmptyDonor
	}
	if amount == 0 {
		return "", ErrInvalidAmount
	}
	donationID := uuid.NewString()
	now := l.now().Unix()
	var currentFunds uint64
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		campaign, err := l.db.GetCampaign(campaignID, txn)
		if err != nil {
			if errors.Is(err, models.ErrCampaignNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}
		funds := uint64(campaign.CurrentFunds)
		if funds+amount < funds {
			return ErrFundsOverflow
		}
		donation := &models.Donation{
			DonationID: donationID,
			CampaignID: campaignID,
			Donor:      donor,
			Amount:     types.Uint64(amount),
			CreatedAt:  now,
		}
		receipt, err := json.Marshal(donationReceipt{
			CampaignID: campaignID,
			DonationID: donationID,
			Donor:      donor,
			Amount:     amount,
			RecordedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to encode donation receipt: %w", err)
		}
		if err := l.db.AddDonation(donation, receipt, txn); err != nil {
			return err
		}
		currentFunds = funds + amount
		campaign.CurrentFunds = types.Uint64(currentFunds)
		return l.db.SetCampaign(campaign, txn)
	})
	if err != nil {
		return "", err
	}
	l.config.logger.Info(
		"donation recorded",
		"component", "ledger",
		"campaign_id", campaignID,
		"donation_id", donationID,
		"amount", amount,
	)
	if l.metrics != nil {
		l.metrics.donationsRecorded.Inc()
		l.metrics.donatedTotal.Add(float64(amount))
	}
	l.eventBus.Publish(
		event.DonationRecordedEventType,
		event.NewEvent(
			event.DonationRecordedEventType,
			event.DonationRecordedEvent{
				CampaignID:   campaignID,
				DonationID:   donationID,
				Donor:        donor,
				Amount:       amount,
				CurrentFunds: currentFunds,
			},
		),
	)
	return donationID, nil
}

// Donation returns a donation record by identifier
func (l *Ledger) Donation(donationID string) (*models.Donation, error) {
	donation, err := l.db.GetDonation(donationID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to look up donation: %w", err)
	}
	return donation, nil
}

// Donations returns all donations recorded for a campaign in insertion
// order
func (l *Ledger) Donations(campaignID string) ([]*models.Donation, error) {
	return l.db.GetDonationsByCampaign(campaignID, nil)
}

// DonationReceipt returns the immutable receipt payload stored for a
// donation
func (l *Ledger) DonationReceipt(
	campaignID string,
	donationID string,
) ([]byte, error) {
	return l.db.GetDonationReceipt(campaignID, donationID, nil)
}

// DonorStake returns the sum of all donations one donor has made to a
// campaign. Boundary callers use this to supply the voter stake for
// CastVote.
func (l *Ledger) DonorStake(campaignID string, donor string) (uint64, error) {
	return l.db.DonorTotal(campaignID, donor, nil)
}
