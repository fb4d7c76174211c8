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
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stakefund-io/stakefund/database"
	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stakefund-io/stakefund/database/types"
	"github.com/stakefund-io/stakefund/event"
)

// CreateCampaign allocates a new campaign record with zero funds and
// returns its identifier.
//
// The target amount is set once here and is immutable afterwards. A zero
// target is accepted; it describes a campaign with no fixed goal.
func (l *Ledger) CreateCampaign(
	creator string,
	name string,
	description string,
	targetAmount uint64,
) (string, error) {
	if creator == "" {
		return "", ErrEmptyCreator
	}
	if len(name) > models.CampaignNameMaxLen {
		return "", ErrNameTooLong
	}
	if len(description) > models.CampaignDescriptionMaxLen {
		return "", ErrDescriptionTooLong
	}
	campaignID := uuid.NewString()
	campaign := &models.Campaign{
		CampaignID:   campaignID,
		Creator:      creator,
		Name:         name,
		Description:  description,
		TargetAmount: types.Uint64(targetAmount),
		CurrentFunds: types.Uint64(0),
		CreatedAt:    l.now().Unix(),
	}
	txn := l.db.MetadataTxn(true)
	err := txn.Do(func(txn *database.Txn) error {
		exists, err := l.db.CampaignExists(campaignID, txn)
		if err != nil {
			return err
		}
		if exists {
			return ErrCampaignExists
		}
		return l.db.SetCampaign(campaign, txn)
	})
	if err != nil {
		return "", err
	}
	l.config.logger.Info(
		"campaign created",
		"component", "ledger",
		"campaign_id", campaignID,
		"creator", creator,
	)
	if l.metrics != nil {
		l.metrics.campaignsCreated.Inc()
	}
	l.eventBus.Publish(
		event.CampaignCreatedEventType,
		event.NewEvent(
			event.CampaignCreatedEventType,
			event.CampaignCreatedEvent{
				CampaignID:   campaignID,
				Creator:      creator,
				Name:         name,
				TargetAmount: targetAmount,
			},
		),
	)
	return campaignID, nil
}

// Campaign returns a campaign record by identifier
func (l *Ledger) Campaign(campaignID string) (*models.Campaign, error) {
	campaign, err := l.db.GetCampaign(campaignID, nil)
	if err != nil {
		if errors.Is(err, models.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to look up campaign: %w", err)
	}
	return campaign, nil
}
