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

// GetProposal retrieves a proposal by its opaque identifier.
// Returns nil if no such proposal exists.
func (d *MetadataStoreSqlite) GetProposal(
	proposalID string,
	txn types.Txn,
) (*models.Proposal, error) {
	var proposal models.Proposal
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"proposal_id = ?",
		proposalID,
	).First(&proposal); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &proposal, nil
}

// GetProposalsByCampaign retrieves all proposals for a campaign in
// insertion order. Overlapping open proposals are permitted, so this may
// return several proposals with live voting windows.
func (d *MetadataStoreSqlite) GetProposalsByCampaign(
	campaignID string,
	txn types.Txn,
) ([]*models.Proposal, error) {
	var proposals []*models.Proposal
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"campaign_id = ?",
		campaignID,
	).Order("id").Find(&proposals); result.Error != nil {
		return nil, result.Error
	}
	return proposals, nil
}

// SetProposal creates or updates a proposal record.
func (d *MetadataStoreSqlite) SetProposal(
	proposal *models.Proposal,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "proposal_id"},
		},
		// Note: campaign_id, proposer, description, end_time, and
		// created_at are NOT updated on conflict. Only tallies and the
		// executed latch may change after creation.
		DoUpdates: clause.AssignmentColumns([]string{
			"yes_votes",
			"no_votes",
			"executed",
		}),
	}
	if result := db.Clauses(onConflict).Create(proposal); result.Error != nil {
		return result.Error
	}
	return nil
}
