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

package metadata

import (
	"fmt"

	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stakefund-io/stakefund/database/plugin"
	"github.com/stakefund-io/stakefund/database/types"
	"gorm.io/gorm"

	// Register metadata plugins
	_ "github.com/stakefund-io/stakefund/database/plugin/metadata/sqlite"
)

// MetadataStore is the interface for the queryable entity store holding
// campaign, donation, proposal, and reward account records.
//
// All record operations accept an optional transaction handle; passing nil
// runs the operation against the store directly. Get operations return
// (nil, nil) when no matching record exists so callers can distinguish
// absence from storage failure.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	Transaction() types.Txn
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error

	// Campaigns
	GetCampaign(string, types.Txn) (*models.Campaign, error)
	SetCampaign(*models.Campaign, types.Txn) error

	// Donations
	AddDonation(*models.Donation, types.Txn) error
	GetDonation(string, types.Txn) (*models.Donation, error)
	GetDonationsByCampaign(string, types.Txn) ([]*models.Donation, error)
	GetDonationsByDonor(
		string, // campaignID
		string, // donor
		types.Txn,
	) ([]*models.Donation, error)

	// Proposals
	GetProposal(string, types.Txn) (*models.Proposal, error)
	GetProposalsByCampaign(string, types.Txn) ([]*models.Proposal, error)
	SetProposal(*models.Proposal, types.Txn) error

	// Reward accounts
	GetAccount(string, types.Txn) (*models.Account, error)
	SetAccount(*models.Account, types.Txn) error
}

// New returns the started metadata plugin selected by name
func New(pluginName string) (MetadataStore, error) {
	p, err := plugin.StartPlugin(plugin.PluginTypeMetadata, pluginName)
	if err != nil {
		return nil, err
	}

	metadataStore, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement MetadataStore interface",
			pluginName,
		)
	}

	return metadataStore, nil
}
