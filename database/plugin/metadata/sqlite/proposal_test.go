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
	"testing"

	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	proposal := &models.Proposal{
		ProposalID:  "prop-1",
		CampaignID:  "camp-1",
		Proposer:    "alice",
		Description: "Buy soil and seeds",
		EndTime:     1700003600,
		CreatedAt:   1700000000,
	}
	require.NoError(t, store.SetProposal(proposal, nil))

	fetched, err := store.GetProposal("prop-1", nil)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "camp-1", fetched.CampaignID)
	assert.Equal(t, "alice", fetched.Proposer)
	assert.Equal(t, int64(1700003600), fetched.EndTime)
	assert.False(t, fetched.Executed)
	assert.Zero(t, fetched.YesVotes)
	assert.Zero(t, fetched.NoVotes)
}

func TestProposalUpsertOnlyTallies(t *testing.T) {
	store := setupTestStore(t)

	proposal := &models.Proposal{
		ProposalID:  "prop-1",
		CampaignID:  "camp-1",
		Proposer:    "alice",
		Description: "Buy soil and seeds",
		EndTime:     1700003600,
		CreatedAt:   1700000000,
	}
	require.NoError(t, store.SetProposal(proposal, nil))

	update := &models.Proposal{
		ProposalID:  "prop-1",
		CampaignID:  "camp-other",
		Proposer:    "mallory",
		Description: "changed",
		YesVotes:    100,
		NoVotes:     40,
		EndTime:     1,
		Executed:    true,
		CreatedAt:   1,
	}
	require.NoError(t, store.SetProposal(update, nil))

	fetched, err := store.GetProposal("prop-1", nil)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "camp-1", fetched.CampaignID)
	assert.Equal(t, "alice", fetched.Proposer)
	assert.Equal(t, "Buy soil and seeds", fetched.Description)
	assert.Equal(t, int64(1700003600), fetched.EndTime)
	assert.Equal(t, uint64(100), fetched.YesVotes)
	assert.Equal(t, uint64(40), fetched.NoVotes)
	assert.True(t, fetched.Executed)
}

func TestProposalsByCampaign(t *testing.T) {
	store := setupTestStore(t)

	for _, id := range []string{"prop-1", "prop-2"} {
		proposal := &models.Proposal{
			ProposalID: id,
			CampaignID: "camp-1",
			Proposer:   "alice",
			EndTime:    1700003600,
			CreatedAt:  1700000000,
		}
		require.NoError(t, store.SetProposal(proposal, nil))
	}
	other := &models.Proposal{
		ProposalID: "prop-3",
		CampaignID: "camp-2",
		Proposer:   "bob",
		EndTime:    1700003600,
		CreatedAt:  1700000000,
	}
	require.NoError(t, store.SetProposal(other, nil))

	proposals, err := store.GetProposalsByCampaign("camp-1", nil)
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, "prop-1", proposals[0].ProposalID)
	assert.Equal(t, "prop-2", proposals[1].ProposalID)
}

func TestProposalOpenWindow(t *testing.T) {
	proposal := &models.Proposal{
		ProposalID: "prop-1",
		EndTime:    1700003600,
	}
	assert.True(t, proposal.Open(1700003599))
	// Closing instant is exclusive
	assert.False(t, proposal.Open(1700003600))
	assert.False(t, proposal.Open(1700003601))
}

func TestAccountRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	account := &models.Account{
		Address: "bob",
		Balance: 75,
	}
	require.NoError(t, store.SetAccount(account, nil))

	fetched, err := store.GetAccount("bob", nil)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, uint64(75), uint64(fetched.Balance))

	// Upsert replaces balance
	account.Balance = 100
	require.NoError(t, store.SetAccount(account, nil))
	fetched, err = store.GetAccount("bob", nil)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, uint64(100), uint64(fetched.Balance))

	missing, err := store.GetAccount("nobody", nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
