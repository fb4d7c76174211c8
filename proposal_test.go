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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fundedCampaign creates a campaign holding the given funds and returns
// its identifier
func fundedCampaign(
	t *testing.T,
	ledger *Ledger,
	donor string,
	funds uint64,
) string {
	t.Helper()
	campaignID, err := ledger.CreateCampaign("alice", "Garden", "", 0)
	require.NoError(t, err)
	if funds > 0 {
		_, err = ledger.RecordDonation(campaignID, donor, funds)
		require.NoError(t, err)
	}
	return campaignID
}

func TestCreateProposal(t *testing.T) {
	ledger, clock := setupTestLedger(t)

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	proposal, err := ledger.Proposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, "alice", proposal.Proposer)
	assert.Equal(t, "buy soil", proposal.Description)
	assert.Equal(t, clock.Now().Add(time.Hour).Unix(), proposal.EndTime)
	assert.Zero(t, proposal.YesVotes)
	assert.Zero(t, proposal.NoVotes)
	assert.False(t, proposal.Executed)
}

func TestCreateProposalValidation(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	campaignID := fundedCampaign(t, ledger, "bob", 1000)

	_, err := ledger.CreateProposal(campaignID, "", "buy soil", time.Hour)
	assert.ErrorIs(t, err, ErrEmptyProposer)

	_, err = ledger.CreateProposal(campaignID, "alice", "buy soil", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ledger.CreateProposal(campaignID, "alice", "buy soil", -time.Hour)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ledger.CreateProposal("nope", "alice", "buy soil", time.Hour)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCreateProposalOverlapping(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	first, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)
	second, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy seeds",
		2*time.Hour,
	)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// Both windows are open and each proposal tallies independently
	_, err = ledger.CastVote(first, "bob", true, 1000)
	require.NoError(t, err)
	_, err = ledger.CastVote(second, "bob", false, 1000)
	require.NoError(t, err)

	proposals, err := ledger.Proposals(campaignID)
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, uint64(1), proposals[0].YesVotes)
	assert.Zero(t, proposals[0].NoVotes)
	assert.Zero(t, proposals[1].YesVotes)
	assert.Equal(t, uint64(1), proposals[1].NoVotes)
}

func TestCastVote(t *testing.T) {
	issuer := newRecordingIssuer()
	ledger, _ := setupTestLedger(t, WithRewardIssuer(issuer))

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	result, err := ledger.CastVote(proposalID, "bob", true, 250)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.YesVotes)
	assert.Zero(t, result.NoVotes)
	assert.Equal(t, uint64(25), result.Reward)
	assert.True(t, result.RewardIssued)
	assert.NoError(t, result.RewardErr)
	assert.Equal(t, uint64(25), issuer.total("bob"))

	result, err = ledger.CastVote(proposalID, "carol", false, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.YesVotes)
	assert.Equal(t, uint64(1), result.NoVotes)
	assert.Zero(t, result.Reward)
	assert.True(t, result.RewardIssued)
	assert.Zero(t, issuer.total("carol"))
}

func TestCastVoteValidation(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	_, err = ledger.CastVote(proposalID, "", true, 100)
	assert.ErrorIs(t, err, ErrEmptyVoter)

	_, err = ledger.CastVote("nope", "bob", true, 100)
	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestCastVoteClosedWindow(t *testing.T) {
	issuer := newRecordingIssuer()
	ledger, clock := setupTestLedger(t, WithRewardIssuer(issuer))

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)
	_, err = ledger.CastVote(proposalID, "bob", true, 250)
	require.NoError(t, err)

	// The closing instant itself is outside the window
	clock.Advance(time.Hour)
	_, err = ledger.CastVote(proposalID, "carol", true, 250)
	require.ErrorIs(t, err, ErrVotingClosed)

	// The rejected vote changed neither tallies nor reward state
	proposal, err := ledger.Proposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), proposal.YesVotes)
	assert.Zero(t, proposal.NoVotes)
	assert.Zero(t, issuer.total("carol"))
}

func TestCastVoteZeroFunds(t *testing.T) {
	issuer := newRecordingIssuer()
	ledger, _ := setupTestLedger(t, WithRewardIssuer(issuer))

	campaignID := fundedCampaign(t, ledger, "bob", 0)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	_, err = ledger.CastVote(proposalID, "bob", true, 0)
	require.ErrorIs(t, err, ErrDivisionByZero)

	// The failed request left no tally behind
	proposal, err := ledger.Proposal(proposalID)
	require.NoError(t, err)
	assert.Zero(t, proposal.YesVotes)
	assert.Zero(t, proposal.NoVotes)
}

func TestCastVoteStakeAboveFunds(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	_, err = ledger.CastVote(proposalID, "bob", true, 1001)
	require.ErrorIs(t, err, ErrInvalidStake)

	proposal, err := ledger.Proposal(proposalID)
	require.NoError(t, err)
	assert.Zero(t, proposal.YesVotes)
}

func TestCastVoteIssuerFailure(t *testing.T) {
	issuer := newRecordingIssuer()
	issuer.err = errTransferRejected
	ledger, _ := setupTestLedger(t, WithRewardIssuer(issuer))

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	result, err := ledger.CastVote(proposalID, "bob", true, 250)
	require.NoError(t, err)
	assert.False(t, result.RewardIssued)
	require.Error(t, result.RewardErr)
	var transferErr *RewardTransferError
	require.ErrorAs(t, result.RewardErr, &transferErr)
	assert.Equal(t, "bob", transferErr.Recipient)
	assert.Equal(t, uint64(25), transferErr.Amount)
	assert.ErrorIs(t, result.RewardErr, errTransferRejected)

	// The tally commit survives the transfer failure
	proposal, err := ledger.Proposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), proposal.YesVotes)
}

func TestCastVoteRepeatedVoter(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	// Each cast counts; there is no per-voter dedup at this layer
	for i := range 3 {
		result, err := ledger.CastVote(proposalID, "bob", true, 250)
		require.NoError(t, err)
		require.Equal(t, uint64(i+1), result.YesVotes) //nolint:gosec
	}
}

func TestMarkProposalExecuted(t *testing.T) {
	ledger, clock := setupTestLedger(t)

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	// Open window blocks execution
	err = ledger.MarkProposalExecuted(proposalID, "alice")
	require.ErrorIs(t, err, ErrProposalOpen)

	clock.Advance(2 * time.Hour)

	// Only the recorded proposer may execute
	err = ledger.MarkProposalExecuted(proposalID, "mallory")
	require.ErrorIs(t, err, ErrNotProposer)

	err = ledger.MarkProposalExecuted(proposalID, "alice")
	require.NoError(t, err)

	proposal, err := ledger.Proposal(proposalID)
	require.NoError(t, err)
	assert.True(t, proposal.Executed)

	// The latch only flips once
	err = ledger.MarkProposalExecuted(proposalID, "alice")
	require.ErrorIs(t, err, ErrAlreadyExecuted)
}

func TestMarkProposalExecutedNotFound(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	err := ledger.MarkProposalExecuted("nope", "alice")
	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestCastVoteRewardPoolOption(t *testing.T) {
	issuer := newRecordingIssuer()
	ledger, _ := setupTestLedger(
		t,
		WithRewardIssuer(issuer),
		WithRewardPool(1000),
	)

	campaignID := fundedCampaign(t, ledger, "bob", 1000)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	result, err := ledger.CastVote(proposalID, "bob", true, 333)
	require.NoError(t, err)
	assert.Equal(t, uint64(333), result.Reward)
	assert.Equal(t, uint64(333), issuer.total("bob"))
}

func TestRewardTransferErrorUnwrap(t *testing.T) {
	inner := errors.New("downstream outage")
	err := &RewardTransferError{
		Recipient: "bob",
		Amount:    25,
		Err:       inner,
	}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "bob")
}
