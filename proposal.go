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
	"time"

	"github.com/google/uuid"
	"github.com/stakefund-io/stakefund/database"
	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stakefund-io/stakefund/event"
)

// VoteResult reports the outcome of a cast vote. The tally fields reflect
// the committed state after this vote. RewardIssued and RewardErr report
// the reward transfer outcome separately, since a transfer failure never
// undoes the tally.
type VoteResult struct {
	YesVotes     uint64
	NoVotes      uint64
	Reward       uint64
	RewardIssued bool
	RewardErr    error
}

// CreateProposal opens a time-bounded spending proposal on a campaign and
// returns its identifier. The voting window ends at now + duration;
// multiple proposals with overlapping windows may coexist on one campaign.
func (l *Ledger) CreateProposal(
	campaignID string,
	proposer string,
	description string,
	duration time.Duration,
) (string, error) {
	if proposer == "" {
		return "", ErrEmptyProposer
	}
	if len(description) > models.CampaignDescriptionMaxLen {
		return "", ErrDescriptionTooLong
	}
	if duration <= 0 {
		return "", ErrInvalidDuration
	}
	proposalID := uuid.NewString()
	now := l.now()
	endTime := now.Add(duration).Unix()
	proposal := &models.Proposal{
		ProposalID:  proposalID,
		CampaignID:  campaignID,
		Proposer:    proposer,
		Description: description,
		EndTime:     endTime,
		CreatedAt:   now.Unix(),
	}
	txn := l.db.MetadataTxn(true)
	err := txn.Do(func(txn *database.Txn) error {
		exists, err := l.db.CampaignExists(campaignID, txn)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCampaignNotFound
		}
		return l.db.SetProposal(proposal, txn)
	})
	if err != nil {
		return "", err
	}
	l.config.logger.Info(
		"proposal created",
		"component", "ledger",
		"campaign_id", campaignID,
		"proposal_id", proposalID,
		"end_time", endTime,
	)
	if l.metrics != nil {
		l.metrics.proposalsCreated.Inc()
	}
	l.eventBus.Publish(
		event.ProposalCreatedEventType,
		event.NewEvent(
			event.ProposalCreatedEventType,
			event.ProposalCreatedEvent{
				CampaignID: campaignID,
				ProposalID: proposalID,
				Proposer:   proposer,
				EndTime:    endTime,
			},
		),
	)
	return proposalID, nil
}

// CastVote records a yes/no vote on an open proposal and computes the
// voter's proportional reward from their stake in the campaign.
//
// The tally increment and the reward transfer are independent
// commitments: the tally is committed first, and an issuer failure is
// reported in VoteResult.RewardErr without rolling the tally back.
// Validation and arithmetic errors (closed window, zero funds, stake above
// funds) fail the whole request before anything is written.
func (l *Ledger) CastVote(
	proposalID string,
	voter string,
	support bool,
	voterStake uint64,
) (*VoteResult, error) {
	if voter == "" {
		return nil, ErrEmptyVoter
	}
	var result VoteResult
	var campaignID string
	txn := l.db.MetadataTxn(true)
	err := txn.Do(func(txn *database.Txn) error {
		proposal, err := l.db.GetProposal(proposalID, txn)
		if err != nil {
			if errors.Is(err, models.ErrProposalNotFound) {
				return ErrProposalNotFound
			}
			return err
		}
		if !proposal.Open(l.now().Unix()) {
			return ErrVotingClosed
		}
		campaign, err := l.db.GetCampaign(proposal.CampaignID, txn)
		if err != nil {
			if errors.Is(err, models.ErrCampaignNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}
		reward, err := ProportionalReward(
			voterStake,
			uint64(campaign.CurrentFunds),
			l.config.rewardPool,
		)
		if err != nil {
			return err
		}
		if support {
			proposal.YesVotes++
		} else {
			proposal.NoVotes++
		}
		if err := l.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		campaignID = proposal.CampaignID
		result.YesVotes = proposal.YesVotes
		result.NoVotes = proposal.NoVotes
		result.Reward = reward
		return nil
	})
	if err != nil {
		return nil, err
	}
	// The tally is committed at this point. Reward transfer happens outside
	// the transaction and its failure is reported, not rolled back into the
	// tally.
	if issueErr := l.issuer.Issue(voter, result.Reward); issueErr != nil {
		result.RewardErr = &RewardTransferError{
			Recipient: voter,
			Amount:    result.Reward,
			Err:       issueErr,
		}
		l.config.logger.Warn(
			"reward transfer failed",
			"component", "ledger",
			"proposal_id", proposalID,
			"voter", voter,
			"reward", result.Reward,
			"error", issueErr,
		)
		if l.metrics != nil {
			l.metrics.rewardFailures.Inc()
		}
	} else {
		result.RewardIssued = true
		if l.metrics != nil {
			l.metrics.rewardsIssued.Add(float64(result.Reward))
		}
	}
	if l.metrics != nil {
		l.metrics.votesCast.WithLabelValues(fmt.Sprintf("%t", support)).Inc()
	}
	l.eventBus.Publish(
		event.VoteCastEventType,
		event.NewEvent(
			event.VoteCastEventType,
			event.VoteCastEvent{
				CampaignID: campaignID,
				ProposalID: proposalID,
				Voter:      voter,
				Support:    support,
				Stake:      voterStake,
				Reward:     result.Reward,
			},
		),
	)
	return &result, nil
}

// MarkProposalExecuted latches a closed proposal as executed. Only the
// identity recorded as proposer at creation may execute, only after the
// voting window has closed, and only once.
func (l *Ledger) MarkProposalExecuted(proposalID string, actor string) error {
	txn := l.db.MetadataTxn(true)
	var campaignID string
	err := txn.Do(func(txn *database.Txn) error {
		proposal, err := l.db.GetProposal(proposalID, txn)
		if err != nil {
			if errors.Is(err, models.ErrProposalNotFound) {
				return ErrProposalNotFound
			}
			return err
		}
		if actor != proposal.Proposer {
			return ErrNotProposer
		}
		if proposal.Open(l.now().Unix()) {
			return ErrProposalOpen
		}
		if proposal.Executed {
			return ErrAlreadyExecuted
		}
		proposal.Executed = true
		campaignID = proposal.CampaignID
		return l.db.SetProposal(proposal, txn)
	})
	if err != nil {
		return err
	}
	l.eventBus.Publish(
		event.ProposalExecutedEventType,
		event.NewEvent(
			event.ProposalExecutedEventType,
			event.ProposalExecutedEvent{
				CampaignID: campaignID,
				ProposalID: proposalID,
			},
		),
	)
	return nil
}

// Proposal returns a proposal record by identifier
func (l *Ledger) Proposal(proposalID string) (*models.Proposal, error) {
	proposal, err := l.db.GetProposal(proposalID, nil)
	if err != nil {
		if errors.Is(err, models.ErrProposalNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to look up proposal: %w", err)
	}
	return proposal, nil
}

// Proposals returns all proposals opened on a campaign in insertion order
func (l *Ledger) Proposals(campaignID string) ([]*models.Proposal, error) {
	return l.db.GetProposalsByCampaign(campaignID, nil)
}
