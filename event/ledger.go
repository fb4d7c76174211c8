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

package event

const (
	// CampaignCreatedEventType is emitted when a new campaign is registered
	CampaignCreatedEventType = EventType("campaign.created")
	// DonationRecordedEventType is emitted when a donation is appended to a
	// campaign's ledger
	DonationRecordedEventType = EventType("donation.recorded")
	// ProposalCreatedEventType is emitted when a spending proposal is opened
	ProposalCreatedEventType = EventType("proposal.created")
	// VoteCastEventType is emitted after a vote has been tallied
	VoteCastEventType = EventType("proposal.vote")
	// ProposalExecutedEventType is emitted when a proposal is marked executed
	ProposalExecutedEventType = EventType("proposal.executed")
)

// CampaignCreatedEvent carries the identity of a newly created campaign
type CampaignCreatedEvent struct {
	CampaignID   string
	Creator      string
	Name         string
	TargetAmount uint64
}

// DonationRecordedEvent carries a recorded donation and the campaign's
// resulting fund total
type DonationRecordedEvent struct {
	CampaignID   string
	DonationID   string
	Donor        string
	Amount       uint64
	CurrentFunds uint64
}

// ProposalCreatedEvent carries the identity and voting window of a new
// proposal
type ProposalCreatedEvent struct {
	CampaignID string
	ProposalID string
	Proposer   string
	EndTime    int64
}

// VoteCastEvent carries the outcome of a single tallied vote
type VoteCastEvent struct {
	CampaignID string
	ProposalID string
	Voter      string
	Support    bool
	Stake      uint64
	Reward     uint64
}

// ProposalExecutedEvent is emitted when a proposal's executed latch is set
type ProposalExecutedEvent struct {
	CampaignID string
	ProposalID string
}
