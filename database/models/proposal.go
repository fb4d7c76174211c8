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

package models

import "errors"

var ErrProposalNotFound = errors.New("proposal not found")

// Proposal is a time-bounded governance question tied to a campaign.
// Proposals have a lifecycle: open (now < EndTime) -> closed (terminal,
// tallies frozen). Executed latches true at most once, after closure.
type Proposal struct {
	ID          uint   `gorm:"primarykey"`
	ProposalID  string `gorm:"uniqueIndex;size:64;not null"`
	CampaignID  string `gorm:"index;size:64;not null"`
	Proposer    string `gorm:"size:128;not null"`
	Description string `gorm:"size:128"`
	YesVotes    uint64 `gorm:"not null"`
	NoVotes     uint64 `gorm:"not null"`
	EndTime     int64  `gorm:"index;not null"` // unix seconds
	Executed    bool   `gorm:"not null"`
	CreatedAt   int64  `gorm:"not null"` // unix seconds
}

// TableName returns the table name
func (Proposal) TableName() string {
	return "proposal"
}

// Open reports whether votes may still be cast at the given unix time.
func (p *Proposal) Open(now int64) bool {
	return now < p.EndTime
}
