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
)

// Validation errors. The caller supplied a malformed request and can fix
// and retry.
var (
	ErrEmptyCreator       = errors.New("campaign creator must not be empty")
	ErrEmptyDonor         = errors.New("donor must not be empty")
	ErrEmptyProposer      = errors.New("proposer must not be empty")
	ErrEmptyVoter         = errors.New("voter must not be empty")
	ErrNameTooLong        = errors.New("campaign name exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrInvalidAmount      = errors.New("donation amount must be greater than zero")
	ErrInvalidDuration    = errors.New("proposal duration must be greater than zero")
	ErrInvalidStake       = errors.New("voter stake exceeds campaign funds")
)

// State errors. The request cannot proceed as framed.
var (
	ErrCampaignExists   = errors.New("campaign identifier already in use")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrProposalNotFound = errors.New("proposal not found")
	ErrVotingClosed     = errors.New("voting window has closed")
	ErrFundsOverflow    = errors.New("campaign funds overflow")
	ErrProposalOpen     = errors.New("proposal voting window is still open")
	ErrAlreadyExecuted  = errors.New("proposal already executed")
	ErrNotProposer      = errors.New("only the proposer may execute a proposal")
)

// Arithmetic errors. Always fatal to the single request, never clamped.
var (
	ErrDivisionByZero = errors.New("campaign has no funds to compute a share of")
)

// RewardTransferError reports a reward issuer failure. The vote tally it
// accompanies has already been committed; the transfer failure does not
// undo it.
type RewardTransferError struct {
	Recipient string
	Amount    uint64
	Err       error
}

func (e *RewardTransferError) Error() string {
	return fmt.Sprintf(
		"reward transfer of %d to %s failed: %s",
		e.Amount,
		e.Recipient,
		e.Err,
	)
}

func (e *RewardTransferError) Unwrap() error {
	return e.Err
}
