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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testClock is a controllable time source for deterministic voting windows
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{
		now: time.Unix(1700000000, 0),
	}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingIssuer captures issued rewards for assertions
type recordingIssuer struct {
	mu     sync.Mutex
	issued map[string]uint64
	err    error
}

func newRecordingIssuer() *recordingIssuer {
	return &recordingIssuer{
		issued: make(map[string]uint64),
	}
}

func (r *recordingIssuer) Issue(recipient string, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.issued[recipient] += amount
	return nil
}

func (r *recordingIssuer) total(recipient string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.issued[recipient]
}

func setupTestLedger(
	t *testing.T,
	opts ...ConfigOptionFunc,
) (*Ledger, *testClock) {
	t.Helper()
	clock := newTestClock()
	cfg := NewConfig(
		append(
			[]ConfigOptionFunc{WithTimeSource(clock.Now)},
			opts...,
		)...,
	)
	ledger, err := New(cfg)
	require.NoError(t, err, "failed to create test ledger")
	t.Cleanup(func() {
		if err := ledger.Close(); err != nil {
			t.Logf("failed to close test ledger: %v", err)
		}
	})
	return ledger, clock
}

func TestLedgerDefaultIssuer(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	campaignID, err := ledger.CreateCampaign("alice", "Garden", "", 0)
	require.NoError(t, err)
	_, err = ledger.RecordDonation(campaignID, "bob", 1000)
	require.NoError(t, err)
	proposalID, err := ledger.CreateProposal(
		campaignID,
		"alice",
		"buy soil",
		time.Hour,
	)
	require.NoError(t, err)

	result, err := ledger.CastVote(proposalID, "bob", true, 1000)
	require.NoError(t, err)
	require.True(t, result.RewardIssued)
	require.NoError(t, result.RewardErr)

	// The default issuer credits an account in the ledger's own store
	account, err := ledger.Database().GetAccount("bob", nil)
	require.NoError(t, err)
	require.Equal(t, uint64(DefaultRewardPool), uint64(account.Balance))
}

func TestLedgerCloseStopsEventBus(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	_, ch := ledger.EventBus().Subscribe("campaign.created")
	require.NoError(t, ledger.Close())

	_, ok := <-ch
	require.False(t, ok)

	// Double close is safe
	require.NoError(t, ledger.Close())
}

var errTransferRejected = errors.New("transfer rejected")
