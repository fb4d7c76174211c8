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
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue returns the value of a counter in the registry, matching on
// name and any given label pairs
func counterValue(
	t *testing.T,
	registry *prometheus.Registry,
	name string,
	labels map[string]string,
) float64 {
	t.Helper()
	metricFamilies, err := registry.Gather()
	require.NoError(t, err)
	for _, mf := range metricFamilies {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := true
			for wantName, wantValue := range labels {
				found := false
				for _, lp := range m.GetLabel() {
					if lp.GetName() == wantName &&
						lp.GetValue() == wantValue {
						found = true
						break
					}
				}
				if !found {
					match = false
					break
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s not found in registry", name)
	return 0
}

func TestLedgerMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	ledger, _ := setupTestLedger(t, WithPrometheusRegistry(registry))

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
	result, err := ledger.CastVote(proposalID, "bob", true, 250)
	require.NoError(t, err)
	require.True(t, result.RewardIssued)

	assert.Equal(
		t,
		float64(1),
		counterValue(t, registry, "ledger_campaigns_created_total", nil),
	)
	assert.Equal(
		t,
		float64(1),
		counterValue(t, registry, "ledger_donations_recorded_total", nil),
	)
	assert.Equal(
		t,
		float64(1000),
		counterValue(t, registry, "ledger_donated_amount_total", nil),
	)
	assert.Equal(
		t,
		float64(1),
		counterValue(t, registry, "ledger_proposals_created_total", nil),
	)
	assert.Equal(
		t,
		float64(1),
		counterValue(
			t,
			registry,
			"ledger_votes_cast_total",
			map[string]string{"support": "true"},
		),
	)
	assert.Equal(
		t,
		float64(25),
		counterValue(t, registry, "ledger_rewards_issued_total", nil),
	)

	// The event bus shares the registry and counts the published events
	assert.Equal(
		t,
		float64(1),
		counterValue(
			t,
			registry,
			"eventbus_events_total",
			map[string]string{"type": "donation.recorded"},
		),
	)
}

func TestLedgerMetricsRewardFailure(t *testing.T) {
	registry := prometheus.NewRegistry()
	issuer := newRecordingIssuer()
	issuer.err = errTransferRejected
	ledger, _ := setupTestLedger(
		t,
		WithPrometheusRegistry(registry),
		WithRewardIssuer(issuer),
	)

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
	result, err := ledger.CastVote(proposalID, "bob", true, 250)
	require.NoError(t, err)
	require.Error(t, result.RewardErr)

	assert.Equal(
		t,
		float64(1),
		counterValue(t, registry, "ledger_reward_failures_total", nil),
	)
	assert.Equal(
		t,
		float64(0),
		counterValue(t, registry, "ledger_rewards_issued_total", nil),
	)
}
