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

import "github.com/prometheus/client_golang/prometheus"

type ledgerMetrics struct {
	campaignsCreated  prometheus.Counter
	donationsRecorded prometheus.Counter
	donatedTotal      prometheus.Counter
	proposalsCreated  prometheus.Counter
	votesCast         *prometheus.CounterVec
	rewardsIssued     prometheus.Counter
	rewardFailures    prometheus.Counter
}

func registerLedgerMetrics(registry prometheus.Registerer) *ledgerMetrics {
	m := &ledgerMetrics{
		campaignsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_campaigns_created_total",
			Help: "Total number of campaigns created",
		}),
		donationsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_donations_recorded_total",
			Help: "Total number of donations recorded",
		}),
		donatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_donated_amount_total",
			Help: "Total amount donated across all campaigns",
		}),
		proposalsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_proposals_created_total",
			Help: "Total number of proposals created",
		}),
		votesCast: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_votes_cast_total",
				Help: "Total number of votes cast by support",
			},
			[]string{"support"},
		),
		rewardsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_rewards_issued_total",
			Help: "Total reward amount successfully issued",
		}),
		rewardFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_reward_failures_total",
			Help: "Total number of failed reward transfers",
		}),
	}
	registry.MustRegister(
		m.campaignsCreated,
		m.donationsRecorded,
		m.donatedTotal,
		m.proposalsCreated,
		m.votesCast,
		m.rewardsIssued,
		m.rewardFailures,
	)
	return m
}
