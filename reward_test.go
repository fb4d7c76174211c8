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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProportionalReward(t *testing.T) {
	testDefs := []struct {
		name       string
		stake      uint64
		totalFunds uint64
		pool       uint64
		expected   uint64
	}{
		{
			name:       "quarter share",
			stake:      250,
			totalFunds: 1000,
			pool:       100,
			expected:   25,
		},
		{
			name:       "floor rounding",
			stake:      333,
			totalFunds: 1000,
			pool:       100,
			expected:   33,
		},
		{
			name:       "full share",
			stake:      1000,
			totalFunds: 1000,
			pool:       100,
			expected:   100,
		},
		{
			name:       "zero stake",
			stake:      0,
			totalFunds: 1000,
			pool:       100,
			expected:   0,
		},
		{
			name:       "sub-unit share floors to zero",
			stake:      1,
			totalFunds: 1000,
			pool:       100,
			expected:   0,
		},
		{
			name:       "large pool",
			stake:      250,
			totalFunds: 1000,
			pool:       1000000,
			expected:   250000,
		},
		{
			// The intermediate product exceeds 64 bits
			name:       "max funds full share",
			stake:      18446744073709551615,
			totalFunds: 18446744073709551615,
			pool:       100,
			expected:   100,
		},
		{
			name:       "max funds half share",
			stake:      9223372036854775807,
			totalFunds: 18446744073709551615,
			pool:       100,
			expected:   49,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			reward, err := ProportionalReward(
				testDef.stake,
				testDef.totalFunds,
				testDef.pool,
			)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, reward)
		})
	}
}

func TestProportionalRewardDeterministic(t *testing.T) {
	// The same inputs must yield the same reward on every run
	first, err := ProportionalReward(250, 1000, 100)
	require.NoError(t, err)
	for range 1000 {
		reward, err := ProportionalReward(250, 1000, 100)
		require.NoError(t, err)
		require.Equal(t, first, reward)
	}
}

func TestProportionalRewardZeroFunds(t *testing.T) {
	_, err := ProportionalReward(0, 0, 100)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestProportionalRewardStakeAboveFunds(t *testing.T) {
	_, err := ProportionalReward(1001, 1000, 100)
	assert.ErrorIs(t, err, ErrInvalidStake)
}
