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
	"math/bits"
)

// DefaultRewardPool is the default scaling constant for proportional
// voting rewards. A voter holding the entire campaign's funds would earn
// exactly this amount.
const DefaultRewardPool = 100

// ProportionalReward computes floor(stake * pool / totalFunds) using
// 128-bit integer arithmetic. Integer arithmetic with an explicit rounding
// direction keeps the result reproducible across runs and platforms, which
// floating point does not guarantee.
//
// Returns ErrDivisionByZero when totalFunds is zero and ErrInvalidStake
// when stake exceeds totalFunds (a share above 1 is impossible by the fund
// sum invariant, so it signals corrupt caller input).
func ProportionalReward(stake, totalFunds, pool uint64) (uint64, error) {
	if totalFunds == 0 {
		return 0, ErrDivisionByZero
	}
	if stake > totalFunds {
		return 0, ErrInvalidStake
	}
	// stake <= totalFunds guarantees hi < totalFunds, so Div64 cannot
	// overflow or panic
	hi, lo := bits.Mul64(stake, pool)
	reward, _ := bits.Div64(hi, lo, totalFunds)
	return reward, nil
}
