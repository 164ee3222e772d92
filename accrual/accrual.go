// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual computes rewards earned by staked assets over time.
//
// A stake account earns rate tokens per second for each staked asset. The
// reward is settled, minted and the checkpoint advanced before any change
// of the staked count, so the count is constant over every settled interval.
package accrual

import (
	"github.com/holiman/uint256"

	"github.com/vechain/nftstake/builtin/reverts"
)

var ErrOverflow = reverts.New(reverts.Arithmetic, "reward overflow")

// Accrue returns rate*(now-last)*count.
// It is 0 when nothing is staked or the clock did not advance past last.
func Accrue(rate, count, last, now uint64) (uint64, error) {
	if count == 0 || now <= last {
		return 0, nil
	}

	// every partial product must still fit a reward amount
	reward := uint256.NewInt(rate)
	for _, factor := range [...]uint64{now - last, count} {
		reward.Mul(reward, uint256.NewInt(factor))
		if !reward.IsUint64() {
			return 0, ErrOverflow
		}
	}
	return reward.Uint64(), nil
}

// Pending previews the reward a settlement at now would mint.
func Pending(rate, count, last, now uint64) (uint64, error) {
	return Accrue(rate, count, last, now)
}

// Checkpoint returns the checkpoint after a settlement at now. It never moves back.
func Checkpoint(last, now uint64) uint64 {
	return max(last, now)
}

// Minter issues reward tokens to the stake owner.
type Minter interface {
	MintReward(amount uint64) error
}

// MinterFunc adapts a func to Minter.
type MinterFunc func(amount uint64) error

func (f MinterFunc) MintReward(amount uint64) error {
	return f(amount)
}

// Settlement is the input of one settlement, read before any counter mutation.
type Settlement struct {
	Rate  uint64
	Count uint64
	Last  uint64
	Now   uint64
}

// Settle accrues the reward of s and mints it through m, zero included.
// The caller sets the checkpoint to Checkpoint(s.Last, s.Now) afterwards.
func Settle(m Minter, s Settlement) (uint64, error) {
	reward, err := Accrue(s.Rate, s.Count, s.Last, s.Now)
	if err != nil {
		return 0, err
	}
	if err := m.MintReward(reward); err != nil {
		return 0, err
	}
	return reward, nil
}
