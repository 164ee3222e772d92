// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package processor executes ledger operations atomically against persistent state.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/builtin/staker"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

var logger = log.WithContext("pkg", "processor")

// Clock returns the trusted time of an execution, in seconds.
type Clock func() uint64

// SystemClock reads the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// Programs are the program instances bound to the state of one execution.
type Programs struct {
	Staker   *staker.Staker
	Token    *token.Token
	Metadata *metadata.Registry
}

// Operation is one ledger instruction. Any returned error reverts all its changes.
type Operation func(env *xenv.Environment, p *Programs) error

// Request describes one execution.
type Request struct {
	// Name labels the operation in logs and metrics.
	Name    string
	Signers []thor.Address
	// Time overrides the clock when non-zero.
	Time uint64
}

// Receipt reports a committed execution.
type Receipt struct {
	Name    string       `json:"name"`
	Time    uint64       `json:"time"`
	Changes int          `json:"changes"`
	Hash    thor.Bytes32 `json:"hash"`
}

// Processor serialises operations, each in a checkpoint committed in one batch.
type Processor struct {
	stater   *state.Stater
	programs *builtin.Programs
	clock    Clock

	lock sync.Mutex
}

// New creates a processor. A nil clock falls back to SystemClock.
func New(stater *state.Stater, programs *builtin.Programs, clock Clock) *Processor {
	if clock == nil {
		clock = SystemClock
	}
	return &Processor{
		stater:   stater,
		programs: programs,
		clock:    clock,
	}
}

// Execute runs op. The changes are committed only if op succeeds.
func (p *Processor) Execute(ctx context.Context, req Request, op Operation) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	now := req.Time
	if now == 0 {
		now = p.clock()
	}
	env := xenv.New(&xenv.BlockContext{Time: now}, &xenv.TransactionContext{Signers: req.Signers})

	st := p.stater.NewState()
	bound := &Programs{
		Staker:   p.programs.StakerWithState(st),
		Token:    p.programs.TokenWithState(st),
		Metadata: p.programs.MetadataWithState(st),
	}

	start := time.Now()
	chk := st.NewCheckpoint()
	if err := op(env, bound); err != nil {
		st.RevertTo(chk)
		status := "error"
		if reverts.IsRevertErr(err) {
			status = reverts.KindOf(err).String()
		}
		metricOperations().AddWithLabel(1, map[string]string{"op": req.Name, "status": status})
		logger.Debug("operation reverted", "op", req.Name, "time", now, "err", err)
		return nil, err
	}

	stage := st.Stage()
	hash, err := stage.Commit()
	if err != nil {
		metricOperations().AddWithLabel(1, map[string]string{"op": req.Name, "status": "commit"})
		return nil, errors.Wrap(err, "commit state")
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": req.Name, "status": "ok"})
	metricExecution().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": req.Name})

	if changed, snap := p.stater.CacheStats().Report(); changed {
		logger.Debug("state cache", "hit", snap.Hit, "miss", snap.Miss, "rate", snap.HitRate())
	}
	logger.Info("operation committed", "op", req.Name, "time", now, "changes", stage.Len(), "hash", hash.AbbrevString())

	return &Receipt{
		Name:    req.Name,
		Time:    now,
		Changes: stage.Len(),
		Hash:    hash,
	}, nil
}

// View runs a read-only function against the latest committed state.
func (p *Processor) View(fn func(p *Programs) error) error {
	st := p.stater.NewState()
	return fn(&Programs{
		Staker:   p.programs.StakerWithState(st),
		Token:    p.programs.TokenWithState(st),
		Metadata: p.programs.MetadataWithState(st),
	})
}
