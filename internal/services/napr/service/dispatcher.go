package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	perr "remd/internal/platform/errors"
	"remd/internal/platform/logger"
	"remd/internal/platform/metrics"
	dom "remd/internal/services/napr/domain"
	"remd/internal/services/napr/guardrails"

	"golang.org/x/sync/errgroup"
)

// MaxWorkers caps concurrent registration invocations
const MaxWorkers = 64

// Dispatcher invokes the registrar exactly once per work item
type Dispatcher struct {
	Registrar dom.Registrar
	Workers   int
	Timeouts  guardrails.Timeouts
	Progress  dom.Progress
	Metrics   *metrics.Run

	now func() time.Time
}

func (d *Dispatcher) workers(n int) int {
	w := d.Workers
	if w < 1 {
		w = 1
	}
	if w > MaxWorkers {
		w = MaxWorkers
	}
	if w > n {
		w = n
	}
	return w
}

func (d *Dispatcher) clock() func() time.Time {
	if d.now != nil {
		return d.now
	}
	return time.Now
}

// Dispatch returns one outcome per item, in item order, whatever the completion order.
// Items still pending when ctx ends are recorded as ERROR without being invoked;
// the returned error is then non-nil but the outcomes are complete
func (d *Dispatcher) Dispatch(ctx context.Context, items []dom.WorkItem) ([]dom.DispatchOutcome, error) {
	outs := make([]dom.DispatchOutcome, len(items))
	if len(items) == 0 {
		return outs, nil
	}
	var mu sync.Mutex
	tick := func(o dom.DispatchOutcome) {
		mu.Lock()
		defer mu.Unlock()
		if d.Progress != nil {
			d.Progress.Tick(o)
		}
	}

	if d.Progress != nil {
		d.Progress.Start(len(items))
	}

	// plain group: one failed item must not cancel its siblings
	var g errgroup.Group
	g.SetLimit(d.workers(len(items)))
	for i := range items {
		g.Go(func() error {
			outs[i] = d.one(ctx, i+1, items[i])
			tick(outs[i])
			return nil
		})
	}
	_ = g.Wait()

	if d.Progress != nil {
		d.Progress.Stop()
	}

	if err := ctx.Err(); err != nil {
		return outs, perr.Wrap(err, perr.ErrorCodeCanceled, "napr: dispatch interrupted")
	}
	return outs, nil
}

// one moves a single item PENDING -> DISPATCHED -> {REGISTERED | ERROR}
func (d *Dispatcher) one(ctx context.Context, seq int, it dom.WorkItem) (out dom.DispatchOutcome) {
	out = dom.DispatchOutcome{Seq: seq, ActorID: it.ActorID, ItemID: it.ItemID, Status: dom.StatusError}
	log := logger.From(ctx, logger.Named("napr-dispatch")).With().Int("seq", seq).Int64("actor_id", it.ActorID).Str("item", it.ItemID).Logger()

	if err := ctx.Err(); err != nil {
		log.Warn().Msg("napr: run cancelled before item started")
		return out
	}

	// a started item runs to completion or its own timeout, even after cancel
	actx, cancel := guardrails.ForAction(context.WithoutCancel(ctx), d.Timeouts)
	defer cancel()

	now := d.clock()
	start := now()
	out.Dispatched = true
	err := d.invoke(actx, it.ItemID)
	out.Elapsed = now().Sub(start)

	if err == nil {
		out.Status = dom.StatusRegistered
		log.Info().Dur("elapsed", out.Elapsed).Msg("napr: registered")
	} else {
		log.Warn().Err(err).Dur("elapsed", out.Elapsed).Msg("napr: registration failed")
	}
	d.Metrics.Outcome(string(out.Status), out.Elapsed)
	return out
}

// invoke calls the registrar and turns a panic into a failed item
func (d *Dispatcher) invoke(ctx context.Context, item string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("napr: registrar panic: %v", r)
		}
	}()
	return d.Registrar.Register(ctx, item)
}
