package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"remd/internal/modkit/repokit"
	"remd/internal/platform/store"
	dom "remd/internal/services/napr/domain"
)

// fakeTx runs fn without a real transaction
type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (store.Rows, error)       { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) store.Row              { return nil }
func (fakeTx) Tx(_ context.Context, fn func(repokit.Queryer) error) error      { return fn(fakeTx{}) }

type fakeRepo struct {
	cands []dom.CandidateRecord
	err   error
	calls atomic.Int32
	gotW  dom.TimeWindow
}

func (f *fakeRepo) QueryInWindow(_ context.Context, w dom.TimeWindow) ([]dom.CandidateRecord, error) {
	f.calls.Add(1)
	f.gotW = w
	return f.cands, f.err
}

func binderFor(r *fakeRepo) repokit.Binder[dom.StorageRepo] {
	return repokit.BindFunc[dom.StorageRepo](func(repokit.Queryer) dom.StorageRepo { return r })
}

// fakeRegistrar fails the items listed in fail and counts every call
type fakeRegistrar struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls map[string]int
	order []string
	delay time.Duration

	inFlight, peak atomic.Int32
}

func newRegistrar(fail ...string) *fakeRegistrar {
	r := &fakeRegistrar{fail: map[string]bool{}, calls: map[string]int{}}
	for _, f := range fail {
		r.fail[f] = true
	}
	return r
}

func (r *fakeRegistrar) Register(ctx context.Context, item string) error {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}

	r.mu.Lock()
	r.calls[item]++
	r.order = append(r.order, item)
	fail := r.fail[item]
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return errRejected
	}
	return nil
}

type rejected struct{}

func (rejected) Error() string { return "rejected" }

var errRejected error = rejected{}

// recProgress records the progress protocol
type recProgress struct {
	total   int
	ticks   []int
	started bool
	stopped bool
}

func (p *recProgress) Start(total int)            { p.started, p.total = true, total }
func (p *recProgress) Tick(o dom.DispatchOutcome) { p.ticks = append(p.ticks, o.Seq) }
func (p *recProgress) Stop()                      { p.stopped = true }

type recSink struct {
	reps []dom.RunReport
	err  error
}

func (s *recSink) Record(_ context.Context, rep dom.RunReport) error {
	s.reps = append(s.reps, rep)
	return s.err
}
