// Package service implements the referral registration run: select, dispatch, report
package service

import (
	"context"
	"errors"
	"time"

	"remd/internal/modkit/repokit"
	"remd/internal/platform/logger"
	"remd/internal/platform/metrics"
	ptime "remd/internal/platform/time"
	dom "remd/internal/services/napr/domain"
	"remd/internal/services/napr/guardrails"

	"github.com/google/uuid"
)

// Config controls concurrency, budgets and the run lease
type Config struct {
	Workers      int
	Timeouts     guardrails.Timeouts
	EnableLeases bool

	// Location is the calendar the window is computed in; nil means time.Local
	Location *time.Location
}

// Service wires TxRunner + Binder + Registrar into the run
type Service struct {
	DB        repokit.TxRunner
	Binder    repokit.Binder[dom.StorageRepo]
	Registrar dom.Registrar
	Cfg       Config

	// Sink is optional; failures are logged only
	Sink dom.OutcomeSink

	// Metrics is optional
	Metrics *metrics.Run

	// Lease is optional; used only when Cfg.EnableLeases is set
	Lease guardrails.Lease

	now   func() time.Time
	newID func() string
}

var _ dom.RunnerPort = (*Service)(nil)

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[dom.StorageRepo], reg dom.Registrar, cfg Config) *Service {
	if db == nil {
		panic("napr.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("napr.Service requires a non nil Repo binder")
	}
	if reg == nil {
		panic("napr.Service requires a non nil Registrar")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Service{
		DB:        db,
		Binder:    binder,
		Registrar: reg,
		Cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Window resolves month/day against today in the configured location
func (s *Service) Window(month, day string) (dom.TimeWindow, error) {
	return ResolveWindow(s.now().In(s.Cfg.Location), month, day)
}

// Run selects the work list for w, dispatches it and returns the report.
// The report is returned even with an error when dispatch started
func (s *Service) Run(ctx context.Context, w dom.TimeWindow, p dom.Progress) (dom.RunReport, error) {
	rep := dom.RunReport{RunID: s.newID(), Window: w}
	ctx = logger.WithRun(ctx, rep.RunID, ptime.DayKey(w.Start))
	l := logger.C(ctx).With().Str("mod", "napr").Logger()
	l.Info().Time("from", w.Start).Time("to", w.End).Int("workers", s.Cfg.Workers).Msg("napr: run start")

	work := func(ctx context.Context) error {
		sel := &Selector{DB: s.DB, Binder: s.Binder, Timeouts: s.Cfg.Timeouts}
		items, err := sel.Select(ctx, w)
		if err != nil {
			return err
		}
		s.Metrics.Selected(len(items))

		disp := &Dispatcher{
			Registrar: s.Registrar,
			Workers:   s.Cfg.Workers,
			Timeouts:  s.Cfg.Timeouts,
			Progress:  p,
			Metrics:   s.Metrics,
			now:       s.now,
		}
		outs, derr := disp.Dispatch(ctx, items)
		rep.Outcomes = outs
		s.record(ctx, rep)
		return derr
	}

	var err error
	if s.Lease != nil && s.Cfg.EnableLeases {
		err = s.Lease(ctx, w.Start, work)
	} else {
		err = work(ctx)
	}
	s.Metrics.Finished(s.now())

	switch {
	case errors.Is(err, guardrails.ErrLeaseHeld):
		l.Warn().Msg("napr: another run holds the day; nothing dispatched")
	case err != nil:
		l.Error().Err(err).Msg("napr: run failed")
	default:
		l.Info().
			Int("total", rep.Total()).
			Int("registered", rep.Count(dom.StatusRegistered)).
			Int("failed", rep.Count(dom.StatusError)).
			Msg("napr: run done")
	}
	return rep, err
}

func (s *Service) record(ctx context.Context, rep dom.RunReport) {
	if s.Sink == nil || rep.Empty() {
		return
	}
	// the audit write should land even when the run was interrupted
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := s.Sink.Record(sctx, rep); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("napr: outcome sink failed")
	}
}
