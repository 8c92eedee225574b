package service

import (
	"context"
	"fmt"

	"remd/internal/modkit/repokit"
	perr "remd/internal/platform/errors"
	"remd/internal/platform/logger"
	dom "remd/internal/services/napr/domain"
	"remd/internal/services/napr/guardrails"
)

// Dedupe keeps the first candidate of every actor, in input order.
// Later candidates of a seen actor are dropped even if their item differs
func Dedupe(cands []dom.CandidateRecord) []dom.WorkItem {
	seen := make(map[int64]struct{}, len(cands))
	out := make([]dom.WorkItem, 0, len(cands))
	for _, c := range cands {
		if _, ok := seen[c.ActorID]; ok {
			continue
		}
		seen[c.ActorID] = struct{}{}
		out = append(out, dom.WorkItem{ActorID: c.ActorID, ItemID: c.ItemID})
	}
	return out
}

// Selector turns a window into the deduplicated work list
type Selector struct {
	DB       repokit.TxRunner
	Binder   repokit.Binder[dom.StorageRepo]
	Timeouts guardrails.Timeouts
}

// Select queries the store once and dedups; it does not retry
func (s *Selector) Select(ctx context.Context, w dom.TimeWindow) ([]dom.WorkItem, error) {
	if !w.Valid() {
		return nil, perr.InvalidArgf("napr: invalid window %s .. %s", w.Start, w.End)
	}

	qctx, cancel := guardrails.ForQuery(ctx, s.Timeouts)
	defer cancel()

	var cands []dom.CandidateRecord
	err := s.DB.Tx(qctx, func(q repokit.Queryer) error {
		var err error
		cands, err = s.Binder.Bind(q).QueryInWindow(qctx, w)
		return err
	})
	if err != nil {
		return nil, perr.Wrap(fmt.Errorf("%w: %w", dom.ErrStoreUnavailable, err), perr.ErrorCodeUnavailable, "napr: select candidates")
	}

	items := Dedupe(cands)
	logger.C(ctx).Info().
		Int("candidates", len(cands)).
		Int("actors", len(items)).
		Msg("napr: selection done")
	return items, nil
}
