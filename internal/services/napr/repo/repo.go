// Package repo implements napr storage: the Postgres candidate query and the ClickHouse outcome sink
package repo

import (
	"context"

	"remd/internal/modkit/repokit"
	perr "remd/internal/platform/errors"
	"remd/internal/platform/store"
	dom "remd/internal/services/napr/domain"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// required profile columns of the submitting doctor
var profileColumns = []string{"u.d_bir", "u.snils", "u.prvs", "u.prvs_v015", "u.id_nsipost"}

type pgRepo struct {
	q repokit.Queryer
}

// NewPG returns a binder producing the Postgres StorageRepo
func NewPG() repokit.Binder[dom.StorageRepo] {
	return repokit.BindFunc[dom.StorageRepo](func(q repokit.Queryer) dom.StorageRepo {
		return &pgRepo{q: q}
	})
}

// CandidateQuery builds the referral result selection for w.
// date_in holds epoch seconds; both bounds are inclusive
func CandidateQuery(w dom.TimeWindow) sq.SelectBuilder {
	notNull := sq.NotEq{
		"dh.mkb":         nil,
		"me.ds":          nil,
		"us.fingerprint": nil,
	}
	for _, c := range profileColumns {
		notNull[c] = nil
	}

	return psql.
		Select("r.id_user_send", "r.id_res", "me.ds").
		From("results r").
		Join("dep_hsp dh ON dh.id_hsp = r.id_hsp").
		Join("mkb m ON m.mkb = dh.mkb").
		Join("measur me ON me.id_hsp = dh.id_hsp").
		Join("analysis a ON a.id_anal = r.id_anal").
		Join("user_sign us ON us.id_user = r.id_user_send").
		Join("users u ON u.id_user = r.id_user_send").
		// only the latest department stay of the hospitalisation counts
		Where("dh.id_dephsp = (SELECT MAX(d2.id_dephsp) FROM dep_hsp d2 WHERE d2.id_hsp = r.id_hsp)").
		Where(notNull).
		Where(sq.Eq{"u.old_mark": nil}).
		Where(sq.Expr("r.date_in BETWEEN ? AND ?", w.Start.Unix(), w.End.Unix())).
		OrderBy("r.id_user_send", "r.id_res")
}

func scanCandidate(r store.Row) (dom.CandidateRecord, error) {
	var (
		actor, res int64
		ds         string
	)
	if err := r.Scan(&actor, &res, &ds); err != nil {
		return dom.CandidateRecord{}, err
	}
	return dom.CandidateRecord{ActorID: actor, ItemID: dom.ReferralItemID(res), Diagnosis: ds}, nil
}

// QueryInWindow returns eligible candidates ordered by actor then result id
func (r *pgRepo) QueryInWindow(ctx context.Context, w dom.TimeWindow) ([]dom.CandidateRecord, error) {
	sql, args, err := CandidateQuery(w).ToSql()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "napr: build candidate query")
	}
	out, err := store.Many(ctx, r.q, scanCandidate, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "napr: candidate query")
	}
	return out, nil
}
