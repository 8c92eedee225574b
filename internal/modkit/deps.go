// Package modkit provides module wiring and core deps
package modkit

import (
	"remd/internal/modkit/repokit"
	"remd/internal/platform/config"
	"remd/internal/platform/logger"
	"remd/internal/platform/metrics"
	"remd/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner

	// CH is optional; nil means no columnar audit
	CH store.Clickhouse

	// Metrics is optional; nil collectors are no-ops
	Metrics *metrics.Run
}

// HasCH reports whether a clickhouse seam was wired
func (d Deps) HasCH() bool { return d.CH != nil }
