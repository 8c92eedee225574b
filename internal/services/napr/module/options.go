package module

import (
	"time"

	"remd/internal/platform/config"
)

// Options for the napr module
type Options struct {
	ActionCmd     string         `env:"ACTION_CMD" validate:"required"`
	Workers       int            `env:"WORKERS" validate:"min=1,max=64"`
	ActionTimeout time.Duration  `env:"ACTION_TIMEOUT" validate:"gt=0s"`
	QueryTimeout  time.Duration  `env:"QUERY_TIMEOUT" validate:"gt=0s"`
	Location      *time.Location `validate:"-"`
	EnableLeases  bool           `env:"LEASES"`
	Lang          string         `env:"LANG" validate:"oneof=ru en"`
	OutcomesTable string         `env:"OUTCOMES_TABLE" validate:"required,printascii"`
}

// FromConfig fills options from environment
// CORE_NAPR_ACTION_CMD (required) is the registration command line, {item} marks the item argument
// CORE_NAPR_WORKERS (default 1) is the number of concurrent registrations
// CORE_NAPR_ACTION_TIMEOUT (default 10m) bounds one registration
// CORE_NAPR_QUERY_TIMEOUT (default 2m) bounds the candidate query
// CORE_NAPR_TZ (default Local) is the calendar the window is computed in
// CORE_NAPR_LEASES (default true) enables the advisory lock around the run day
// CORE_NAPR_LANG (default "ru") is the report language: "ru" or "en"; anything else falls back to "ru"
// CORE_NAPR_OUTCOMES_TABLE (default "remd.napr_outcomes") is the clickhouse audit table
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("CORE_NAPR_")
	return Options{
		ActionCmd:     n.MayString("ACTION_CMD", ""),
		Workers:       n.MayInt("WORKERS", 1),
		ActionTimeout: n.MayDuration("ACTION_TIMEOUT", 10*time.Minute),
		QueryTimeout:  n.MayDuration("QUERY_TIMEOUT", 2*time.Minute),
		Location:      n.MayLocation("TZ"),
		EnableLeases:  n.MayBool("LEASES", true),
		Lang:          n.MayEnum("LANG", "ru", "ru", "en"),
		OutcomesTable: n.MayString("OUTCOMES_TABLE", "remd.napr_outcomes"),
	}
}
