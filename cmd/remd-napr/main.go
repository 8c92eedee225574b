// Command remd-napr submits the day's examination referrals to the registry, one per doctor.
//
//	remd-napr --month=03 --day=12
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remd/internal/adapters/registration"
	"remd/internal/core/version"
	"remd/internal/modkit"
	modreg "remd/internal/modkit/module"
	"remd/internal/modkit/repokit"
	"remd/internal/platform/config"
	perr "remd/internal/platform/errors"
	"remd/internal/platform/logger"
	"remd/internal/platform/metrics"
	"remd/internal/platform/store"

	dom "remd/internal/services/napr/domain"
	"remd/internal/services/napr/guardrails"
	naprmod "remd/internal/services/napr/module"
	"remd/internal/services/napr/report"

	"github.com/spf13/cobra"
)

type flags struct {
	month  string
	day    string
	dryRun bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	code := perr.ExitOK
	cmd := newRootCmd(stdout, stderr, func(c int) { code = c })
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return perr.ExitFatal
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer, setCode func(int)) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "remd-napr",
		Short:         "Primary submission of examination and consultation referrals to REMD",
		Version:       version.Info("remd-napr").String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			setCode(run(ctx, f, stdout, stderr))
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVarP(&f.month, "month", "m", "", "month of the window day (with --day)")
	cmd.Flags().StringVarP(&f.day, "day", "d", "", "day of the window day (with --month)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "select and report without invoking the registration command")
	return cmd
}

func run(ctx context.Context, f flags, stdout, stderr io.Writer) int {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	metCfg := root.Prefix("CORE_METRICS_")

	l := logger.Get()
	l.Info().Str("build", version.Info("remd-napr").String()).Msg("remd-napr starting")

	pgURL := pgCfg.MayString("DBURL", "")
	if pgURL == "" {
		l.Error().Msg("SERVICE_PGSQL_DBURL is required")
		return perr.ExitFatal
	}
	chURL := chCfg.MayString("DBURL", "")

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgURL,
			MaxConns:    poolSize(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled:   chCfg.Has("DBURL"),
			URL:       chURL,
			ClientTag: "napr",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Error().Err(err).Msg("store.Open failed")
		return perr.ExitFatal
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := repokit.Guard(ctx, st); err != nil {
		l.Error().Err(err).Msg("store not ready")
		return perr.ExitFatal
	}

	met := metrics.NewRun()
	deps := modkit.Deps{Log: *l, Cfg: root, PG: st.PG, CH: st.CH, Metrics: met}

	var opts []modkit.Option
	if f.dryRun {
		// nothing was registered, so nothing is audited
		deps.CH = nil
		opts = append(opts, modkit.WithPorts(naprmod.Collaborators{Registrar: registration.DryRun}))
	}
	mod, err := naprmod.Register(deps, opts...)
	if err != nil {
		l.Error().Err(err).Msg("napr module")
		return perr.ExitFatal
	}
	ports, ok := modreg.PortsAs[naprmod.Ports](mod.Name())
	if !ok {
		l.Error().Str("module", mod.Name()).Msg("napr ports not registered")
		return perr.ExitFatal
	}

	lang := mod.Options().Lang
	rend := report.New(stdout, lang)

	w, werr := ports.Runner.Window(f.month, f.day)
	if werr != nil {
		l.Warn().Err(werr).Str("window_day", w.Day()).Msg("napr: window override ignored")
		rend.Override(w, werr)
	}

	rep, err := ports.Runner.Run(ctx, w, report.NewBar(stderr, lang))
	render(rend, w, rep, err)

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	host, _ := os.Hostname()
	if pushErr := met.Push(pctx, metCfg.MayString("PUSHGATEWAY", ""), "remd_napr", host); pushErr != nil {
		l.Warn().Err(pushErr).Msg("metrics push failed")
	}

	return exitCode(rep, err)
}

// minPoolConns is the lease transaction, held for the whole run, plus one for the candidate query
const minPoolConns = 2

func poolSize(n int) int32 {
	if n < minPoolConns {
		return minPoolConns
	}
	return int32(n)
}

func render(rend *report.Renderer, w dom.TimeWindow, rep dom.RunReport, err error) {
	switch {
	case errors.Is(err, guardrails.ErrLeaseHeld):
		rend.Busy(w)
	case err != nil && rep.Empty():
		rend.Fatal(err)
	default:
		if rerr := rend.Report(rep); rerr != nil {
			logger.Get().Error().Err(rerr).Msg("render report")
		}
	}
}

// exitCode is 0 when every item registered (or there were none), 2 when some failed,
// 3 when another run holds the day and 1 for anything fatal
func exitCode(rep dom.RunReport, err error) int {
	if err != nil {
		return perr.ExitCode(err)
	}
	if rep.Count(dom.StatusError) > 0 {
		return perr.ExitPartial
	}
	return perr.ExitOK
}
