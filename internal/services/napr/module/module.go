// Package module wires up the napr service as a modkit.Module
package module

import (
	"remd/internal/adapters/registration"
	"remd/internal/modkit"
	modreg "remd/internal/modkit/module"
	"remd/internal/modkit/repokit"
	perr "remd/internal/platform/errors"

	dom "remd/internal/services/napr/domain"
	"remd/internal/services/napr/guardrails"
	naprrepo "remd/internal/services/napr/repo"
	naprservice "remd/internal/services/napr/service"
)

// Name is the module name in logs and the registry
const Name = "napr"

// Ports exported by the napr module
type Ports struct {
	Runner dom.RunnerPort
}

// Collaborators can be injected with modkit.WithPorts to replace the defaults
type Collaborators struct {
	// Registrar replaces the command built from CORE_NAPR_ACTION_CMD
	Registrar dom.Registrar
}

// Module implements modkit.Module for napr
type Module struct {
	name  string
	opts  Options
	ports Ports
}

var _ modkit.Module = (*Module)(nil)

// New validates options from deps.Cfg and wires the napr module
func New(deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(Name, opts...)
	o := FromConfig(deps.Cfg)

	if deps.PG == nil {
		return nil, perr.Unavailablef("napr: postgres is required")
	}

	var reg dom.Registrar
	var skip []string
	if c, ok := modkit.Injected[Collaborators](b); ok && c.Registrar != nil {
		reg = c.Registrar
		skip = append(skip, "ActionCmd")
	}
	if err := o.validate(skip...); err != nil {
		return nil, err
	}
	if reg == nil {
		ex, err := registration.NewExec(o.ActionCmd)
		if err != nil {
			return nil, err
		}
		reg = ex
	}

	timeouts := guardrails.Timeouts{Query: o.QueryTimeout, Action: o.ActionTimeout}

	// candidate reads are read-only and bounded on the server too
	db := repokit.WithBeginHooks(deps.PG, repokit.ReadOnly, repokit.StatementTimeout(o.QueryTimeout))

	svc := naprservice.New(db, naprrepo.NewPG(), reg, naprservice.Config{
		Workers:      o.Workers,
		Timeouts:     timeouts,
		EnableLeases: o.EnableLeases,
		Location:     o.Location,
	})
	svc.Metrics = deps.Metrics
	svc.Lease = guardrails.MakeAdvisoryLease(deps.PG)
	if deps.HasCH() {
		svc.Sink = naprrepo.NewCHSink(deps.CH, o.OutcomesTable)
	}

	m := &Module{name: b.Name, opts: o}
	m.ports = Ports{Runner: svc}
	return m, nil
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the validated options the module was built with
func (m *Module) Options() Options { return m.opts }

// Register builds the module and publishes its ports in the registry
func Register(deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	m, err := New(deps, opts...)
	if err != nil {
		return nil, err
	}
	modreg.RegisterModule(m)
	return m, nil
}
