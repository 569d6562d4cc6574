// Package module provides the repostats module implementation
package module

import (
	"ghstats/internal/modkit"
	"ghstats/internal/services/repostats/domain"
	"ghstats/internal/services/repostats/ingest"
	"ghstats/internal/services/repostats/service"
)

// Ports defines the repostats module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the repostats module
type Module struct {
	deps  modkit.Deps
	name  string
	opts  Options
	ports Ports
}

// New constructs the repostats module
// It wires the archive fetcher and reader using config from deps.Cfg.
// A domain.Fetcher passed through modkit.WithPorts replaces the HTTP fetcher
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(opts...)
	o := FromConfig(deps.Cfg)

	fetch, ok := modkit.Override[domain.Fetcher](b)
	if !ok {
		fetch = ingest.NewFetcher(ingest.FetchOptions{
			BaseURL:   o.BaseURL,
			Timeout:   o.HTTPTimeout,
			UserAgent: o.UserAgent,
		})
	}
	svc := service.New(fetch, ingest.NewReaderFactory())

	name := b.Name
	if name == "" {
		name = "repostats"
	}
	deps.Logger().Debug().
		Str("module", name).
		Str("base_url", o.BaseURL).
		Dur("http_timeout", o.HTTPTimeout).
		Str("granularity", string(o.Granularity)).
		Bool("fetcher_override", ok).
		Msg("module wired")

	return &Module{deps: deps, name: name, opts: o, ports: Ports{Runner: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the resolved environment options
func (m *Module) Options() Options { return m.opts }
