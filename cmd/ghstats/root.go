package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"ghstats/internal/adapters/ingest/gharchive"
	"ghstats/internal/core/version"
	"ghstats/internal/modkit"
	"ghstats/internal/modkit/module"
	"ghstats/internal/platform/config"
	perr "ghstats/internal/platform/errors"
	"ghstats/internal/platform/logger"
	ptime "ghstats/internal/platform/time"
	"ghstats/internal/services/repostats/domain"
	repostatsmod "ghstats/internal/services/repostats/module"
	"ghstats/internal/services/repostats/render"

	"github.com/spf13/cobra"
)

// now is the clock the default window is computed from
var now = time.Now

// app carries the command's flags and its output seams
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	modOpts []modkit.Option

	after       string
	before      string
	event       string
	count       int
	granularity string
	format      string
	logLevel    string
}

// execute runs the command line and returns the process exit status
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...modkit.Option) int {
	a := &app{stdout: stdout, stderr: stderr, modOpts: opts}
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		report(stderr, err)
	}
	return perr.ExitStatus(err)
}

// report prints config errors as the bare message and anything else prefixed
func report(w io.Writer, err error) {
	if perr.IsCode(err, perr.ErrorCodeConfig) {
		_, _ = fmt.Fprintln(w, err.Error())
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghstats",
		Short: "Rank the most active GitHub repositories over a time window",
		Long: `ghstats downloads the hourly GitHub event archives covering a time window,
keeps the events of one type whose repository was pushed inside the window,
and prints the repositories with the most such events.

Times accept RFC 3339 and shorter forms such as 2023-01-02 or 2023-01-02T15.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return perr.Configf("unexpected argument %q", args[0])
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			opts := logger.FromEnv()
			if a.logLevel != "" {
				opts.Level = a.logLevel
			}
			opts.Writer = a.stderr
			opts.StaticFields = map[string]string{"version": version.Info().Version}
			logger.Init(opts)
		},
		RunE: a.run,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return perr.Wrap(err, perr.ErrorCodeConfig, "invalid flags")
	})

	f := cmd.Flags()
	f.StringVar(&a.after, "after", "", "start of the window (default 7 days ago)")
	f.StringVar(&a.before, "before", "", "end of the window, inclusive (default and cap 1 day ago)")
	f.StringVar(&a.event, "event", domain.DefaultEventName, "event type to count")
	f.IntVarP(&a.count, "count", "n", domain.DefaultCount, "number of repositories to print")
	f.StringVar(&a.granularity, "granularity", "",
		"archive hours to visit: "+strings.Join(gharchive.Granularities, " | ")+" (default from GHSTATS_GRANULARITY, else hourly)")
	f.StringVar(&a.format, "format", string(render.FormatLines), "output format: "+strings.Join(render.Formats, " | "))
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error, off)")

	cmd.AddCommand(versionCmd(a))
	return cmd
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(a.stdout, version.Info().String())
		},
	}
}

func (a *app) run(cmd *cobra.Command, _ []string) error {
	deps := modkit.Deps{Log: logger.Named("cli"), Cfg: config.New()}
	m := repostatsmod.New(deps, a.modOpts...)

	rc, format, err := a.runConfig(cmd, m.Options())
	if err != nil {
		return err
	}

	rows, err := module.MustPortsOf[domain.RunnerPort](m).Run(cmd.Context(), rc)
	if err != nil {
		return err
	}
	return render.Write(a.stdout, format, rows)
}

// runConfig resolves flags over env options into a RunConfig; validation of the
// window and count happens in the service, before any fetch
func (a *app) runConfig(cmd *cobra.Command, opts repostatsmod.Options) (domain.RunConfig, render.Format, error) {
	at := now().UTC()
	rc := domain.RunConfig{
		After:       at.Add(-domain.DefaultLookback),
		Before:      ptime.Yesterday(at),
		EventName:   a.event,
		Count:       a.count,
		Granularity: opts.Granularity,
	}

	if a.after != "" {
		t, err := ptime.ParseInstant(a.after)
		if err != nil {
			return rc, "", perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "invalid --after"), "after")
		}
		rc.After = t
	}
	if a.before != "" {
		t, err := ptime.ParseInstant(a.before)
		if err != nil {
			return rc, "", perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "invalid --before"), "before")
		}
		rc.Before = ptime.ClampBefore(t, at)
	}
	if cmd.Flags().Changed("granularity") {
		g, err := gharchive.ParseGranularity(a.granularity)
		if err != nil {
			return rc, "", perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "invalid --granularity"), "granularity")
		}
		rc.Granularity = g
	}

	format, err := render.ParseFormat(a.format)
	if err != nil {
		return rc, "", perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "invalid --format"), "format")
	}
	return rc, format, nil
}
