package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/matchmaker/internal/adapters/repository"
	app "github.com/okian/matchmaker/internal/app"
	"github.com/okian/matchmaker/pkg/logger"
)

const defaultLoadTimeout = 5 * time.Second

type rootOptions struct {
	rosterPath  string
	rosterURL   string
	loadTimeout time.Duration
	debug       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "matchctl",
		Short:        "matchctl ranks matchmaking roster members against a prospective member profile",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			level := "warn"
			if opts.debug {
				level = "debug"
			}
			return logger.SetLevelString(level)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.rosterPath, "roster", "r", "data/matchmaking.json", "roster JSON file")
	flags.StringVar(&opts.rosterURL, "url", "", "fetch the roster over HTTP instead of reading --roster")
	flags.DurationVar(&opts.loadTimeout, "timeout", defaultLoadTimeout, "roster load timeout")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")

	cmd.AddCommand(newRankCmd(opts), newBadgesCmd(opts))
	return cmd
}

func (o *rootOptions) source() (repository.Source, error) {
	switch {
	case o.rosterURL != "":
		return repository.HTTPSource{URL: o.rosterURL}, nil
	case o.rosterPath != "":
		return repository.FileSource{Path: o.rosterPath}, nil
	default:
		return nil, errors.New("one of --roster or --url is required")
	}
}

// startService loads the roster into a service configured for the CLI.
func (o *rootOptions) startService(ctx context.Context, extra ...app.Option) (*app.Service, error) {
	src, err := o.source()
	if err != nil {
		return nil, err
	}
	opts := append([]app.Option{
		app.WithLogger(logger.Get().Named("matchctl")),
		app.WithSource(src),
		app.WithLoadTimeout(o.loadTimeout),
	}, extra...)

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
