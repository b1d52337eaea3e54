package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	app "github.com/okian/matchmaker/internal/app"
	"github.com/okian/matchmaker/internal/domain/matching"
	"github.com/okian/matchmaker/internal/domain/model"
	"github.com/okian/matchmaker/internal/domain/types"
)

type rankOptions struct {
	profile model.Profile
	k       int
	json    bool
}

func newRankCmd(root *rootOptions) *cobra.Command {
	opts := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the best-fit roster members for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.k < 1 {
				return fmt.Errorf("-k must be at least 1, got %d", opts.k)
			}
			svc, err := root.startService(cmd.Context(), app.WithMaxTopK(opts.k))
			if err != nil {
				return err
			}
			defer svc.Stop()

			res, err := svc.Match(cmd.Context(), opts.profile, opts.k)
			if err != nil {
				return err
			}
			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printShortlist(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.profile.Name, "name", "", "prospective member name")
	f.StringVar(&opts.profile.Year, "year", "", "academic year")
	f.StringVar(&opts.profile.Major, "major", "", "major")
	f.StringVar(&opts.profile.Description, "description", "", "free-form description")
	f.StringSliceVar(&opts.profile.Badges, "badge", nil, "badge ID; repeat or comma-separate")
	f.IntVarP(&opts.k, "top", "k", matching.DefaultTopK, "shortlist length")
	f.BoolVar(&opts.json, "json", false, "print JSON")
	return cmd
}

func printShortlist(w io.Writer, res types.MatchResult) error {
	if len(res.Matches) == 0 {
		_, err := fmt.Fprintln(w, res.Message)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tMATCH\tYEAR\tMAJOR\tBADGES")
	for _, m := range res.Matches {
		names := make([]string, len(m.Badges))
		for i, b := range m.Badges {
			names[i] = b.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%d%%\t%s\t%s\t%s\n",
			m.Rank, m.Name, m.MatchPercentage, m.Year, m.Major, strings.Join(names, ", "))
	}
	return tw.Flush()
}
