package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/matchmaker/internal/domain/model"
)

func newBadgesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List the badge catalog grouped by pillar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := root.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			badges, err := svc.Badges(cmd.Context())
			if err != nil {
				return err
			}
			return printBadges(cmd.OutOrStdout(), badges)
		},
	}
}

// printBadges groups badges by pillar in order of first appearance.
func printBadges(w io.Writer, badges []model.Badge) error {
	var pillars []model.Pillar
	groups := make(map[model.Pillar][]model.Badge)
	for _, b := range badges {
		if _, seen := groups[b.Pillar]; !seen {
			pillars = append(pillars, b.Pillar)
		}
		groups[b.Pillar] = append(groups[b.Pillar], b)
	}

	for _, p := range pillars {
		title := string(p)
		if title == "" {
			title = "UNASSIGNED"
		}
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
		for _, b := range groups[p] {
			if _, err := fmt.Fprintf(w, "  %-12s %s\n", b.ID, b.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
