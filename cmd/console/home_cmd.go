package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"orion-console/apiclient"
	"orion-console/dto"
)

func newHomeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "home <teamId>",
		Short:   "Show a team with its members and projects",
		Example: `  console home t1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ov, err := a.bff.TeamOverview(cmd.Context(), id)
			if err != nil {
				switch {
				case errors.Is(err, apiclient.ErrInvalidID):
					return withCode(exitUsage, fmt.Errorf("invalid id %q", id))
				case errors.Is(err, apiclient.ErrNotFound):
					return withCode(exitAPI, fmt.Errorf("team %s not found", id))
				}
				return withCode(exitAPI, fmt.Errorf("team overview %s: %w", id, err))
			}
			renderOverview(cmd.OutOrStdout(), ov)
			return nil
		},
	}
}

func renderOverview(w io.Writer, ov dto.TeamOverview) {
	fmt.Fprintf(w, "team: %s (%s)\n", ov.Team.Name, ov.Team.ID)
	if ov.Team.Description != "" {
		fmt.Fprintf(w, "description: %s\n", ov.Team.Description)
	}
	if len(ov.Team.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(ov.Team.Tags, ", "))
	}

	fmt.Fprintf(w, "\nmembers (%d):\n", len(ov.Members))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, m := range ov.Members {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.ID, m.FullName(), m.PositionName)
	}
	_ = tw.Flush()

	p := ov.Projects.Pagination
	fmt.Fprintf(w, "\nprojects (%d):\n", p.TotalItems)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, pr := range ov.Projects.Data {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", pr.ID, pr.Name, pr.Status)
	}
	_ = tw.Flush()
	if p.TotalPages > 1 {
		fmt.Fprintf(w, "  (page %d of %d)\n", p.Page, p.TotalPages)
	}
}
