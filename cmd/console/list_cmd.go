package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list <positions|teams|collaborators|projects>",
		Short: "Load one page of a resource and print it",
		Example: `  console list collaborators --query "page=2&filter=firstName&search=Jane"
  console list teams --page-size 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := newLocation(args[0], query)
			if err != nil {
				return err
			}
			s, err := a.newSession(args[0], loc)
			if err != nil {
				return err
			}
			loadErr := s.initialize(cmd.Context(), a.pageSize)
			s.render(cmd.OutOrStdout())
			if loadErr != nil {
				return withCode(exitAPI, fmt.Errorf("list %s: %w", args[0], loadErr))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "URL query to start from (page, pageSize, filter, search)")
	return cmd
}
