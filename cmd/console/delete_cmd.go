package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"orion-console/apiclient"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <positions|teams|collaborators|projects> <id>",
		Short: "Delete one entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, id := args[0], args[1]
			del, err := a.deleter(resource)
			if err != nil {
				return err
			}
			if err := del(cmd.Context(), id); err != nil {
				if errors.Is(err, apiclient.ErrInvalidID) {
					return withCode(exitUsage, fmt.Errorf("invalid id %q", id))
				}
				if errors.Is(err, apiclient.ErrNotFound) {
					return withCode(exitAPI, fmt.Errorf("%s %s not found", resource, id))
				}
				return withCode(exitAPI, fmt.Errorf("delete %s %s: %w", resource, id, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", resource, id)
			return nil
		},
	}
}

func (a *app) deleter(resource string) (func(ctx context.Context, id string) error, error) {
	switch resource {
	case "positions":
		return a.api.Positions.Delete, nil
	case "teams":
		return a.api.Teams.Delete, nil
	case "collaborators":
		return a.bff.DeleteCollaborator, nil
	case "projects":
		return a.api.Projects.Delete, nil
	}
	return nil, withCode(exitUsage, fmt.Errorf("unknown resource %q", resource))
}
