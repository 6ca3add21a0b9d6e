package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const browseHelp = `commands:
  n            next page
  p            previous page
  g N          go to page N
  s N          change page size to N (pagination.page_size_options)
  f FIELD VAL  stage a filter (apply with a)
  a            apply staged filter
  c            clear filter
  r            reload
  back         previous URL in history
  forward      next URL in history
  q            quit`

func newBrowseCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "browse <positions|teams|collaborators|projects>",
		Short: "Page through a resource interactively",
		Long:  "Reads commands from stdin, one per line.\n\n" + browseHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := newLocation(args[0], query)
			if err != nil {
				return err
			}
			s, err := a.newSession(args[0], loc)
			if err != nil {
				return err
			}
			return browse(cmd.Context(), s, a.pageSize, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "URL query to start from (page, pageSize, filter, search)")
	return cmd
}

func browse(ctx context.Context, s session, pageSize int, in io.Reader, out io.Writer) error {
	_ = s.initialize(ctx, pageSize)
	s.render(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "q", "quit", "exit":
			return nil
		case "h", "help", "?":
			fmt.Fprintln(out, browseHelp)
			continue
		}
		if err := s.exec(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		s.render(out)
	}
}
