package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orion-console/apiclient"
	"orion-console/config"
	"orion-console/httpclient"
	"orion-console/logger"
)

// app 은 플래그와 설정을 해석한 뒤 모든 하위 명령이 쓰는 값이다.
type app struct {
	apiURL   string
	bffURL   string
	pageSize int
	verbose  bool

	cfg *config.Config
	api *apiclient.Client
	bff *apiclient.BFF
}

func (a *app) setup() error {
	cfg, err := config.Load(config.GetBasePath())
	if err != nil {
		return withCode(exitUsage, err)
	}
	a.cfg = cfg

	level := "error"
	if a.verbose {
		level = "debug"
	}
	logger.Init(level, "orion-console")

	if a.apiURL == "" {
		a.apiURL = cfg.Env.APIBaseURL
	}
	if a.bffURL == "" {
		a.bffURL = cfg.Env.BFFBaseURL
	}
	if a.pageSize < 1 {
		a.pageSize = cfg.App.Pagination.DefaultPageSize
	}

	client := httpclient.New(httpclient.Config{Timeout: cfg.App.Upstream.Timeout})
	a.api = apiclient.NewWithBase(httpclient.NewBaseClientWithClient(client, a.apiURL))
	a.bff = apiclient.NewBFFWithBase(httpclient.NewBaseClientWithClient(client, a.bffURL))
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "console",
		Short:         "Orion console: browse and edit positions, teams, collaborators and projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "REST API base URL (default $API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&a.bffURL, "bff-url", "", "BFF base URL (default $BFF_BASE_URL)")
	cmd.PersistentFlags().IntVar(&a.pageSize, "page-size", 0, "Default page size (default from config.yaml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log outbound requests")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newBrowseCmd(a))
	cmd.AddCommand(newFormCmd(a))
	cmd.AddCommand(newDeleteCmd(a))
	cmd.AddCommand(newHomeCmd(a))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
