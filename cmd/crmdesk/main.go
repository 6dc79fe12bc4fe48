// Command crmdesk serves the CRM Desk API and imports closed Freshdesk tickets.
//
// @title CRM Desk API
// @version 1.0
// @description Customer records, quotes and field visits, with closed Freshdesk tickets imported on demand or on a schedule.
// @BasePath /api
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"crmdesk/internal/interfaces/cli/credentials"
	"crmdesk/internal/interfaces/cli/migrate"
	"crmdesk/internal/interfaces/cli/server"
	"crmdesk/internal/interfaces/cli/sync"
	"crmdesk/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "crmdesk",
		Short:   "CRM Desk - customer records and Freshdesk ticket sync",
		Long:    `CRM Desk serves the CRUD API for organizations, branches, requesters, equipment, quotes and visits, and imports closed Freshdesk tickets into the local store.`,
		Version: version.String(),

		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sync.NewCommand(),
		credentials.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
