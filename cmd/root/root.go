package root

import (
	"context"
	"fmt"
	"os"

	cmdHistory "github.com/BerryBytes/sessionctl/cmd/history"
	cmdRole "github.com/BerryBytes/sessionctl/cmd/role"
	"github.com/BerryBytes/sessionctl/internal/awsclient"
	"github.com/BerryBytes/sessionctl/internal/session"
	"github.com/BerryBytes/sessionctl/models"
	generalutils "github.com/BerryBytes/sessionctl/utils/general"
	promptutils "github.com/BerryBytes/sessionctl/utils/prompt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the full command tree with production dependencies.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sessionctl",
		Short: "AWS IAM Identity Center session tool",
		Long:  `Select an AWS IAM Identity Center account and role, then export temporary AWS credentials.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("No subcommand provided. Showing help...")
			return cmd.Help()
		},
	}

	manager := &session.Manager{
		Fs:       afero.NewOsFs(),
		Prompter: promptutils.NewPrompt(),
		Browser:  generalutils.NewBrowser(),
		Out:      os.Stdout,
		NewGateway: func(ctx context.Context, region string) (awsclient.SSOGateway, error) {
			return awsclient.NewClient(ctx, region)
		},
	}

	rootCmd.AddCommand(cmdRole.NewRoleCommands(cmdRole.Dependencies{Manager: manager}))
	rootCmd.AddCommand(cmdHistory.NewHistoryCommands(cmdHistory.Dependencies{
		Fs:  afero.NewOsFs(),
		Out: os.Stdout,
	}))
	rootCmd.AddCommand(whoamiCmd(manager))
	rootCmd.AddCommand(unsetCmd())

	return rootCmd
}

func whoamiCmd(manager *session.Manager) *cobra.Command {
	var opts session.Options

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the caller identity of the exported credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return manager.Whoami(cmd.Context(), opts)
		},
	}

	cmdRole.AddCommonFlags(cmd, &opts)

	return cmd
}

func unsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset",
		Short: "Print shell commands that clear the exported AWS variables",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(models.UnsetLine())
		},
	}
}
