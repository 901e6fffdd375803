package role

import (
	"fmt"

	"github.com/BerryBytes/sessionctl/internal/session"
	generalutils "github.com/BerryBytes/sessionctl/utils/general"
	promptutils "github.com/BerryBytes/sessionctl/utils/prompt"
	"github.com/spf13/cobra"
)

// Dependencies injects the session manager into the role commands.
type Dependencies struct {
	Manager *session.Manager
}

// NewRoleCommands builds the `role` command group.
func NewRoleCommands(deps Dependencies) *cobra.Command {
	roleCmd := &cobra.Command{
		Use:   "role",
		Short: "Select SSO roles and export temporary credentials",
		Long:  "Resolve, cache, and export temporary AWS credentials for IAM Identity Center roles.",
	}

	roleCmd.AddCommand(setCmd(deps))
	roleCmd.AddCommand(openCmd(deps))

	return roleCmd
}

// AddCommonFlags registers the flags shared by the role subcommands.
func AddCommonFlags(cmd *cobra.Command, opts *session.Options) {
	cmd.Flags().StringVar(&opts.StartURL, "start-url", "", "IAM Identity Center start URL for this run")
	cmd.Flags().StringVar(&opts.Region, "region", "", "IAM Identity Center region (for example: us-east-1)")
	cmd.Flags().StringVarP(&opts.Identity, "identity", "i", "", "Configured identity name to use")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Filter term for account/role selection (bypasses history ranking)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Skip token/role/credential cache reads and force a refresh")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Do not open a browser during sign-in")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to the sessionctl config file")
}

func setCmd(deps Dependencies) *cobra.Command {
	var opts session.Options

	cmd := &cobra.Command{
		Use:     "set",
		Aliases: []string{"s"},
		Short:   "Select a role and emit AWS credential exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := validateRegionFlag(opts.Region); err != nil {
				return err
			}
			err := deps.Manager.Run(cmd.Context(), opts, session.ActionSet)
			if err == promptutils.ErrInterrupted {
				return nil
			}
			return err
		},
	}

	AddCommonFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "Write credential exports to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.PrintEnv, "print", false, "Print exports to stdout even when --env-file is set")

	return cmd
}

func openCmd(deps Dependencies) *cobra.Command {
	var opts session.Options

	cmd := &cobra.Command{
		Use:     "open",
		Aliases: []string{"o"},
		Short:   "Select a role and open it in the AWS access portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := validateRegionFlag(opts.Region); err != nil {
				return err
			}
			err := deps.Manager.Run(cmd.Context(), opts, session.ActionOpen)
			if err == promptutils.ErrInterrupted {
				return nil
			}
			return err
		},
	}

	AddCommonFlags(cmd, &opts)

	return cmd
}

func validateRegionFlag(region string) error {
	if region == "" {
		return nil
	}
	if !generalutils.IsRegionValid(region) {
		return fmt.Errorf("not a valid AWS region: %s", region)
	}
	return nil
}
