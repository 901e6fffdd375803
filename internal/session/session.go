package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BerryBytes/sessionctl/internal/auth"
	"github.com/BerryBytes/sessionctl/internal/awsclient"
	"github.com/BerryBytes/sessionctl/internal/config"
	"github.com/BerryBytes/sessionctl/internal/credcache"
	"github.com/BerryBytes/sessionctl/internal/history"
	"github.com/BerryBytes/sessionctl/internal/resolver"
	"github.com/BerryBytes/sessionctl/internal/rolescache"
	"github.com/BerryBytes/sessionctl/internal/tokencache"
	"github.com/BerryBytes/sessionctl/models"
	promptutils "github.com/BerryBytes/sessionctl/utils/prompt"
	"github.com/spf13/afero"
)

// Action selects what happens after a role is chosen.
type Action int

const (
	// ActionSet exports temporary credentials for the chosen role.
	ActionSet Action = iota
	// ActionOpen opens the chosen role in the AWS access portal.
	ActionOpen
)

// Options are the per-run inputs supplied by CLI plumbing.
type Options struct {
	Identity   string
	StartURL   string
	Region     string
	Query      string
	NoCache    bool
	NoBrowser  bool
	EnvFile    string
	PrintEnv   bool
	ConfigPath string

	// Directory overrides; empty means the XDG/home defaults.
	ProviderCacheDir string
	ToolCacheDir     string
	HistoryPath      string
}

// GatewayFactory builds a remote client for a region. Tests substitute mocks.
type GatewayFactory func(ctx context.Context, region string) (awsclient.SSOGateway, error)

// Manager wires the resolution pipeline behind the CLI commands.
type Manager struct {
	Fs         afero.Fs
	Prompter   promptutils.Prompter
	Browser    auth.BrowserOpener
	Out        io.Writer
	NewGateway GatewayFactory
}

// Run resolves a role selection end to end for the given action.
func (m *Manager) Run(ctx context.Context, opts Options, action Action) error {
	identity, err := m.resolveIdentity(opts)
	if err != nil {
		return err
	}

	remote, err := m.NewGateway(ctx, identity.Region)
	if err != nil {
		return err
	}

	pipeline, hist, err := m.buildPipeline(remote, opts)
	if err != nil {
		return err
	}

	token, err := pipeline.AccessToken(ctx, identity.StartURL, identity.Region)
	if err != nil {
		return err
	}

	// Tokens minted elsewhere may belong to a different region; remote
	// calls must follow the token.
	region := identity.Region
	if token.Region != "" && token.Region != region {
		region = token.Region
		remote, err = m.NewGateway(ctx, region)
		if err != nil {
			return err
		}
		pipeline.Remote = remote
	}

	choices, err := pipeline.RoleChoices(ctx, token.AccessToken, identity.StartURL)
	if err != nil {
		return err
	}
	if len(choices) == 0 {
		return fmt.Errorf("no accounts or roles are available for %s", identity.StartURL)
	}

	hist.Rank(choices, identity.Name, opts.Query)

	choice, err := m.selectChoice(choices, opts.Query)
	if err != nil {
		return err
	}

	switch action {
	case ActionOpen:
		if err := m.openPortal(identity.StartURL, choice); err != nil {
			return err
		}
	default:
		if err := m.exportCredentials(ctx, pipeline, remote, token, identity, region, choice, opts); err != nil {
			return err
		}
	}

	if err := hist.Record(identity.Name, choice); err != nil {
		fmt.Fprintf(m.Out, "Warning: failed to record selection history: %v\n", err)
	}
	return nil
}

// Whoami reports the caller identity of the ambient credentials.
func (m *Manager) Whoami(ctx context.Context, opts Options) error {
	identity, err := m.resolveIdentity(opts)
	if err != nil {
		return err
	}
	remote, err := m.NewGateway(ctx, identity.Region)
	if err != nil {
		return err
	}
	arn, err := remote.ValidateCredentials(ctx, nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.Out, arn)
	return nil
}

func (m *Manager) resolveIdentity(opts Options) (config.Identity, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return config.Identity{}, err
		}
	}
	cfg, err := config.Load(m.Fs, configPath)
	if err != nil {
		return config.Identity{}, err
	}
	return cfg.ResolveIdentity(opts.Identity, opts.StartURL, opts.Region)
}

func (m *Manager) buildPipeline(remote awsclient.SSOGateway, opts Options) (*resolver.Resolver, *history.Store, error) {
	providerDir := opts.ProviderCacheDir
	if providerDir == "" {
		var err error
		providerDir, err = config.ProviderCacheDir()
		if err != nil {
			return nil, nil, err
		}
	}
	toolDir := opts.ToolCacheDir
	if toolDir == "" {
		var err error
		toolDir, err = config.ToolCacheDir()
		if err != nil {
			return nil, nil, err
		}
	}
	historyPath := opts.HistoryPath
	if historyPath == "" {
		var err error
		historyPath, err = config.HistoryPath()
		if err != nil {
			return nil, nil, err
		}
	}

	tokens := tokencache.NewStore(m.Fs, providerDir, toolDir)
	browser := m.Browser
	if opts.NoBrowser {
		browser = nil
	}
	flow := auth.NewDeviceFlow(remote, tokens, browser, m.Out)

	pipeline := &resolver.Resolver{
		Remote:      remote,
		Tokens:      tokens,
		Roles:       rolescache.NewStore(m.Fs, toolDir),
		Creds:       credcache.NewStore(m.Fs, toolDir),
		Flow:        flow,
		Out:         m.Out,
		BypassCache: opts.NoCache,
	}
	return pipeline, history.NewStore(m.Fs, historyPath), nil
}

// selectChoice narrows by the explicit query first, then prompts. A query
// that matches exactly one candidate skips the prompt entirely.
func (m *Manager) selectChoice(choices []models.RoleChoice, query string) (models.RoleChoice, error) {
	candidates := choices
	if term := strings.TrimSpace(query); term != "" {
		var matched []models.RoleChoice
		for _, choice := range choices {
			if strings.Contains(strings.ToLower(choice.Label()), strings.ToLower(term)) {
				matched = append(matched, choice)
			}
		}
		if len(matched) == 0 {
			return models.RoleChoice{}, fmt.Errorf("no account or role matches %q", term)
		}
		if len(matched) == 1 {
			return matched[0], nil
		}
		candidates = matched
	}
	return m.Prompter.SelectRole("Select an account and role", candidates)
}

func (m *Manager) openPortal(startURL string, choice models.RoleChoice) error {
	if m.Browser == nil {
		return errors.New("browser support is disabled")
	}
	portalURL := fmt.Sprintf("%s/start/#/console?account_id=%s&role_name=%s",
		strings.TrimSuffix(startURL, "/start"), choice.AccountID, choice.RoleName)
	if err := m.Browser.Open(portalURL); err != nil {
		return err
	}
	fmt.Fprintf(m.Out, "Opened %s in the AWS access portal\n", choice.Label())
	return nil
}

func (m *Manager) exportCredentials(
	ctx context.Context,
	pipeline *resolver.Resolver,
	remote awsclient.SSOGateway,
	token *models.TokenCacheEntry,
	identity config.Identity,
	region string,
	choice models.RoleChoice,
	opts Options,
) error {
	creds, err := pipeline.Credentials(ctx, token.AccessToken, identity.StartURL, region, choice)
	if err != nil {
		return err
	}

	roleARN := ""
	if arn, err := remote.ValidateCredentials(ctx, creds); err == nil {
		roleARN = arn
	} else {
		fmt.Fprintf(m.Out, "Warning: could not verify credentials with STS: %v\n", err)
	}

	env := models.EnvVarsFromCredentials(*creds, choice.ProfileName(), region)
	if opts.EnvFile != "" {
		if err := afero.WriteFile(m.Fs, opts.EnvFile, []byte(env.ExportLines()+"\n"), 0600); err != nil {
			return fmt.Errorf("failed to write env file %s: %w", opts.EnvFile, err)
		}
	}
	if opts.EnvFile == "" || opts.PrintEnv {
		fmt.Fprintln(m.Out, env.ExportLines())
	}

	printSessionDetails(m.Out, choice, roleARN, creds.ExpiresAt().Format(time.RFC3339))
	return nil
}

func printSessionDetails(out io.Writer, choice models.RoleChoice, roleARN, expiration string) {
	fmt.Fprintf(out, `
AWS Session Details:
---------------------------------
Profile      : %s
Account Id   : %s
Account Name : %s
Role Name    : %s
Role ARN     : %s
Expiration   : %s
---------------------------------
`, choice.ProfileName(), choice.AccountID, choice.AccountName, choice.RoleName, roleARN, expiration)
}
