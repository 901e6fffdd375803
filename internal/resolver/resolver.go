package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BerryBytes/sessionctl/internal/awsclient"
	"github.com/BerryBytes/sessionctl/internal/credcache"
	"github.com/BerryBytes/sessionctl/internal/rolescache"
	"github.com/BerryBytes/sessionctl/internal/tokencache"
	"github.com/BerryBytes/sessionctl/models"
	"golang.org/x/sync/errgroup"
)

// roleFanOutLimit bounds the simultaneous in-flight role-listing calls
// during a remote refresh.
const roleFanOutLimit = 10

// Authorizer obtains a fresh token interactively when the token cache
// misses.
type Authorizer interface {
	Authorize(ctx context.Context, startURL, region string) (*models.TokenCacheEntry, error)
}

// Resolver runs the credential resolution pipeline: token cache and device
// flow, roles cache with remote refresh and stale fallback, credential
// cache with remote fill.
type Resolver struct {
	Remote awsclient.SSOGateway
	Tokens *tokencache.Store
	Roles  *rolescache.Store
	Creds  *credcache.Store
	Flow   Authorizer
	Out    io.Writer

	// BypassCache skips every cache read; writes still happen.
	BypassCache bool
}

// AccessToken returns a valid token for the start URL, running the device
// flow when the cache has none.
func (r *Resolver) AccessToken(ctx context.Context, startURL, region string) (*models.TokenCacheEntry, error) {
	if !r.BypassCache {
		entry, err := r.Tokens.LoadValid(startURL)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, tokencache.ErrMissingCache) {
			return nil, err
		}
	}
	return r.Flow.Authorize(ctx, startURL, region)
}

// RoleChoices returns the flattened (account, role) list for the start URL.
// A fresh cache entry short-circuits remote calls entirely. On a remote
// refresh failure an any-age cache entry is returned instead, with a warning
// naming its age; only when no fallback exists does the failure propagate.
func (r *Resolver) RoleChoices(ctx context.Context, accessToken, startURL string) ([]models.RoleChoice, error) {
	var fallback []models.RoleChoice
	var fallbackAge time.Duration
	haveFallback := false

	if !r.BypassCache {
		if choices, _, ok := r.Roles.LoadFresh(startURL); ok {
			return choices, nil
		}
		fallback, fallbackAge, haveFallback = r.Roles.LoadAny(startURL)
	}

	choices, err := r.refreshRoles(ctx, accessToken)
	if err != nil {
		if haveFallback {
			fmt.Fprintf(r.Out, "Refreshing roles failed (%v); using cached roles from %s ago\n",
				err, rolescache.FormatAge(fallbackAge))
			return fallback, nil
		}
		return nil, err
	}

	if err := r.Roles.Save(startURL, choices); err != nil {
		return nil, err
	}
	return choices, nil
}

// refreshRoles enumerates accounts, then fans out role listing across them
// with a bounded number of in-flight calls. The result is all-or-nothing:
// any failure discards the whole pass.
func (r *Resolver) refreshRoles(ctx context.Context, accessToken string) ([]models.RoleChoice, error) {
	accounts, err := r.Remote.ListAccounts(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	perAccount := make([][]models.SSORole, len(accounts))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(roleFanOutLimit)
	for i, account := range accounts {
		group.Go(func() error {
			roles, err := r.Remote.ListAccountRoles(groupCtx, accessToken, account.AccountID)
			if err != nil {
				return err
			}
			perAccount[i] = roles
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	choices := make([]models.RoleChoice, 0, len(accounts))
	for i, account := range accounts {
		for _, role := range perAccount[i] {
			choices = append(choices, models.NewRoleChoice(account, role))
		}
	}
	return choices, nil
}

// Credentials returns temporary credentials for the choice, consulting the
// credential cache first and writing back after a remote fetch.
func (r *Resolver) Credentials(ctx context.Context, accessToken, startURL, region string, choice models.RoleChoice) (*models.RoleCredentials, error) {
	if !r.BypassCache {
		if creds, ok := r.Creds.Load(startURL, region, choice.AccountID, choice.RoleName); ok {
			return creds, nil
		}
	}
	creds, err := r.Remote.GetRoleCredentials(ctx, accessToken, choice.AccountID, choice.RoleName)
	if err != nil {
		return nil, err
	}
	if err := r.Creds.Save(startURL, region, choice.AccountID, choice.RoleName, creds); err != nil {
		return nil, err
	}
	return creds, nil
}
