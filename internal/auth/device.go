package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BerryBytes/sessionctl/internal/awsclient"
	"github.com/BerryBytes/sessionctl/internal/tokencache"
	"github.com/BerryBytes/sessionctl/models"
	oidctypes "github.com/aws/aws-sdk-go-v2/service/ssooidc/types"
)

// ErrExpiredCache reports that the device-authorization window closed before
// the operator completed sign-in. The current attempt is over; the operator
// retries.
var ErrExpiredCache = errors.New("device authorization expired before sign-in completed")

// BrowserOpener opens a URL in the operator's browser. Failure only degrades
// UX, it never fails the flow.
type BrowserOpener interface {
	Open(url string) error
}

// DeviceFlow drives the OAuth2 device-authorization state machine:
// register client, issue device code, instruct the operator, then poll
// token exchange until authorized, expired, or failed.
type DeviceFlow struct {
	Remote  awsclient.SSOGateway
	Tokens  *tokencache.Store
	Browser BrowserOpener
	Out     io.Writer

	Now   func() time.Time
	Sleep awsclient.SleepFunc
}

func NewDeviceFlow(remote awsclient.SSOGateway, tokens *tokencache.Store, browser BrowserOpener, out io.Writer) *DeviceFlow {
	return &DeviceFlow{
		Remote:  remote,
		Tokens:  tokens,
		Browser: browser,
		Out:     out,
		Now:     time.Now,
		Sleep:   awsclient.DefaultSleep,
	}
}

// Authorize runs the full flow for the start URL and persists the resulting
// token. Registration and device-code failures are fatal immediately; the
// polling loop never outlives the server-declared window and never polls
// faster than the server-declared interval.
func (f *DeviceFlow) Authorize(ctx context.Context, startURL, region string) (*models.TokenCacheEntry, error) {
	client, err := f.Remote.RegisterClient(ctx)
	if err != nil {
		return nil, err
	}

	deviceAuth, err := f.Remote.StartDeviceAuthorization(ctx, client, startURL)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(f.Out, "Open this URL to sign in:\n%s\n\n", deviceAuth.VerificationURIComplete)
	fmt.Fprintf(f.Out, "Enter code: %s\n\n", deviceAuth.UserCode)
	if f.Browser != nil {
		if err := f.Browser.Open(deviceAuth.VerificationURIComplete); err != nil {
			fmt.Fprintf(f.Out, "Could not open a browser automatically: %v\n", err)
		}
	}

	deadline := f.Now().Add(time.Duration(deviceAuth.ExpiresIn) * time.Second)
	interval := time.Duration(deviceAuth.Interval) * time.Second
	if interval < time.Second {
		interval = time.Second
	}

	for {
		if f.Now().After(deadline) {
			return nil, ErrExpiredCache
		}

		accessToken, expiresIn, err := f.Remote.CreateToken(ctx, client, deviceAuth.DeviceCode)
		if err == nil {
			entry := &models.TokenCacheEntry{
				StartURL:    startURL,
				Region:      region,
				AccessToken: accessToken,
				ExpiresAt:   f.Now().Add(time.Duration(expiresIn) * time.Second).UTC(),
			}
			if err := f.Tokens.Persist(entry); err != nil {
				return nil, err
			}
			return entry, nil
		}
		if !authorizationPending(err) {
			return nil, fmt.Errorf("token exchange failed: %s", awsclient.FormatAPIError(err))
		}
		if err := f.Sleep(ctx, interval); err != nil {
			return nil, err
		}
	}
}

// authorizationPending reports whether the token exchange should keep
// polling. Pending and slow-down are expected protocol states, not errors.
func authorizationPending(err error) bool {
	var pending *oidctypes.AuthorizationPendingException
	if errors.As(err, &pending) {
		return true
	}
	var slowDown *oidctypes.SlowDownException
	return errors.As(err, &slowDown)
}
