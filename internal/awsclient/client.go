package awsclient

import (
	"context"
	"fmt"

	"github.com/BerryBytes/sessionctl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

const clientName = "sessionctl"

// Client makes the typed identity-federation calls for one region.
type Client struct {
	region      string
	oidc        OIDCAPI
	sso         SSOAPI
	sts         STSAPI
	sleep       SleepFunc
	maxAttempts int
}

// NewClient builds service clients for the given region.
func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &Client{
		region:      region,
		oidc:        ssooidc.NewFromConfig(cfg),
		sso:         sso.NewFromConfig(cfg),
		sts:         sts.NewFromConfig(cfg),
		sleep:       DefaultSleep,
		maxAttempts: DefaultMaxAttempts,
	}, nil
}

// NewClientWithAPIs wires explicit API implementations; used by tests and by
// callers that already hold configured service clients.
func NewClientWithAPIs(region string, oidc OIDCAPI, ssoAPI SSOAPI, stsAPI STSAPI, sleep SleepFunc) *Client {
	if sleep == nil {
		sleep = DefaultSleep
	}
	return &Client{
		region:      region,
		oidc:        oidc,
		sso:         ssoAPI,
		sts:         stsAPI,
		sleep:       sleep,
		maxAttempts: DefaultMaxAttempts,
	}
}

// Region returns the region the client was configured with.
func (c *Client) Region() string {
	return c.region
}

func (c *Client) RegisterClient(ctx context.Context) (*models.RegisteredClient, error) {
	output, err := c.oidc.RegisterClient(ctx, &ssooidc.RegisterClientInput{
		ClientName: aws.String(clientName),
		ClientType: aws.String("public"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register OIDC client: %s", FormatAPIError(err))
	}
	if output.ClientId == nil || output.ClientSecret == nil {
		return nil, fmt.Errorf("register client response missing client id or secret")
	}
	return &models.RegisteredClient{
		ClientID:     *output.ClientId,
		ClientSecret: *output.ClientSecret,
	}, nil
}

func (c *Client) StartDeviceAuthorization(ctx context.Context, client *models.RegisteredClient, startURL string) (*models.DeviceAuthorization, error) {
	output, err := c.oidc.StartDeviceAuthorization(ctx, &ssooidc.StartDeviceAuthorizationInput{
		ClientId:     aws.String(client.ClientID),
		ClientSecret: aws.String(client.ClientSecret),
		StartUrl:     aws.String(startURL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start device authorization: %s", FormatAPIError(err))
	}
	if output.DeviceCode == nil || output.UserCode == nil || output.VerificationUriComplete == nil {
		return nil, fmt.Errorf("device authorization response missing required fields")
	}
	return &models.DeviceAuthorization{
		DeviceCode:              *output.DeviceCode,
		UserCode:                *output.UserCode,
		VerificationURI:         aws.ToString(output.VerificationUri),
		VerificationURIComplete: *output.VerificationUriComplete,
		ExpiresIn:               output.ExpiresIn,
		Interval:                output.Interval,
	}, nil
}

// CreateToken exchanges the device code for a token. Errors are returned
// unwrapped so the caller can distinguish the pending and slow-down
// conditions of the device-authorization protocol.
func (c *Client) CreateToken(ctx context.Context, client *models.RegisteredClient, deviceCode string) (string, int32, error) {
	output, err := c.oidc.CreateToken(ctx, &ssooidc.CreateTokenInput{
		ClientId:     aws.String(client.ClientID),
		ClientSecret: aws.String(client.ClientSecret),
		DeviceCode:   aws.String(deviceCode),
		GrantType:    aws.String("urn:ietf:params:oauth:grant-type:device_code"),
	})
	if err != nil {
		return "", 0, err
	}
	if output.AccessToken == nil {
		return "", 0, fmt.Errorf("create token response missing access token")
	}
	return *output.AccessToken, output.ExpiresIn, nil
}

func (c *Client) ListAccounts(ctx context.Context, accessToken string) ([]models.SSOAccount, error) {
	var accounts []models.SSOAccount
	var nextToken *string

	for {
		input := &sso.ListAccountsInput{
			AccessToken: aws.String(accessToken),
			NextToken:   nextToken,
		}
		var output *sso.ListAccountsOutput
		err := withRetry(ctx, c.sleep, c.maxAttempts, func() error {
			var callErr error
			output, callErr = c.sso.ListAccounts(ctx, input)
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}

		for _, account := range output.AccountList {
			if account.AccountId == nil || account.AccountName == nil {
				continue
			}
			accounts = append(accounts, models.SSOAccount{
				AccountID:   *account.AccountId,
				AccountName: *account.AccountName,
			})
		}

		nextToken = output.NextToken
		if nextToken == nil || *nextToken == "" {
			break
		}
	}

	return accounts, nil
}

func (c *Client) ListAccountRoles(ctx context.Context, accessToken, accountID string) ([]models.SSORole, error) {
	var roles []models.SSORole
	var nextToken *string

	for {
		input := &sso.ListAccountRolesInput{
			AccessToken: aws.String(accessToken),
			AccountId:   aws.String(accountID),
			NextToken:   nextToken,
		}
		var output *sso.ListAccountRolesOutput
		err := withRetry(ctx, c.sleep, c.maxAttempts, func() error {
			var callErr error
			output, callErr = c.sso.ListAccountRoles(ctx, input)
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list roles for account %s: %w", accountID, err)
		}

		for _, role := range output.RoleList {
			if role.RoleName == nil {
				continue
			}
			roles = append(roles, models.SSORole{RoleName: *role.RoleName})
		}

		nextToken = output.NextToken
		if nextToken == nil || *nextToken == "" {
			break
		}
	}

	return roles, nil
}

func (c *Client) GetRoleCredentials(ctx context.Context, accessToken, accountID, roleName string) (*models.RoleCredentials, error) {
	output, err := c.sso.GetRoleCredentials(ctx, &sso.GetRoleCredentialsInput{
		AccessToken: aws.String(accessToken),
		AccountId:   aws.String(accountID),
		RoleName:    aws.String(roleName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get role credentials: %s", FormatAPIError(err))
	}
	creds := output.RoleCredentials
	if creds == nil || creds.AccessKeyId == nil || creds.SecretAccessKey == nil || creds.SessionToken == nil {
		return nil, fmt.Errorf("role credentials response missing required fields")
	}
	return &models.RoleCredentials{
		AccessKeyID:     *creds.AccessKeyId,
		SecretAccessKey: *creds.SecretAccessKey,
		SessionToken:    *creds.SessionToken,
		ExpirationMS:    creds.Expiration,
	}, nil
}

// ValidateCredentials checks credentials against STS and returns the caller
// ARN. A nil creds uses the ambient credential chain, which lets callers
// inspect whatever the current environment exports.
func (c *Client) ValidateCredentials(ctx context.Context, creds *models.RoleCredentials) (string, error) {
	var optFns []func(*sts.Options)
	if creds != nil {
		provider := credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
		optFns = append(optFns, func(o *sts.Options) {
			o.Credentials = provider
			o.Region = c.region
		})
	}
	output, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{}, optFns...)
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %s", FormatAPIError(err))
	}
	return aws.ToString(output.Arn), nil
}
