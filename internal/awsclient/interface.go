package awsclient

import (
	"context"

	"github.com/BerryBytes/sessionctl/models"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// OIDCAPI is the subset of the SSO OIDC service used by the device flow.
type OIDCAPI interface {
	RegisterClient(ctx context.Context, params *ssooidc.RegisterClientInput, optFns ...func(*ssooidc.Options)) (*ssooidc.RegisterClientOutput, error)
	StartDeviceAuthorization(ctx context.Context, params *ssooidc.StartDeviceAuthorizationInput, optFns ...func(*ssooidc.Options)) (*ssooidc.StartDeviceAuthorizationOutput, error)
	CreateToken(ctx context.Context, params *ssooidc.CreateTokenInput, optFns ...func(*ssooidc.Options)) (*ssooidc.CreateTokenOutput, error)
}

// SSOAPI is the subset of the SSO portal service used for enumeration and
// credential issuance.
type SSOAPI interface {
	ListAccounts(ctx context.Context, params *sso.ListAccountsInput, optFns ...func(*sso.Options)) (*sso.ListAccountsOutput, error)
	ListAccountRoles(ctx context.Context, params *sso.ListAccountRolesInput, optFns ...func(*sso.Options)) (*sso.ListAccountRolesOutput, error)
	GetRoleCredentials(ctx context.Context, params *sso.GetRoleCredentialsInput, optFns ...func(*sso.Options)) (*sso.GetRoleCredentialsOutput, error)
}

// STSAPI is the subset of STS used to validate issued credentials.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// SSOGateway is the typed remote surface the rest of the system consumes.
type SSOGateway interface {
	RegisterClient(ctx context.Context) (*models.RegisteredClient, error)
	StartDeviceAuthorization(ctx context.Context, client *models.RegisteredClient, startURL string) (*models.DeviceAuthorization, error)
	CreateToken(ctx context.Context, client *models.RegisteredClient, deviceCode string) (accessToken string, expiresIn int32, err error)
	ListAccounts(ctx context.Context, accessToken string) ([]models.SSOAccount, error)
	ListAccountRoles(ctx context.Context, accessToken, accountID string) ([]models.SSORole, error)
	GetRoleCredentials(ctx context.Context, accessToken, accountID, roleName string) (*models.RoleCredentials, error)
	ValidateCredentials(ctx context.Context, creds *models.RoleCredentials) (callerARN string, err error)
}
