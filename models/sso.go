package models

import "fmt"

// SSOAccount is one AWS account reachable through the configured start URL.
type SSOAccount struct {
	AccountID   string `json:"accountId" yaml:"accountId"`
	AccountName string `json:"accountName" yaml:"accountName"`
}

// SSORole is a single permission-set role inside an account.
type SSORole struct {
	RoleName string `json:"roleName" yaml:"roleName"`
}

// RoleChoice is one selectable (account, role) combination. It is derived
// from the roles cache on every run and has no persisted lifecycle of its own.
type RoleChoice struct {
	AccountID   string `json:"account_id" yaml:"account_id"`
	AccountName string `json:"account_name" yaml:"account_name"`
	RoleName    string `json:"role_name" yaml:"role_name"`
}

func NewRoleChoice(account SSOAccount, role SSORole) RoleChoice {
	return RoleChoice{
		AccountID:   account.AccountID,
		AccountName: account.AccountName,
		RoleName:    role.RoleName,
	}
}

// Label is the display form used by the selection prompt.
func (c RoleChoice) Label() string {
	return fmt.Sprintf("%s (%s) - %s", c.AccountName, c.AccountID, c.RoleName)
}

// ProfileName derives the AWS_PROFILE value exported for this choice.
func (c RoleChoice) ProfileName() string {
	return fmt.Sprintf("%s/%s", c.AccountName, c.RoleName)
}

// DeviceAuthorization holds the server-issued device-flow parameters.
type DeviceAuthorization struct {
	DeviceCode              string
	UserCode                string
	VerificationURI         string
	VerificationURIComplete string
	ExpiresIn               int32
	Interval                int32
}

// RegisteredClient is a public OIDC client registration.
type RegisteredClient struct {
	ClientID     string
	ClientSecret string
}
