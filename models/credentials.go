package models

import (
	"fmt"
	"strings"
	"time"
)

// RoleCredentials holds the temporary credentials returned by AWS SSO.
// Expiration is epoch milliseconds, as the service reports it.
type RoleCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	ExpirationMS    int64
}

// ExpiresAt converts the millisecond expiration to a wall-clock time.
func (c RoleCredentials) ExpiresAt() time.Time {
	return time.UnixMilli(c.ExpirationMS).UTC()
}

// EnvVars is the flattened environment a selected role resolves to.
type EnvVars struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	ExpirationMS    int64
	Region          string
	ProfileName     string
}

func EnvVarsFromCredentials(creds RoleCredentials, profileName, region string) EnvVars {
	return EnvVars{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		ExpirationMS:    creds.ExpirationMS,
		Region:          region,
		ProfileName:     profileName,
	}
}

// ExportLines renders shell export statements for the credentials.
func (e EnvVars) ExportLines() string {
	expiration := time.UnixMilli(e.ExpirationMS).UTC().Format(time.RFC3339)
	lines := []string{
		fmt.Sprintf("export AWS_ACCESS_KEY_ID=%s", e.AccessKeyID),
		fmt.Sprintf("export AWS_SECRET_ACCESS_KEY=%s", e.SecretAccessKey),
		fmt.Sprintf("export AWS_SESSION_TOKEN=%s", e.SessionToken),
		fmt.Sprintf("export AWS_CREDENTIAL_EXPIRATION=%s", expiration),
		fmt.Sprintf("export AWS_DEFAULT_REGION=%s", e.Region),
		fmt.Sprintf("export AWS_REGION=%s", e.Region),
		fmt.Sprintf("export AWS_PROFILE=%s", e.ProfileName),
	}
	return strings.Join(lines, "\n")
}

// UnsetLine prints the matching cleanup statement for ExportLines.
func UnsetLine() string {
	return "unset AWS_ACCESS_KEY_ID AWS_SECRET_ACCESS_KEY AWS_SESSION_TOKEN AWS_CREDENTIAL_EXPIRATION AWS_DEFAULT_REGION AWS_REGION AWS_PROFILE"
}
