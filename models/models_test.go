package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BerryBytes/sessionctl/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleChoiceDerivations(t *testing.T) {
	choice := models.NewRoleChoice(
		models.SSOAccount{AccountID: "111111111111", AccountName: "dev"},
		models.SSORole{RoleName: "AdministratorAccess"},
	)

	assert.Equal(t, "dev (111111111111) - AdministratorAccess", choice.Label())
	assert.Equal(t, "dev/AdministratorAccess", choice.ProfileName())
}

func TestExportLines(t *testing.T) {
	creds := models.RoleCredentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "session",
		ExpirationMS:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}
	env := models.EnvVarsFromCredentials(creds, "dev/AdministratorAccess", "us-east-1")

	expected := `export AWS_ACCESS_KEY_ID=AKIAEXAMPLE
export AWS_SECRET_ACCESS_KEY=secret
export AWS_SESSION_TOKEN=session
export AWS_CREDENTIAL_EXPIRATION=2025-06-01T12:00:00Z
export AWS_DEFAULT_REGION=us-east-1
export AWS_REGION=us-east-1
export AWS_PROFILE=dev/AdministratorAccess`
	assert.Equal(t, expected, env.ExportLines())
}

func TestUnsetLineCoversEveryExportedVariable(t *testing.T) {
	line := models.UnsetLine()
	for _, name := range []string{
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"AWS_SESSION_TOKEN",
		"AWS_CREDENTIAL_EXPIRATION",
		"AWS_DEFAULT_REGION",
		"AWS_REGION",
		"AWS_PROFILE",
	} {
		assert.Contains(t, line, name)
	}
}

func TestRoleCredentialsExpiresAt(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	creds := models.RoleCredentials{ExpirationMS: at.UnixMilli()}

	assert.True(t, at.Equal(creds.ExpiresAt()))
}

func TestHistoryEntryAcceptsBothCwdFieldNames(t *testing.T) {
	var modern models.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(`{"identity":"default","cwd":"/current"}`), &modern))
	assert.Equal(t, "/current", modern.Cwd)

	var legacy models.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(`{"identity":"default","cwd_hash":"/legacy"}`), &legacy))
	assert.Equal(t, "/legacy", legacy.Cwd)

	var both models.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(`{"cwd":"/current","cwd_hash":"/legacy"}`), &both))
	assert.Equal(t, "/current", both.Cwd, "the modern field wins when both are present")
}
