package models

import "time"

// TokenCacheEntry is one cached SSO access token. The on-disk format matches
// the AWS CLI token cache so entries written by other tools are usable too.
type TokenCacheEntry struct {
	StartURL    string    `json:"startUrl"`
	Region      string    `json:"region"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// CachedRole is the persisted form of one RoleChoice.
type CachedRole struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	RoleName    string `json:"role_name"`
}

// CachedRoles is the roles-cache file payload for one start URL.
type CachedRoles struct {
	FetchedAt int64        `json:"fetched_at"`
	Roles     []CachedRole `json:"roles"`
}

// CachedCredentials is the credentials-cache file payload for one
// (start URL, region, account, role) tuple.
type CachedCredentials struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token"`
	ExpirationMS    int64  `json:"expiration_ms"`
}
