package domain

// ProviderClaims is the raw identity claim set returned by the provider after
// a successful code exchange, before any mapping policy is applied.
type ProviderClaims struct {
	Subject           string `json:"sub"`
	Issuer            string `json:"iss"`
	Email             string `json:"email"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
}

// FederatedIdentity is the resolved identity handed to the account linker:
// exactly one subject/issuer pair and a usable email address.
type FederatedIdentity struct {
	Subject string
	Issuer  string
	Email   string
	Name    string
}
