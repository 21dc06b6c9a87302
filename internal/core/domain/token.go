package domain

import "time"

// Cookie names under which the token pair is stored. The same names appear in
// the REST contract and the client-side store.
const (
	AccessTokenName  = "accessToken"
	RefreshTokenName = "refreshToken"
)

// Default token lifetimes. Access tokens are short-lived; refresh tokens
// outlive them and are rotated on every use.
const (
	DefaultAccessTTL  = 24 * time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenPair carries both bearer tokens. They are always issued together and
// rotated together; no code path replaces one without the other.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are present.
func (p TokenPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}
