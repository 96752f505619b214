package ports

import "time"

// AuthClaims is the transport-agnostic token payload for a storefront session.
type AuthClaims struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner issues and validates session tokens. Keys live at adapter
// level so the application layer stays crypto-library agnostic.
type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(raw string) (AuthClaims, error)
}

// PasswordHasher hashes and compares credentials for the mock account store.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
