package data

import (
	"time"

	"github.com/danokoye/athenaeum/internal/validator"
)

// Token scopes. A token is only ever valid for the single purpose it was
// issued for.
const (
	ScopeActivation     = "activation"
	ScopeAuthentication = "authentication"
	ScopePasswordReset  = "password-reset"
)

// Token defines a stateful bearer token. Only the SHA-256 hash is stored;
// the plaintext leaves the system exactly once, in the response or email
// that delivers it.
type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Expiry    time.Time `json:"expiry"`
	Scope     string    `json:"-"`
}

func ValidateTokenPlaintext(v *validator.Validator, tokenPlaintext string) {
	v.Check(tokenPlaintext != "", "token", "must be provided")
	v.Check(len(tokenPlaintext) == 26, "token", "must be 26 bytes long")
}
