package picker

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// StaticAuthorizer compares against a fixed shared secret. It is a prototype
// placeholder and not an access control.
type StaticAuthorizer struct {
	secret string
}

func NewStaticAuthorizer(secret string) StaticAuthorizer {
	return StaticAuthorizer{secret: secret}
}

func (authorizer StaticAuthorizer) Authorize(_ context.Context, secret string) bool {
	return authorizer.secret != "" && secret == authorizer.secret
}

// BcryptAuthorizer checks the secret against a bcrypt hash, as produced by the
// hash-secret command.
type BcryptAuthorizer struct {
	hash []byte
}

func NewBcryptAuthorizer(hash string) BcryptAuthorizer {
	return BcryptAuthorizer{hash: []byte(hash)}
}

func (authorizer BcryptAuthorizer) Authorize(_ context.Context, secret string) bool {
	if len(authorizer.hash) == 0 || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(authorizer.hash, []byte(secret)) == nil
}
