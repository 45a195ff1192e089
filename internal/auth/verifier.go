// Package auth gates new connections: it checks the bearer credential and
// resolves it to an identity exactly once per connection.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edulive/lecturechat/internal/domain"
)

// AuthErrorKind distinguishes why a credential was refused, so the client
// can surface the reason instead of a generic rejection.
type AuthErrorKind int

const (
	MissingCredential AuthErrorKind = iota
	Invalid
	Expired
	UnknownSubject
)

// AuthError is terminal for the connection: it is reported once and the
// connection is torn down.
type AuthError struct {
	Kind AuthErrorKind
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case MissingCredential:
		return "authentication credential is required"
	case Expired:
		return "authentication credential has expired"
	case UnknownSubject:
		return "no account exists for this credential"
	default:
		return "authentication credential is invalid"
	}
}

// Code maps the failure kind to its wire status code.
func (e *AuthError) Code() int {
	switch e.Kind {
	case Expired:
		return 403
	case UnknownSubject:
		return 404
	default:
		return 401
	}
}

// AsAuthError unwraps err into an AuthError if it is one.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IdentityStore resolves a token subject to an identity record. Lookups may
// block the calling connection but must not affect any other connection.
type IdentityStore interface {
	FindByID(ctx context.Context, id domain.UserID) (domain.Identity, error)
}

// Claims mirror the token shape the account subsystem signs: the subject
// user id under "_id", HS256, expiry in the registered claims.
type Claims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// Verifier validates bearer credentials against the server-held secret and
// resolves the embedded subject against the identity store.
type Verifier struct {
	secret []byte
	store  IdentityStore
}

func NewVerifier(secret string, store IdentityStore) *Verifier {
	return &Verifier{secret: []byte(secret), store: store}
}

// Verify checks credential and returns the identity snapshot the connection
// keeps for its whole lifetime. Every failure is an *AuthError.
func (v *Verifier) Verify(ctx context.Context, credential string) (domain.Identity, error) {
	if credential == "" {
		return domain.Identity{}, &AuthError{Kind: MissingCredential}
	}

	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &AuthError{Kind: Invalid}
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, &AuthError{Kind: Expired}
		}
		return domain.Identity{}, &AuthError{Kind: Invalid}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return domain.Identity{}, &AuthError{Kind: Invalid}
	}

	identity, err := v.store.FindByID(ctx, domain.UserID(claims.UserID))
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return domain.Identity{}, &AuthError{Kind: UnknownSubject}
		}
		return domain.Identity{}, &AuthError{Kind: Invalid}
	}
	return identity, nil
}

// Issue signs a credential for id. The account subsystem normally does this;
// it lives here for dev seeding and tests.
func Issue(secret string, id domain.UserID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: string(id),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
