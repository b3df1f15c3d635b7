package websocket

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when JWT validation fails
var ErrInvalidToken = errors.New("invalid token")

// ErrNotMember is returned when the token subject has no membership in the company
var ErrNotMember = errors.New("not a member of company")

// MembershipLookup checks whether a subject may access a company
type MembershipLookup interface {
	Exists(ctx context.Context, subject string, companyID uuid.UUID) (bool, error)
}

// TokenValidator validates a raw JWT and returns its subject
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct{}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Auth0JWTValidator authorizes WebSocket connections with an Auth0 JWT and a company membership
type Auth0JWTValidator struct {
	validator   TokenValidator
	memberships MembershipLookup
}

// NewAuth0JWTValidator creates a new Auth0JWTValidator
func NewAuth0JWTValidator(domain, audience string, memberships MembershipLookup) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return NewAuth0JWTValidatorWith(jwtValidator, memberships), nil
}

// NewAuth0JWTValidatorWith builds an Auth0JWTValidator around an existing token validator
func NewAuth0JWTValidatorWith(v TokenValidator, memberships MembershipLookup) *Auth0JWTValidator {
	return &Auth0JWTValidator{
		validator:   v,
		memberships: memberships,
	}
}

// Authorize validates the token and checks that its subject belongs to the company
func (v *Auth0JWTValidator) Authorize(ctx context.Context, token string, companyID uuid.UUID) (subject string, err error) {
	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	subject = validatedClaims.RegisteredClaims.Subject

	member, err := v.memberships.Exists(ctx, subject, companyID)
	if err != nil {
		return "", err
	}
	if !member {
		return "", ErrNotMember
	}

	return subject, nil
}
