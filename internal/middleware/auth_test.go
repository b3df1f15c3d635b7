package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeValidator struct {
	claims interface{}
	err    error
	token  string
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	f.token = token
	return f.claims, f.err
}

type fakeMembership struct {
	members map[string]uuid.UUID
	err     error
}

func (f *fakeMembership) Exists(ctx context.Context, subject string, companyID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	id, ok := f.members[subject]
	return ok && id == companyID, nil
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, GetSubject(c))
}

func TestGetSubject(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected string
	}{
		{
			name: "returns subject when present",
			setup: func(c echo.Context) {
				ctx := context.WithValue(c.Request().Context(), SubjectKey, "auth0|12345")
				c.SetRequest(c.Request().WithContext(ctx))
			},
			expected: "auth0|12345",
		},
		{
			name:     "returns empty string when not present",
			setup:    func(c echo.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			tt.setup(c)

			result := GetSubject(c)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetCustomClaims(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if GetCustomClaims(c) != nil {
		t.Error("Expected nil without claims")
	}

	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|test"},
		CustomClaims:     &CustomClaims{Email: "owner@example.com"},
	}
	ctx := context.WithValue(c.Request().Context(), ClaimsKey, claims)
	c.SetRequest(c.Request().WithContext(ctx))

	custom := GetCustomClaims(c)
	if custom == nil {
		t.Fatal("Expected custom claims, got nil")
	}
	if custom.Email != "owner@example.com" {
		t.Errorf("Expected email 'owner@example.com', got %q", custom.Email)
	}
}

func TestAuthenticate(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name       string
		header     string
		validator  *fakeValidator
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			header:     "",
			validator:  &fakeValidator{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			validator:  &fakeValidator{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			validator:  &fakeValidator{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected claims type",
			header:     "Bearer odd",
			validator:  &fakeValidator{claims: "claims"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "bearer good",
			validator: &fakeValidator{claims: &validator.ValidatedClaims{
				RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|owner"},
			}},
			wantStatus: http.StatusOK,
			wantBody:   "auth0|owner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := NewAuthMiddlewareWithValidator(tt.validator).Authenticate()(okHandler)
			if err := handler(c); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("Expected body %q, got %q", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequireCompanyMember(t *testing.T) {
	e := echo.New()
	companyID := uuid.New()
	checker := &fakeMembership{members: map[string]uuid.UUID{"auth0|owner": companyID}}

	tests := []struct {
		name       string
		subject    string
		param      string
		checker    MembershipChecker
		wantStatus int
	}{
		{"member passes", "auth0|owner", companyID.String(), checker, http.StatusOK},
		{"non-member is forbidden", "auth0|other", companyID.String(), checker, http.StatusForbidden},
		{"invalid uuid", "auth0|owner", "not-a-uuid", checker, http.StatusBadRequest},
		{"no subject", "", companyID.String(), checker, http.StatusUnauthorized},
		{"lookup failure", "auth0|owner", companyID.String(), &fakeMembership{err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.subject != "" {
				req = req.WithContext(context.WithValue(req.Context(), SubjectKey, tt.subject))
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("companyId")
			c.SetParamValues(tt.param)

			var seen uuid.UUID
			handler := RequireCompanyMember(tt.checker)(func(c echo.Context) error {
				seen = GetCompanyID(c)
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK && seen != companyID {
				t.Errorf("Expected company %s in context, got %s", companyID, seen)
			}
		})
	}
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{Email: "test@example.com"}

	if err := claims.Validate(context.Background()); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
