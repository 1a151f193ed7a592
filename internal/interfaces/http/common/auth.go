package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (u AuthenticatedUser) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}

type authClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	issuer string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(issuer string, secret []byte, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		issuer: issuer,
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token with subject=user id and a role claim.
func (m *TokenManager) Issue(user domain.User) (string, error) {
	now := m.now()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: string(user.Role),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer and time claims.
func (m *TokenManager) Parse(tokenString string) (AuthenticatedUser, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return m.secret, nil
	},
		jwt.WithLeeway(30*time.Second),
		jwt.WithTimeFunc(m.now),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil || !token.Valid {
		return AuthenticatedUser{}, errors.New("invalid access token")
	}
	if claims.Subject == "" {
		return AuthenticatedUser{}, errors.New("access token has no subject")
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return AuthenticatedUser{}, errors.New("access token has an unknown role")
	}
	return AuthenticatedUser{ID: claims.Subject, Role: role}, nil
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(tokens *TokenManager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				WriteMessage(logger, w, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				WriteMessage(logger, w, http.StatusUnauthorized, "bearer token required")
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
			if tokenString == "" {
				WriteMessage(logger, w, http.StatusUnauthorized, "access token is empty")
				return
			}

			user, err := tokens.Parse(tokenString)
			if err != nil {
				WriteMessage(logger, w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireRole must run after Authenticate.
func RequireRole(logger zerolog.Logger, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				WriteMessage(logger, w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteMessage(logger, w, http.StatusForbidden, "insufficient role")
		})
	}
}
