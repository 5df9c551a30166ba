package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenIssuer = "charity-api"

// AdminClaims are carried by back-office bearer tokens.
type AdminClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type claimsKey struct{}

// SignAdminToken issues an HS256 token for a back-office user.
func SignAdminToken(secret, userID, email, role string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	claims := AdminClaims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAdminToken parses and validates a token signed with secret.
func VerifyAdminToken(secret, token string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(tokenIssuer, true) {
		return nil, errors.New("invalid issuer")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing subject")
	}
	return claims, nil
}

// AuthJWT rejects requests without a valid admin bearer token. onDeny writes
// the error response so handlers control the JSON shape.
func AuthJWT(secret string, onDeny func(w http.ResponseWriter, r *http.Request, status int)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := ClaimsFromContext(r.Context()); claims != nil {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := bearerToken(r)
			if !ok {
				onDeny(w, r, http.StatusUnauthorized)
				return
			}
			claims, err := VerifyAdminToken(secret, token)
			if err != nil {
				onDeny(w, r, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches claims when a valid token is present and otherwise
// lets the request through anonymously. Public listings use it to widen
// what admins see.
func OptionalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if claims, err := VerifyAdminToken(secret, token); err == nil {
					r = r.WithContext(ContextWithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole only admits callers whose token carries one of roles. It must
// run after AuthJWT.
func RequireRole(onDeny func(w http.ResponseWriter, r *http.Request, status int), roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				onDeny(w, r, http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			onDeny(w, r, http.StatusForbidden)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// ClaimsFromContext returns the verified claims, or nil for anonymous callers.
func ClaimsFromContext(ctx context.Context) *AdminClaims {
	if v, ok := ctx.Value(claimsKey{}).(*AdminClaims); ok {
		return v
	}
	return nil
}

func ContextWithClaims(ctx context.Context, claims *AdminClaims) context.Context {
	if claims == nil {
		return ctx
	}
	return context.WithValue(ctx, claimsKey{}, claims)
}

// IsStaff reports whether the request carries verified back-office claims.
func IsStaff(ctx context.Context) bool {
	return ClaimsFromContext(ctx) != nil
}
