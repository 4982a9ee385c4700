package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const (
	sessionKey  contextKey = "session"
	pageSizeKey contextKey = "pageSize"
)

// SessionClaims are the claims of a session token issued by the identity
// provider. The subject is the user id.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SessionVerifier checks HS256 session tokens.
type SessionVerifier struct {
	secret []byte
	issuer string
}

// NewSessionVerifier builds a verifier. An empty issuer accepts any issuer.
func NewSessionVerifier(secret, issuer string) *SessionVerifier {
	return &SessionVerifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses token and returns the session it identifies.
func (v *SessionVerifier) Verify(token string) (*domain.Session, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired token"}
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, &domain.ErrUnauthorized{Message: "invalid token"}
	}

	return &domain.Session{UserID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// Sign issues a token for sess valid for ttl. Used by the dev token command
// and tests; production tokens come from the identity provider.
func (v *SessionVerifier) Sign(sess domain.Session, ttl time.Duration) (string, error) {
	if sess.UserID == "" {
		return "", fmt.Errorf("sign session: empty user id")
	}
	now := time.Now()
	claims := SessionClaims{
		Email: sess.Email,
		Name:  sess.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// SessionMiddleware validates Bearer tokens and injects the session into
// the request context. Requests without a valid token never reach the CRM.
func SessionMiddleware(verifier *SessionVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing session token", Kind: string(domain.KindUnauthorized)})
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token format", Kind: string(domain.KindUnauthorized)})
				return
			}

			sess, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: string(domain.KindUnauthorized)})
				return
			}

			observability.TagUser(r.Context(), sess.UserID)
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the authenticated session, nil when absent.
func SessionFromContext(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionKey).(*domain.Session)
	return sess
}

// DefaultPageSize sets the page size list endpoints use when the request
// does not give one.
func DefaultPageSize(size int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if size > 0 {
				r = r.WithContext(context.WithValue(r.Context(), pageSizeKey, size))
			}
			next.ServeHTTP(w, r)
		})
	}
}
