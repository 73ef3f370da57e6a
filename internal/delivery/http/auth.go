package http

import (
	"errors"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin may replace the question bank.
const RoleAdmin = "admin"

const tokenIssuer = "quiz-bot"

var errNoBearer = errors.New("missing bearer token")

// AuthService issues and checks HS256 tokens for the questions API.
type AuthService struct{ hmac []byte }

func NewAuthService(secret string) *AuthService { return &AuthService{hmac: []byte(secret)} }

type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for sub with the given role.
func (a *AuthService) IssueToken(sub, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:  sub,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return c, nil
}

// RequireRole rejects requests without a valid bearer token carrying role.
func (a *AuthService) RequireRole(role string) func(nethttp.Handler) nethttp.Handler {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			tok, err := bearer(r)
			if err != nil {
				respondError(w, nethttp.StatusUnauthorized, err.Error())
				return
			}

			claims, err := a.Parse(tok)
			if err != nil {
				respondError(w, nethttp.StatusUnauthorized, "bad token")
				return
			}

			if claims.Role != role {
				respondError(w, nethttp.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearer(r *nethttp.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errNoBearer
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
