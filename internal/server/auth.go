package server

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	commonhttp "github.com/sngm3741/secucheck/api/internal/interfaces/http/common"
)

type operatorClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// authMiddleware admits requests carrying a valid operator bearer token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "a Bearer token is required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "empty access token"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		ctx := commonhttp.ContextWithOperator(r.Context(), commonhttp.Operator{ID: claims.Subject, Name: claims.Name})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken verifies the HS256 signature, issuer, audience and subject.
func (s *Server) parseAuthToken(tokenString string) (*operatorClaims, error) {
	if s.adminJWT == nil {
		return nil, fmt.Errorf("operator authentication is not configured")
	}
	cfg := s.adminJWT

	claims := &operatorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return cfg.Secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return nil, fmt.Errorf("invalid access token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("invalid access token")
	}
	if cfg.Audience != "" && !slices.Contains(claims.Audience, cfg.Audience) {
		return nil, fmt.Errorf("invalid access token")
	}

	return claims, nil
}
