// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/salesreport/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the validated *Claims of an authenticated request.
const ClaimsContextKey contextKey = "claims"

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return c, ok
}

// Authenticate requires a valid bearer token on every request. A nil manager
// disables authentication. unauthorized writes the 401 response; nil uses a
// plain-text error.
func Authenticate(m *JWTManager, unauthorized func(w http.ResponseWriter, r *http.Request, message string)) func(http.Handler) http.Handler {
	if unauthorized == nil {
		unauthorized = func(w http.ResponseWriter, _ *http.Request, message string) {
			http.Error(w, message, http.StatusUnauthorized)
		}
	}
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="salesreport"`)
				unauthorized(w, r, "missing or malformed bearer token")
				return
			}

			claims, err := m.ValidateToken(token)
			if err != nil {
				logging.Ctx(r.Context()).Warn().Err(err).Msg("Token validation failed")
				w.Header().Set("WWW-Authenticate", `Bearer realm="salesreport", error="invalid_token"`)
				unauthorized(w, r, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
