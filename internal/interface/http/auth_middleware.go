package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/auth"
	apperrors "github.com/sameer-hoda/mynextpr-sub001/pkg/errors"
)

// authMiddleware validates the bearer token and stashes the caller's claims.
// Plan handlers trust these claims as the only source of plan ownership.
func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing or malformed authorization header", nil))
			return
		}

		claims, err := svc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if apperrors.IsCode(err, "invalid_token") {
				abortWithError(c, NewHTTPError(http.StatusForbidden, "invalid_token", errMessage(err), err))
			} else {
				abortWithError(c, NewHTTPError(http.StatusInternalServerError, "auth_failed", errMessage(err), err))
			}
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
