package http

import (
	"github.com/gin-gonic/gin"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/auth"
)

// claimsKey is where authMiddleware stashes the verified caller identity.
const claimsKey = "mynextpr/claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(claimsKey, claims)
}

// callerClaims returns the verified claims for the request, if any.
func callerClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}
