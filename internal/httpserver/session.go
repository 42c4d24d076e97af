package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartSessionCookie = "cart_session"
	cartSessionKey    = "cartSessionID"
	// cartSessionMaxAge bounds how long an idle cart cookie survives; the
	// in-process cart itself dies with the server.
	cartSessionMaxAge = 7 * 24 * 60 * 60
)

// cartSessionMiddleware assigns each shopper a cart session id via cookie so
// cart state can be scoped per browser without any authentication.
func cartSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cartSessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cartSessionCookie, sessionID, cartSessionMaxAge, "/", "", false, true)
		}
		c.Set(cartSessionKey, sessionID)
		c.Next()
	}
}

func cartSessionID(c *gin.Context) string {
	return c.GetString(cartSessionKey)
}
