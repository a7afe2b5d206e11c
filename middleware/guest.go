package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextGuestToken = "guest_token"

type GuestCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// GuestSession makes sure every request carries a guest token, issuing a new
// cookie when the client has none or sends a malformed one.
func GuestSession(cfg GuestCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.Name)
		if err == nil {
			_, err = uuid.Parse(token)
		}
		if err != nil {
			token = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.Name, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
		}
		c.Set(ContextGuestToken, token)
		c.Next()
	}
}
