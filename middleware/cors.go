package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const devStorefrontOrigin = "http://localhost:5173"

// CORSMiddleware allows the dev storefront plus every comma-separated origin
// in originURL. Credentials are allowed so the guest cart cookie travels with
// cross-origin requests.
func CORSMiddleware(originURL string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(originURL),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func allowedOrigins(originURL string) []string {
	origins := []string{devStorefrontOrigin}
	for _, o := range strings.Split(originURL, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" && o != devStorefrontOrigin {
			origins = append(origins, o)
		}
	}
	return origins
}
