package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupCORS allows any origin to call the API with the signed request headers
func SetupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", AuthHeader, AuthExpirationHeader},
		ExposeHeaders:   []string{"Content-Length", RequestIDHeader},
		MaxAge:          time.Hour,
	})
}
