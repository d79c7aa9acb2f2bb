package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/furnikart/FurniBargain/utils"
)

// ParticipantKey is the gin context key holding the authenticated
// participant id.
const ParticipantKey = "participant_id"

// ParticipantMiddleware extracts the participant identity from the bearer
// token issued by the storefront's identity service. This service performs
// no authentication of its own; the token is only verified against the
// shared secret and read for its participant_id claim.
func ParticipantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			utils.LogError("Invalid token: %v", err)
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.LogError("Invalid token claims")
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		participantID, _ := claims["participant_id"].(string)
		if participantID == "" {
			utils.LogError("Token missing participant_id claim")
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		c.Set(ParticipantKey, participantID)
		c.Next()
	}
}

// AdminMiddleware requires the token to carry the back-office admin claim.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		isAdmin, _ := claims["is_admin"].(bool)
		if !isAdmin {
			utils.LogError("Non-admin attempted back-office access")
			utils.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Participant returns the participant id set by ParticipantMiddleware.
func Participant(c *gin.Context) (string, bool) {
	value, exists := c.Get(ParticipantKey)
	if !exists {
		return "", false
	}
	participantID, ok := value.(string)
	return participantID, ok && participantID != ""
}
