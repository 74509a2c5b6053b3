package middleware

import (
	"net/http"
	"plantastic/internal/models"
	"plantastic/internal/services"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// CallerIDKey holds the user id resolved from the bearer token.
	CallerIDKey = "caller_id"
	// callerErrKey holds why a presented token was rejected.
	callerErrKey = "caller_err"
	// CheckUserKey holds the signed-in user of a page request.
	CheckUserKey = "user"

	SessionUserKey = "user_id"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// LoadCaller resolves the bearer token, if any. Requests without a valid
// token continue anonymously; AuthRequired decides whether that is allowed.
func LoadCaller(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		userID, err := tokens.ResolveCaller(token)
		if err != nil {
			c.Set(callerErrKey, err)
		} else {
			c.Set(CallerIDKey, userID)
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a valid bearer token with 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CallerID(c); ok {
			c.Next()
			return
		}
		msg := "Unauthorized, please login first"
		if v, ok := c.Get(callerErrKey); ok {
			msg = services.Message(v.(error))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
	}
}

// CallerID returns the authenticated caller, if there is one.
func CallerID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CallerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// LoadUser retrieves the page-session user and sets it on the context.
// Only page shells read it; the JSON API trusts bearer tokens alone.
func LoadUser(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserKey)

		if userID != nil {
			var user models.User
			if err := gdb.WithContext(c.Request.Context()).First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}
