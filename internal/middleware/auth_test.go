package middleware

import (
	"net/http"
	"net/http/httptest"
	"plantastic/internal/services"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newEngine(tokens *services.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoadCaller(tokens))
	r.GET("/open", func(c *gin.Context) {
		id, ok := CallerID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})
	r.GET("/closed", AuthRequired(), func(c *gin.Context) {
		id, _ := CallerID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			c.Request.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(c); got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestLoadCallerAndAuthRequired(t *testing.T) {
	tokens := services.NewTokenService("k", time.Hour)
	r := newEngine(tokens)
	valid, _, _ := tokens.Issue(9)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"open anonymous", "/open", "", http.StatusOK},
		{"open with bad token", "/open", "junk", http.StatusOK},
		{"closed anonymous", "/closed", "", http.StatusUnauthorized},
		{"closed with bad token", "/closed", "junk", http.StatusUnauthorized},
		{"closed with valid token", "/closed", valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}
