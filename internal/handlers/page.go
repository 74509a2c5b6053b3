package handlers

import (
	"net/http"
	"plantastic/internal/utils"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the HTML shells. Data is loaded by the browser from the JSON API.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c *gin.Context) {
	Render(c, http.StatusOK, "index.html", gin.H{"Title": "Home"})
}

func (h *PageHandler) Forum(c *gin.Context) {
	Render(c, http.StatusOK, "forum.html", gin.H{"Title": "Community Forum"})
}

func (h *PageHandler) Plants(c *gin.Context) {
	Render(c, http.StatusOK, "plants.html", gin.H{"Title": "Find Your Plant"})
}

func (h *PageHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "about.html", gin.H{"Title": "About Us"})
}

func (h *PageHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Login"})
}

func (h *PageHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Register"})
}

func (h *PageHandler) ShowProfile(c *gin.Context) {
	Render(c, http.StatusOK, "profile.html", gin.H{"Title": "My Profile", "Avatars": utils.AvatarEmojis()})
}

// NotFound answers unknown routes: JSON for API clients, a page for browsers.
func (h *PageHandler) NotFound(c *gin.Context) {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		RenderError(c, http.StatusNotFound, "Page not found")
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
