package handlers

import (
	"net/http"
	"plantastic/internal/models"
	"plantastic/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	accounts *services.AccountService
}

func NewUserHandler(accounts *services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Avatar   *string `json:"avatar"`
}

type favoriteRequest struct {
	PlantName string `json:"plantName" binding:"required"`
}

type profileResponse struct {
	*models.User
	Favorites []string `json:"favorites"`
}

func newProfileResponse(u *models.User) profileResponse {
	names := make([]string, 0, len(u.Favorites))
	for _, f := range u.Favorites {
		names = append(names, f.PlantName)
	}
	return profileResponse{User: u, Favorites: names}
}

// Profile handles GET /profile.
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.accounts.Profile(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user))
}

// UpdateProfile handles PUT /profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid profile data")
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), callerID(c), services.ProfileUpdate{
		Username: req.Username,
		Phone:    req.Phone,
		Email:    req.Email,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user))
}

// Favorites handles GET /favorites.
func (h *UserHandler) Favorites(c *gin.Context) {
	names, err := h.accounts.Favorites(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": names})
}

// AddFavorite handles POST /favorites.
func (h *UserHandler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Plant name is required")
		return
	}
	names, err := h.accounts.AddFavorite(c.Request.Context(), callerID(c), req.PlantName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"favorites": names})
}

// RemoveFavorite handles DELETE /favorites.
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Plant name is required")
		return
	}
	names, err := h.accounts.RemoveFavorite(c.Request.Context(), callerID(c), req.PlantName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": names})
}
