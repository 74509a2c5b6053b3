package handlers

import (
	"net/http"
	"plantastic/internal/services"

	"github.com/gin-gonic/gin"
)

type IntakeHandler struct {
	intake *services.IntakeService
}

func NewIntakeHandler(intake *services.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intake}
}

type complaintRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

type newsletterRequest struct {
	Email string `json:"email" binding:"required"`
}

// Complaint handles POST /complaint.
func (h *IntakeHandler) Complaint(c *gin.Context) {
	var req complaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name, email and message are required")
		return
	}

	_, err := h.intake.SubmitComplaint(c.Request.Context(), services.ComplaintInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Your response has been received. Thank you!"})
}

// Subscribe handles POST /newsletter/subscribe.
func (h *IntakeHandler) Subscribe(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email is required")
		return
	}
	if err := h.intake.Subscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for subscribing to our newsletter!"})
}

// Unsubscribe handles POST /newsletter/unsubscribe.
func (h *IntakeHandler) Unsubscribe(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email is required")
		return
	}
	if err := h.intake.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You have been unsubscribed."})
}
