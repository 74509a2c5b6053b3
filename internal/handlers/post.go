package handlers

import (
	"net/http"
	"plantastic/internal/realtime"
	"plantastic/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	forum *services.ForumService
	hub   *realtime.Hub
}

func NewPostHandler(forum *services.ForumService, hub *realtime.Hub) *PostHandler {
	return &PostHandler{forum: forum, hub: hub}
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type createCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *PostHandler) broadcast(ev realtime.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

// Create handles POST /posts.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title and content are required")
		return
	}

	post, err := h.forum.CreatePost(c.Request.Context(), callerID(c), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcast(realtime.Event{Type: realtime.EventPostCreated, PostID: post.Pid})
	c.JSON(http.StatusCreated, post)
}

// List handles GET /posts.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.forum.ListPosts(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Detail handles GET /posts/:id.
func (h *PostHandler) Detail(c *gin.Context) {
	post, err := h.forum.GetPost(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	pid := c.Param("id")
	if err := h.forum.DeletePost(c.Request.Context(), pid, callerID(c)); err != nil {
		respondError(c, err)
		return
	}

	h.broadcast(realtime.Event{Type: realtime.EventPostDeleted, PostID: pid})
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// CreateComment handles POST /posts/:id/comments.
func (h *PostHandler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Comment text is required")
		return
	}

	pid := c.Param("id")
	comment, err := h.forum.AppendComment(c.Request.Context(), pid, callerID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcast(realtime.Event{Type: realtime.EventCommentAdded, PostID: pid, Data: comment})
	c.JSON(http.StatusCreated, comment)
}
