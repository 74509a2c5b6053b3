package handlers

import (
	"net/http"
	"plantastic/internal/realtime"
	"plantastic/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	forum *services.ForumService
	hub   *realtime.Hub
}

func NewVoteHandler(forum *services.ForumService, hub *realtime.Hub) *VoteHandler {
	return &VoteHandler{forum: forum, hub: hub}
}

// Upvote handles POST /posts/:id/upvote.
func (h *VoteHandler) Upvote(c *gin.Context) {
	h.cast(c, services.DirectionUp)
}

// Downvote handles POST /posts/:id/downvote.
func (h *VoteHandler) Downvote(c *gin.Context) {
	h.cast(c, services.DirectionDown)
}

func (h *VoteHandler) cast(c *gin.Context, dir services.Direction) {
	pid := c.Param("id")
	tally, err := h.forum.CastVote(c.Request.Context(), pid, callerID(c), dir)
	if err != nil {
		respondError(c, err)
		return
	}

	// Others only learn the counts; the flags belong to this caller.
	if h.hub != nil {
		h.hub.Broadcast(realtime.Event{
			Type:   realtime.EventPostVoted,
			PostID: pid,
			Data: realtime.VoteCounts{
				UpvoteCount:   tally.UpvoteCount,
				DownvoteCount: tally.DownvoteCount,
				VoteScore:     tally.VoteScore,
				Version:       tally.Version,
			},
		})
	}
	c.JSON(http.StatusOK, tally)
}
