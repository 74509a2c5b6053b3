package services

import (
	"context"
	"errors"
	"plantastic/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteState is a caller's standing on a single post.
type VoteState int

const (
	VoteNone VoteState = iota
	VoteUp
	VoteDown
)

// Direction is the button the caller pressed.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func (d Direction) state() VoteState {
	if d == DirectionUp {
		return VoteUp
	}
	return VoteDown
}

// NextVoteState is the toggle protocol: pressing the active direction retracts
// the vote, pressing the other one switches to it.
func NextVoteState(current VoteState, dir Direction) VoteState {
	if current == dir.state() {
		return VoteNone
	}
	return dir.state()
}

func stateFromValue(value int) VoteState {
	switch value {
	case models.VoteValueUp:
		return VoteUp
	case models.VoteValueDown:
		return VoteDown
	}
	return VoteNone
}

func (s VoteState) value() int {
	if s == VoteUp {
		return models.VoteValueUp
	}
	return models.VoteValueDown
}

// Tally is the vote summary returned after every vote.
type Tally struct {
	UpvoteCount   int  `json:"upvoteCount"`
	DownvoteCount int  `json:"downvoteCount"`
	VoteScore     int  `json:"voteScore"`
	HasUpvoted    bool `json:"hasUpvoted"`
	HasDownvoted  bool `json:"hasDownvoted"`

	// Version orders tallies of the same post; a higher one is newer.
	Version uint64 `json:"voteVersion"`
}

// CastVote applies dir for callerID on the post and returns the fresh tally.
// The read-modify-write runs in one transaction and touches only the caller's
// row, so concurrent votes by different users never overwrite each other.
// Bumping the post's vote version first serializes votes on the same post.
func (s *ForumService) CastVote(ctx context.Context, pid string, callerID uint, dir Direction) (*Tally, error) {
	if dir != DirectionUp && dir != DirectionDown {
		return nil, validationError("Unknown vote direction")
	}

	var tally Tally
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, callerID); err != nil {
			return err
		}
		post, err := findPost(tx, pid)
		if err != nil {
			return err
		}

		err = tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("vote_version", gorm.Expr("vote_version + ?", 1)).Error
		if err != nil {
			return internalError("vote", err)
		}
		var fresh models.Post
		if err := tx.Select("id", "vote_version").First(&fresh, post.ID).Error; err != nil {
			return internalError("vote", err)
		}

		current := VoteNone
		var existing models.Vote
		err = tx.Where("post_id = ? AND user_id = ?", post.ID, callerID).First(&existing).Error
		switch {
		case err == nil:
			current = stateFromValue(existing.Value)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return internalError("vote", err)
		}

		next := NextVoteState(current, dir)
		if next == VoteNone {
			err = tx.Where("post_id = ? AND user_id = ?", post.ID, callerID).Delete(&models.Vote{}).Error
		} else {
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&models.Vote{PostID: post.ID, UserID: callerID, Value: next.value()}).Error
		}
		if err != nil {
			return internalError("vote", err)
		}

		counts, err := countVotes(tx, []uint{post.ID})
		if err != nil {
			return internalError("vote", err)
		}
		c := counts[post.ID]
		tally = Tally{
			UpvoteCount:   c.up,
			DownvoteCount: c.down,
			VoteScore:     c.up - c.down,
			HasUpvoted:    next == VoteUp,
			HasDownvoted:  next == VoteDown,
			Version:       fresh.VoteVersion,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tally, nil
}

type voteCount struct {
	up, down int
}

// countVotes returns the current size of both vote sets for each post.
func countVotes(tx *gorm.DB, postIDs []uint) (map[uint]voteCount, error) {
	counts := make(map[uint]voteCount, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	type row struct {
		PostID uint
		Value  int
		Count  int
	}
	var rows []row
	err := tx.Model(&models.Vote{}).
		Select("post_id, value, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id, value").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		c := counts[r.PostID]
		switch r.Value {
		case models.VoteValueUp:
			c.up = r.Count
		case models.VoteValueDown:
			c.down = r.Count
		}
		counts[r.PostID] = c
	}
	return counts, nil
}

// callerVotes returns callerID's state on each of the given posts.
func callerVotes(tx *gorm.DB, callerID uint, postIDs []uint) (map[uint]VoteState, error) {
	states := make(map[uint]VoteState, len(postIDs))
	if callerID == 0 || len(postIDs) == 0 {
		return states, nil
	}
	var votes []models.Vote
	if err := tx.Where("user_id = ? AND post_id IN ?", callerID, postIDs).Find(&votes).Error; err != nil {
		return nil, err
	}
	for _, v := range votes {
		states[v.PostID] = stateFromValue(v.Value)
	}
	return states, nil
}
