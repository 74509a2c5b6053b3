package services

import (
	"context"
	"plantastic/internal/models"
	"strings"

	"gorm.io/gorm"
)

// AppendComment adds a comment by callerID to the end of the post's comment log.
func (s *ForumService) AppendComment(ctx context.Context, pid string, callerID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationError("Comment text is required")
	}

	var (
		comment models.Comment
		post    *models.Post
		author  *models.User
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, callerID)
		if err != nil {
			return err
		}
		p, err := findPost(tx, pid)
		if err != nil {
			return err
		}

		comment = models.Comment{
			PostID: p.ID,
			UserID: user.ID,
			Author: user.Username,
			Text:   text,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return internalError("append comment", err)
		}

		if p.UserID != user.ID {
			var owner models.User
			if err := tx.Select("id", "email", "username").First(&owner, p.UserID).Error; err == nil {
				author = &owner
			}
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if author != nil && s.mail != nil {
		s.mail.SendCommentNotification(author.Email, comment.Author, post.Title, comment.Text, post.Pid)
	}
	return &comment, nil
}
