package services

import (
	"context"
	"errors"
	"plantastic/internal/models"
	"plantastic/internal/utils"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForumService owns posts together with their comments and votes.
type ForumService struct {
	db   *gorm.DB
	mail *MailService
}

func NewForumService(db *gorm.DB, mail *MailService) *ForumService {
	return &ForumService{db: db, mail: mail}
}

// CreatePost stores a new post authored by callerID.
func (s *ForumService) CreatePost(ctx context.Context, callerID uint, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, validationError("Title and content are required")
	}

	tx := s.db.WithContext(ctx)
	user, err := findUser(tx, callerID)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Pid:      uuid.NewString(),
		UserID:   user.ID,
		Author:   user.Username,
		Title:    title,
		Content:  content,
		Comments: []models.Comment{},
	}
	if err := tx.Create(&post).Error; err != nil {
		return nil, internalError("create post", err)
	}

	if err := fillDerived(tx, []*models.Post{&post}, callerID); err != nil {
		return nil, internalError("create post", err)
	}
	return &post, nil
}

// ListPosts returns every post, newest first. callerID may be 0 for anonymous readers.
func (s *ForumService) ListPosts(ctx context.Context, callerID uint) ([]models.Post, error) {
	tx := s.db.WithContext(ctx)

	var posts []models.Post
	err := tx.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Order("created_at DESC, id DESC").Find(&posts).Error
	if err != nil {
		return nil, internalError("list posts", err)
	}

	ptrs := make([]*models.Post, len(posts))
	for i := range posts {
		ptrs[i] = &posts[i]
	}
	if err := fillDerived(tx, ptrs, callerID); err != nil {
		return nil, internalError("list posts", err)
	}
	return posts, nil
}

// GetPost returns one post with derived fields relative to callerID.
func (s *ForumService) GetPost(ctx context.Context, pid string, callerID uint) (*models.Post, error) {
	tx := s.db.WithContext(ctx)

	var post models.Post
	err := tx.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("pid = ?", pid).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Post not found")
		}
		return nil, internalError("get post", err)
	}

	if err := fillDerived(tx, []*models.Post{&post}, callerID); err != nil {
		return nil, internalError("get post", err)
	}
	return &post, nil
}

// DeletePost removes the post with its comments and votes. Only the author may delete.
func (s *ForumService) DeletePost(ctx context.Context, pid string, callerID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, pid)
		if err != nil {
			return err
		}
		if post.UserID != callerID {
			return newError(ErrForbidden, "You can only delete your own posts")
		}

		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return internalError("delete post", err)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return internalError("delete post", err)
		}
		if err := tx.Unscoped().Delete(post).Error; err != nil {
			return internalError("delete post", err)
		}
		return nil
	})
}

// fillDerived computes vote counts, the caller's flags, the comment count and
// the rendered content from the rows as they are now.
func fillDerived(tx *gorm.DB, posts []*models.Post, callerID uint) error {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	counts, err := countVotes(tx, ids)
	if err != nil {
		return err
	}
	states, err := callerVotes(tx, callerID, ids)
	if err != nil {
		return err
	}

	for _, p := range posts {
		c := counts[p.ID]
		p.UpvoteCount = c.up
		p.DownvoteCount = c.down
		p.VoteScore = c.up - c.down
		p.HasUpvoted = states[p.ID] == VoteUp
		p.HasDownvoted = states[p.ID] == VoteDown
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
		p.CommentCount = len(p.Comments)
		p.ContentHTML = utils.RenderMarkdown(p.Content)
	}
	return nil
}

func findPost(tx *gorm.DB, pid string) (*models.Post, error) {
	var post models.Post
	if err := tx.Where("pid = ?", pid).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Post not found")
		}
		return nil, internalError("find post", err)
	}
	return &post, nil
}

func findUser(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}
		return nil, internalError("find user", err)
	}
	return &user, nil
}

// LastPostAt returns the creation time of the newest post, or the zero time if there are none.
func (s *ForumService) LastPostAt(ctx context.Context) (time.Time, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Select("created_at").Order("created_at DESC").Limit(1).Find(&post).Error
	if err != nil {
		return time.Time{}, err
	}
	return post.CreatedAt, nil
}
