package services

import (
	"context"
	"plantastic/internal/db"
	"plantastic/internal/models"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.OpenMemory(name)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    strings.ToLower(username) + "@example.com",
		Phone:    "555-0100",
		Password: "x",
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func newTestForum(t *testing.T) (*ForumService, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	return NewForumService(gdb, nil), gdb
}

func mustCreatePost(t *testing.T, s *ForumService, author uint, title string) *models.Post {
	t.Helper()
	post, err := s.CreatePost(context.Background(), author, title, "Body of "+title)
	if err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return post
}

func newTestTokens() *TokenService {
	return NewTokenService("test-secret", time.Hour)
}
