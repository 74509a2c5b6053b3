package services

import (
	"context"
	"errors"
	"plantastic/internal/models"
	"testing"
)

func TestSubmitComplaint(t *testing.T) {
	gdb := newTestDB(t)
	s := NewIntakeService(gdb, nil)
	ctx := context.Background()

	c, err := s.SubmitComplaint(ctx, ComplaintInput{Name: "Ana", Email: "Ana@Example.com", Message: "More cacti please"})
	if err != nil {
		t.Fatal(err)
	}
	if c.ID == 0 || c.Email != "ana@example.com" {
		t.Errorf("unexpected complaint %+v", c)
	}

	if _, err := s.SubmitComplaint(ctx, ComplaintInput{Name: "Ana", Email: "ana@example.com"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing message: got %v", err)
	}
}

func TestNewsletter(t *testing.T) {
	gdb := newTestDB(t)
	s := NewIntakeService(gdb, nil)
	ctx := context.Background()

	if err := s.Subscribe(ctx, "leaf@example.com"); err != nil {
		t.Fatal(err)
	}
	err := s.Subscribe(ctx, "LEAF@example.com")
	if !errors.Is(err, ErrValidation) || Message(err) != "Email already subscribed!" {
		t.Errorf("double subscribe: got %v", err)
	}
	if err := s.Subscribe(ctx, "not-an-email"); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid email: got %v", err)
	}

	if err := s.Unsubscribe(ctx, "leaf@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := s.Unsubscribe(ctx, "leaf@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown subscriber: got %v", err)
	}

	var count int64
	gdb.Model(&models.NewsletterSubscriber{}).Count(&count)
	if count != 0 {
		t.Errorf("subscribers = %d, want 0", count)
	}
}

func TestInsertSubscriberDuplicate(t *testing.T) {
	gdb := newTestDB(t)
	if err := insertSubscriber(gdb, "reader@example.com"); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := insertSubscriber(gdb, "reader@example.com")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if Message(err) != "Email already subscribed!" {
		t.Errorf("unexpected message %q", Message(err))
	}
}
