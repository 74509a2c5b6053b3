package services

import (
	"context"
	"errors"
	"testing"
)

func TestAppendCommentKeepsOrder(t *testing.T) {
	s, gdb := newTestForum(t)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")
	post := mustCreatePost(t, s, alice.ID, "Ferns")

	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		before, err := s.GetPost(ctx, post.Pid, 0)
		if err != nil {
			t.Fatal(err)
		}

		c, err := s.AppendComment(ctx, post.Pid, bob.ID, text)
		if err != nil {
			t.Fatalf("append %q: %v", text, err)
		}
		if c.Author != "bob" || c.UserID != bob.ID || c.Text != text {
			t.Errorf("unexpected comment %+v", c)
		}

		after, err := s.GetPost(ctx, post.Pid, 0)
		if err != nil {
			t.Fatal(err)
		}
		if after.CommentCount != before.CommentCount+1 {
			t.Errorf("step %d: count %d -> %d", i, before.CommentCount, after.CommentCount)
		}
		for j, prev := range before.Comments {
			cur := after.Comments[j]
			if cur.ID != prev.ID || cur.Text != prev.Text || cur.Author != prev.Author || !cur.CreatedAt.Equal(prev.CreatedAt) {
				t.Errorf("step %d: comment %d changed from %+v to %+v", i, j, prev, cur)
			}
		}
		if last := after.Comments[len(after.Comments)-1]; last.ID != c.ID {
			t.Errorf("new comment should be last, got %+v", last)
		}
	}
}

func TestAppendCommentAuthorSnapshot(t *testing.T) {
	s, gdb := newTestForum(t)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice")
	post := mustCreatePost(t, s, alice.ID, "Ferns")

	if _, err := s.AppendComment(ctx, post.Pid, alice.ID, "hello"); err != nil {
		t.Fatal(err)
	}
	gdb.Model(alice).Update("username", "alice2")

	got, err := s.GetPost(ctx, post.Pid, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Comments[0].Author != "alice" || got.Author != "alice" {
		t.Errorf("rename leaked into snapshots: post %q comment %q", got.Author, got.Comments[0].Author)
	}
}

func TestAppendCommentErrors(t *testing.T) {
	s, gdb := newTestForum(t)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice")
	post := mustCreatePost(t, s, alice.ID, "Ferns")

	tests := []struct {
		name    string
		pid     string
		caller  uint
		text    string
		wantErr error
	}{
		{"blank text", post.Pid, alice.ID, "  ", ErrValidation},
		{"unknown user", post.Pid, 999, "hi", ErrNotFound},
		{"unknown post", "missing", alice.ID, "hi", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AppendComment(ctx, tt.pid, tt.caller, tt.text); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	got, _ := s.GetPost(ctx, post.Pid, 0)
	if got.CommentCount != 0 {
		t.Errorf("failed appends must not store anything, count = %d", got.CommentCount)
	}
}
