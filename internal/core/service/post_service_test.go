package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkwell/content-service/internal/core/domain"
	"github.com/inkwell/content-service/internal/core/ports"
)

func TestPostService_Create(t *testing.T) {
	repo := newStubPostRepo()
	audit := &stubAudit{}
	svc := NewPostService(repo, audit, zerolog.Nop())

	post, err := svc.Create(context.Background(), 42, ports.CreatePostInput{
		Title:   "hello",
		Content: "first post",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.ID <= 0 {
		t.Fatalf("expected positive id, got %d", post.ID)
	}
	if post.UserID != 42 {
		t.Fatalf("expected owner 42, got %d", post.UserID)
	}
	if post.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditPostCreate {
		t.Fatalf("expected post-create audit event, got %+v", audit.events)
	}
}

func TestPostService_Create_Validation(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), &stubAudit{}, zerolog.Nop())

	cases := []ports.CreatePostInput{
		{},
		{Title: "only title"},
		{Content: "only content"},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), 1, input); err != domain.ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestPostService_ListByUser(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, &stubAudit{}, zerolog.Nop())

	_, _ = svc.Create(context.Background(), 1, ports.CreatePostInput{Title: "a", Content: "x"})
	_, _ = svc.Create(context.Background(), 1, ports.CreatePostInput{Title: "b", Content: "y"})
	_, _ = svc.Create(context.Background(), 2, ports.CreatePostInput{Title: "c", Content: "z"})

	posts, err := svc.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	for _, p := range posts {
		if p.UserID != 1 {
			t.Fatalf("foreign post leaked into listing: %+v", p)
		}
	}
}
