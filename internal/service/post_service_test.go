package service

import (
	"testing"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"

	"gorm.io/gorm"
)

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(repository.NewPostRepository(db))
}

func TestPostCreateValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostService(db)

	if _, err := svc.Create(PostInput{Type: constants.PostTypeBlog, Title: models.JSON{"en-US": "x"}}); err != ErrPostInvalid {
		t.Fatalf("blank slug must be rejected, got %v", err)
	}
	if _, err := svc.Create(PostInput{Slug: "x", Type: "news", Title: models.JSON{"en-US": "x"}}); err != ErrPostInvalid {
		t.Fatalf("unknown type must be rejected, got %v", err)
	}
	if _, err := svc.Create(PostInput{Slug: "x", Type: constants.PostTypeBlog}); err != ErrPostInvalid {
		t.Fatalf("missing title must be rejected, got %v", err)
	}

	post, err := svc.Create(PostInput{
		Slug:  "welcome",
		Type:  "Blog",
		Title: models.JSON{"en-US": "Welcome"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.Type != constants.PostTypeBlog {
		t.Fatalf("type must be normalized, got %s", post.Type)
	}
	if post.IsPublished {
		t.Fatalf("posts default to draft")
	}
}

func TestPostPublishStampsTime(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostService(db)

	post, err := svc.Create(PostInput{Slug: "promo", Type: constants.PostTypeNotice, Title: models.JSON{"en-US": "Promo"}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.PublishedAt != nil {
		t.Fatalf("draft must not carry a publish time")
	}

	published := true
	updated, err := svc.Update(post.ID, PostInput{
		Slug:        "promo",
		Type:        constants.PostTypeNotice,
		Title:       models.JSON{"en-US": "Promo"},
		IsPublished: &published,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.IsPublished || updated.PublishedAt == nil {
		t.Fatalf("publishing must stamp published_at")
	}
	stamped := *updated.PublishedAt

	// re-saving an already published post keeps the original stamp
	updated, err = svc.Update(post.ID, PostInput{
		Slug:        "promo",
		Type:        constants.PostTypeNotice,
		Title:       models.JSON{"en-US": "Promo v2"},
		IsPublished: &published,
	})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(stamped) {
		t.Fatalf("publish time must not move on re-save")
	}
}

func TestPostStorefrontVisibility(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostService(db)

	published := true
	if _, err := svc.Create(PostInput{Slug: "live", Type: constants.PostTypeBlog, Title: models.JSON{"en-US": "Live"}, IsPublished: &published}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(PostInput{Slug: "draft", Type: constants.PostTypeBlog, Title: models.JSON{"en-US": "Draft"}}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetBySlug("draft"); err != ErrPostNotFound {
		t.Fatalf("draft must be hidden from storefront, got %v", err)
	}
	if _, err := svc.GetBySlug("live"); err != nil {
		t.Fatalf("published post must be visible: %v", err)
	}

	posts, total, err := svc.ListPublished(repository.PostListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list published failed: %v", err)
	}
	if total != 1 || posts[0].Slug != "live" {
		t.Fatalf("storefront list must only contain published posts, total=%d", total)
	}

	_, total, err = svc.ListAdmin(repository.PostListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("back office must list drafts too, total=%d", total)
	}
}

func TestPostDelete(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPostService(db)

	post, err := svc.Create(PostInput{Slug: "gone", Type: constants.PostTypeBlog, Title: models.JSON{"en-US": "Gone"}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(post.ID); err != ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
