package seed

import (
	"testing"
	"time"

	"foodmedia/internal/models"
)

func TestBuildPost_TimestampSpread(t *testing.T) {
	opts := SeedOptions{DryRun: true, MaxDays: 30}
	f := NewFactory(nil, opts)
	user := &models.User{ID: 1}

	p := f.BuildPost(user, nil)
	if p.Title == "" {
		t.Fatal("expected a generated title")
	}
	if p.UserID != user.ID {
		t.Fatalf("expected post owned by user %d, got %d", user.ID, p.UserID)
	}

	// timestamp should be within MaxDays
	if time.Since(p.CreatedAt) > (time.Duration(opts.MaxDays)+1)*24*time.Hour {
		t.Fatalf("created_at too old: %v", p.CreatedAt)
	}
}

func TestBuildPost_AttachesCategories(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true})
	user := &models.User{ID: 2}
	categories := []models.Category{{ID: 1, Name: "Dessert"}, {ID: 2, Name: "Baking"}}

	p := f.BuildPost(user, categories)
	if len(p.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(p.Categories))
	}
}

func TestCreateUser_DryRun(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true, SkipBcrypt: true})

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("dry-run create user: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected synthetic ID in dry-run mode")
	}
	if !user.ProfileComplete {
		t.Fatal("seeded users should have completed profiles")
	}
	if user.Password != "password123" {
		t.Fatal("expected plaintext password with SkipBcrypt")
	}
}
