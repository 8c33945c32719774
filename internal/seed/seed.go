// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"foodmedia/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo users, food posts, follows, likes,
// saves and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := Categories(db); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	log.Printf("✓ %d categories available", len(categories))

	factory := NewFactory(db, SeedOptions{})

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d demo users created", len(users))

	posts, err := createPosts(factory, users, categories, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createSocialMesh(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create social mesh: %w", err)
	}
	log.Println("✓ follows, likes, saves and comments created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, saved_posts, follows, post_categories, posts, categories, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few well-known accounts so developers can log in.
	if count >= 3 {
		for _, name := range []string{"alice", "bob", "test"} {
			username := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = username
				u.Email = fmt.Sprintf("%s@example.com", username)
				u.Bio = "One of the OGs."
				u.AvatarURL = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username)
			})
			if err != nil {
				continue
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(factory *Factory, users []*models.User, categories []models.Category, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		post, err := factory.CreatePost(user, pickCategories(r, categories))
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

// pickCategories returns 1-3 distinct categories for a post.
func pickCategories(r *rand.Rand, categories []models.Category) []models.Category {
	if len(categories) == 0 {
		return nil
	}
	n := r.Intn(3) + 1
	if n > len(categories) {
		n = len(categories)
	}
	picked := make([]models.Category, 0, n)
	for _, idx := range r.Perm(len(categories))[:n] {
		picked = append(picked, categories[idx])
	}
	return picked
}

// createSocialMesh wires users together so feeds have content: each user
// follows a handful of others, and posts collect likes, saves and comments.
func createSocialMesh(factory *Factory, users []*models.User, posts []*models.Post) error {
	if len(users) < 2 || len(posts) == 0 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, follower := range users {
		followCount := r.Intn(5) + 1
		for _, idx := range r.Perm(len(users))[:min(followCount, len(users))] {
			followee := users[idx]
			if followee.ID == follower.ID {
				continue
			}
			// Duplicate edges hit the unique index; ignore and move on.
			_ = factory.CreateFollow(follower, followee)
		}
	}

	for _, post := range posts {
		likeCount := r.Intn(min(8, len(users)))
		for _, idx := range r.Perm(len(users))[:likeCount] {
			_ = factory.CreateLike(users[idx], post)
		}

		if r.Float32() < 0.3 {
			_ = factory.CreateSave(users[r.Intn(len(users))], post)
		}

		commentCount := r.Intn(4)
		for c := 0; c < commentCount; c++ {
			if _, err := factory.CreateComment(users[r.Intn(len(users))], post); err != nil {
				return err
			}
		}
	}

	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
