// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"foodmedia/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune factory behavior.
type SeedOptions struct {
	// DryRun logs what would be created without touching the database.
	DryRun bool
	// SkipBcrypt stores plaintext passwords. Development fast mode only.
	SkipBcrypt bool
	// MaxDays spreads post timestamps over the last N days (default 90).
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`. Generated
// users have completed profiles so they show up fully in feeds.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:        gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:           gofakeit.Email(),
		DisplayName:     gofakeit.Name(),
		Bio:             gofakeit.Sentence(10),
		AvatarURL:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		ProfileComplete: true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a food post struct without persisting it. Useful
// for batching.
func (f *Factory) BuildPost(user *models.User, categories []models.Category, overrides ...func(*models.Post)) *models.Post {
	dish := gofakeit.Dinner()
	post := &models.Post{
		Title:      dish,
		Content:    fmt.Sprintf("%s\n\n%s", gofakeit.Sentence(12), gofakeit.Paragraph(1, 3, 8, "\n")),
		UserID:     user.ID,
		ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Categories: categories,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample food post for the given user.
func (f *Factory) CreatePost(user *models.User, categories []models.Category, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, categories, overrides...)

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: user=%d title=%q categories=%d", post.UserID, post.Title, len(post.Categories))
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `post`.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(like).Error
}

// CreateSave bookmarks `post` for `user`.
func (f *Factory) CreateSave(user *models.User, post *models.Post) error {
	saved := &models.SavedPost{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(saved).Error
}

// CreateFollow persists a follow edge from `follower` to `followee`.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	follow := &models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	return f.db.Create(follow).Error
}
