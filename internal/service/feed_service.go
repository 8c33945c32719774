package service

import (
	"context"
	"fmt"
	"sort"

	"foodmedia/internal/cache"
	"foodmedia/internal/models"
	"foodmedia/internal/observability"
	"foodmedia/internal/repository"
)

const (
	// GuestPolicyAll serves guests the same chronological pool as a
	// logged-in user with no followees.
	GuestPolicyAll = "all"
	// GuestPolicyCurated serves guests the discovery mix instead.
	GuestPolicyCurated = "curated"
)

const discoveryBucketSize = 5

// FeedService assembles the home feed and the discovery feed.
type FeedService struct {
	postRepo    repository.PostRepository
	followRepo  repository.FollowRepository
	pageSize    int
	guestPolicy string
}

// FeedInput identifies one feed page request. ViewerID 0 means guest.
// CategoryID nil means no category filter.
type FeedInput struct {
	ViewerID   uint
	Page       int
	CategoryID *uint
}

// FeedPage is one page of feed results plus the pagination hint.
type FeedPage struct {
	Posts   []*models.Post `json:"posts"`
	HasMore bool           `json:"has_more"`
	Page    int            `json:"page"`
}

func NewFeedService(
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	pageSize int,
	guestPolicy string,
) *FeedService {
	if pageSize <= 0 {
		pageSize = 3
	}
	return &FeedService{
		postRepo:    postRepo,
		followRepo:  followRepo,
		pageSize:    pageSize,
		guestPolicy: guestPolicy,
	}
}

// GetFeed returns one page of the viewer's home feed, newest first.
//
// A viewer who follows anyone sees only their followees' posts. A viewer
// with no followees, and guests under the "all" policy, fall back to the
// full chronological pool so the feed is never empty for new accounts.
// Guests under the "curated" policy get the discovery mix instead.
func (s *FeedService) GetFeed(ctx context.Context, in FeedInput) (*FeedPage, error) {
	if in.Page < 0 {
		return nil, models.NewValidationError("Page must not be negative")
	}

	viewerLabel := "user"
	policy := "followees"

	if in.ViewerID == 0 {
		viewerLabel = "guest"
		if s.guestPolicy == GuestPolicyCurated {
			observability.FeedRequestsTotal.WithLabelValues(viewerLabel, "curated").Inc()
			posts, err := s.discoveryPosts(ctx, 0)
			if err != nil {
				return nil, err
			}
			return &FeedPage{Posts: posts, HasMore: false, Page: 0}, nil
		}
	}

	var authorIDs []uint
	if in.ViewerID != 0 {
		ids, err := s.followRepo.GetFolloweeIDs(ctx, in.ViewerID)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			authorIDs = ids
		} else {
			policy = "fallback_all"
		}
	} else {
		policy = "all"
	}

	var categoryID uint
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
	}

	posts, err := s.postRepo.Feed(ctx, authorIDs, categoryID, s.pageSize, in.Page*s.pageSize, in.ViewerID)
	if err != nil {
		return nil, err
	}

	observability.FeedRequestsTotal.WithLabelValues(viewerLabel, policy).Inc()
	observability.FeedPageFill.Observe(float64(len(posts)) / float64(s.pageSize))

	return &FeedPage{
		Posts: posts,
		// A full page suggests more behind it. The hint is optimistic when
		// the pool size is an exact multiple of the page size; the next
		// request simply comes back empty.
		HasMore: len(posts) == s.pageSize,
		Page:    in.Page,
	}, nil
}

// GetDiscoveryFeed returns the curated mix: the most liked posts blended
// with the newest ones, deduplicated, newest first. It is a single page.
func (s *FeedService) GetDiscoveryFeed(ctx context.Context, viewerID uint) (*FeedPage, error) {
	posts, err := s.discoveryPosts(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	observability.FeedRequestsTotal.WithLabelValues(viewerLabelFor(viewerID), "discovery").Inc()
	return &FeedPage{Posts: posts, HasMore: false, Page: 0}, nil
}

func (s *FeedService) discoveryPosts(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	// Only the guest view is cacheable; liked/saved flags are per viewer.
	if viewerID == 0 {
		var cached []*models.Post
		err := cache.CacheAside(ctx, cache.DiscoveryKey, &cached, cache.DiscoveryTTL, func() error {
			built, err := s.buildDiscovery(ctx, 0)
			if err != nil {
				return err
			}
			cached = built
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discovery feed: %w", err)
		}
		return cached, nil
	}
	return s.buildDiscovery(ctx, viewerID)
}

func (s *FeedService) buildDiscovery(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	topLiked, err := s.postRepo.TopLiked(ctx, discoveryBucketSize, viewerID)
	if err != nil {
		return nil, err
	}
	recent, err := s.postRepo.Recent(ctx, discoveryBucketSize, viewerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(topLiked)+len(recent))
	merged := make([]*models.Post, 0, len(topLiked)+len(recent))
	for _, p := range append(topLiked, recent...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		merged = append(merged, p)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].ID > merged[j].ID
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged, nil
}

func viewerLabelFor(viewerID uint) string {
	if viewerID == 0 {
		return "guest"
	}
	return "user"
}
