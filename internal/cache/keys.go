package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	FolloweesKeyPrefix = "user:%d:followees"
	CategoriesKey      = "categories"
	DiscoveryKey       = "feed:discovery"
)

const (
	UserTTL       = 5 * time.Minute
	PostTTL       = 30 * time.Minute
	FolloweesTTL  = 2 * time.Minute
	CategoriesTTL = 1 * time.Hour
	DiscoveryTTL  = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FolloweesKey(userID uint) string {
	return fmt.Sprintf(FolloweesKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, DiscoveryKey)
}

func InvalidateFollowees(ctx context.Context, userID uint) {
	Invalidate(ctx, FolloweesKey(userID))
}
