package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	StoryFeedKey        = "stories:feed"
	StoryAuthorPrefix   = "stories:author:%d"
	SavedPostsKeyPrefix = "user:%d:saved"
)

const (
	UserTTL = 5 * time.Minute
	// StoryFeedTTL is deliberately short: the feed must react to TTL
	// expiry without waiting on invalidation.
	StoryFeedTTL  = 30 * time.Second
	SavedPostsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func StoryAuthorKey(userID uint) string {
	return fmt.Sprintf(StoryAuthorPrefix, userID)
}

func SavedPostsKey(userID uint) string {
	return fmt.Sprintf(SavedPostsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateStories(ctx context.Context, authorID uint) {
	Invalidate(ctx, StoryFeedKey)
	Invalidate(ctx, StoryAuthorKey(authorID))
}

func InvalidateSavedPosts(ctx context.Context, userID uint) {
	Invalidate(ctx, SavedPostsKey(userID))
}
