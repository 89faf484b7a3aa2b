package redisrepo

import "fmt"

const (
	FEED_KEY          = "feed:%s:%s"       // <scope>:<viewerID>
	TAG_SEARCH_KEY    = "tag-search:%s"    // <tag>
	FOLLOWERS_KEY     = "followers:%s"     // <userID>
	NOTIFICATIONS_KEY = "notifications:%s" // <userID>
	USER_CACHE_KEY    = "user-cache:%s"    // <userID>

	POSTS_CHANNEL    = "channel:posts"
	FOLLOWER_CHANNEL = "channel:follower:%s" // <userID>
)

func FeedKey(scope string, viewerID string) string {
	return fmt.Sprintf(FEED_KEY, scope, viewerID)
}

func TagSearchKey(tag string) string {
	return fmt.Sprintf(TAG_SEARCH_KEY, tag)
}

func FollowersKey(userID string) string {
	return fmt.Sprintf(FOLLOWERS_KEY, userID)
}

func NotificationsKey(userID string) string {
	return fmt.Sprintf(NOTIFICATIONS_KEY, userID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}

func FollowerChannel(userID string) string {
	return fmt.Sprintf(FOLLOWER_CHANNEL, userID)
}
