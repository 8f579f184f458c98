package cache

import "errors"

// FeedbackKey is the single key the synchronizer stores its snapshot under.
const FeedbackKey = "feedbacks"

var ErrCacheMiss = errors.New("cache miss")

// Cache is the local key-value facility backing the fallback snapshot.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
