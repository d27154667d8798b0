package cache

import "fmt"

const (
	// PagePrefix namespaces every rendered-page entry in Redis.
	PagePrefix = "page:"

	indexPageKey = "index:%d"
)

// IndexPageKey is the cache key of one page of the global feed.
func IndexPageKey(page int) string {
	return fmt.Sprintf(indexPageKey, page)
}
