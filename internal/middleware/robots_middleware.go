package middleware

import (
	"github.com/gin-gonic/gin"
)

const noIndexDirectives = "noindex, nofollow"

// NoIndexMiddleware keeps non-production copies of the site out of search
// results by tagging every response with X-Robots-Tag. Paths listed in
// readable are left untagged so crawlers can still fetch robots.txt and
// learn they are not welcome.
func NoIndexMiddleware(readable ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(readable))
	for _, path := range readable {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; !ok {
			c.Header("X-Robots-Tag", noIndexDirectives)
		}
		c.Next()
	}
}
