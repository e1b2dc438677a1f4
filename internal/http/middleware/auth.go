// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides bearer-token authentication. Token parsing is injected
// as a function so the middleware stays decoupled from the JWT library and
// signing configuration, which live in the services layer.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenParser validates an access token and returns the user ID it encodes.
// An error marks the token as invalid.
type TokenParser func(token string) (int, error)

// Auth returns a Gin middleware that extracts a Bearer token from the
// Authorization header, validates it with parse, and stores the resulting
// user ID in the Gin context under the "userID" key.
//
// The middleware is non-rejecting: requests without a token, or with an
// invalid one, proceed unauthenticated (no "userID" set). Handlers that
// require an identity enforce it themselves, which keeps public read
// endpoints and authenticated writes on the same router group.
//
// Invalid tokens are logged at debug level so misconfigured clients can be
// diagnosed without flooding logs.
func Auth(parse TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.Next()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(raw, prefix) {
			c.Next()
			return
		}

		token := strings.TrimSpace(raw[len(prefix):])
		if token == "" {
			c.Next()
			return
		}

		uid, err := parse(token)
		if err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("invalid bearer token")
			c.Next()
			return
		}

		c.Set("userID", uid)
		c.Next()
	}
}
