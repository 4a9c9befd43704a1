package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key under which the API gateway propagates the acting
// employee's id. Authentication itself happens upstream of this service.
const actorIDKey = contextKey("actorID")

// ActorHeader is the request header carrying the acting employee's id.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware copies the acting employee's id from the request header
// into the Gin context so handlers can stamp audit fields.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(ActorHeader); actor != "" {
			c.Set(string(actorIDKey), actor)
		}
		c.Next()
	}
}

// GetActorFromContext retrieves the acting employee's id from the Gin
// context. Returns false when the upstream gateway did not supply one.
func GetActorFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actor, ok := v.(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}
