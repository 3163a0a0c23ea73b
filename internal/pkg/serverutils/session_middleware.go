package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionLocalKey is where the middleware stores the resolved session id.
const SessionLocalKey = "session_id"

// SessionMiddleware resolves the caller's session id from the named cookie,
// minting and setting a fresh uuid when absent. Every matching route can then
// read Locals(SessionLocalKey) unconditionally.
func SessionMiddleware(cookieName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sessionId := ctx.Cookies(cookieName)
		if sessionId == "" {
			sessionId = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    sessionId,
				Expires:  time.Now().Add(30 * 24 * time.Hour),
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}
		ctx.Locals(SessionLocalKey, sessionId)
		return ctx.Next()
	}
}
