package v1

import (
	"process-maps-backend/internal/auth"
	"process-maps-backend/internal/generator"
	"process-maps-backend/internal/handlers"
	"process-maps-backend/internal/libraries"
	"process-maps-backend/internal/middleware"
	"process-maps-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps carries everything the v1 handlers are built from.
type Deps struct {
	DB          *gorm.DB
	Users       repo.UserRepoInterface
	Boards      repo.BoardRepoInterface
	Content     repo.BoardContentRepoInterface
	Sessions    *auth.Sessions
	GitHub      *auth.GitHub
	Generator   *generator.Generator
	Hub         *libraries.Hub
	AILimiter   *middleware.RateLimiter
	FrontendURL string
}

// events keeps a missing hub from becoming a non-nil interface.
func (d *Deps) events() handlers.BoardEventPublisher {
	if d.Hub == nil {
		return nil
	}
	return d.Hub
}

func RegisterRoutes(r fiber.Router, deps *Deps) {
	requireSession := middleware.RequireSession(deps.Sessions)

	registerHealth(r, deps)
	registerAuth(r, deps, requireSession)

	registerBoard(r, deps, requireSession)
	registerAI(r, deps, requireSession)
	registerWebSocket(r, deps, requireSession)
}
