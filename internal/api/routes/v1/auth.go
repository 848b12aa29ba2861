package v1

import (
	"process-maps-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerAuth(r fiber.Router, deps *Deps, requireSession fiber.Handler) {
	authHandler := handlers.NewAuthHandler(deps.GitHub, deps.Sessions, deps.Users, deps.FrontendURL)

	r.Get("/auth/github/login", authHandler.GitHubLogin)
	r.Get("/auth/github/callback", authHandler.GitHubCallback)
	r.Post("/auth/logout", authHandler.Logout)
	r.Get("/auth/me", requireSession, authHandler.Me)
}
