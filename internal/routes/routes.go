package routes

import (
	"github.com/gofiber/fiber/v2"
)

// Resource is the set of actions a CRUD handler exposes.
type Resource interface {
	Index(c *fiber.Ctx) error
	Show(c *fiber.Ctx) error
	Store(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Destroy(c *fiber.Ctx) error
	Restore(c *fiber.Ctx) error
}

type Handlers struct {
	Categories  Resource
	CastMembers Resource
	Genres      Resource
	Videos      Resource

	// PresignVideoFile serves GET /videos/:id/files/:field/presign.
	PresignVideoFile fiber.Handler
}

func Setup(app *fiber.App, h Handlers) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	register(v1, "/categories", h.Categories)
	register(v1, "/cast_members", h.CastMembers)
	register(v1, "/genres", h.Genres)

	videos := register(v1, "/videos", h.Videos)
	{
		videos.Get("/:id/files/:field/presign", h.PresignVideoFile)
	}
}

func register(router fiber.Router, path string, r Resource) fiber.Router {
	group := router.Group(path)
	{
		group.Get("/", r.Index)
		group.Get("/:id", r.Show)
		group.Post("/", r.Store)
		group.Put("/:id", r.Update)
		group.Delete("/:id", r.Destroy)
		group.Post("/:id/restore", r.Restore)
	}
	return group
}
