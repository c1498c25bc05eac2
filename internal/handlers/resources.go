package handlers

import (
	"video-catalog/internal/models"
	"video-catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// The per-entity handlers below only carry the route documentation; the
// actions themselves live in CrudHandler.

type CategoryHandler struct {
	*CrudHandler[models.Category, services.CategoryInput]
}

func NewCategoryHandler(service services.CrudService[models.Category, services.CategoryInput], logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{NewCrudHandler[models.Category, services.CategoryInput](service, BindJSON[services.CategoryInput], AsIs[models.Category], "Category", logger)}
}

// ListCategories godoc
// @Summary List categories
// @Description Paginated list; soft deleted categories are excluded
// @Tags categories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(15)
// @Param search query string false "Free text search"
// @Param sort query string false "Sort column (name, is_active, created_at)" default(created_at)
// @Param dir query string false "Sort direction (asc, desc)" default(desc)
// @Param all query bool false "Return every record without pagination"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /categories [get]
func (h *CategoryHandler) Index(c *fiber.Ctx) error {
	return h.CrudHandler.Index(c)
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) Show(c *fiber.Ctx) error {
	return h.CrudHandler.Show(c)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param payload body services.CategoryInput true "Category payload"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /categories [post]
func (h *CategoryHandler) Store(c *fiber.Ctx) error {
	return h.CrudHandler.Store(c)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param payload body services.CategoryInput true "Category payload"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	return h.CrudHandler.Update(c)
}

// DeleteCategory godoc
// @Summary Soft delete a category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} utils.StandardResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Destroy(c *fiber.Ctx) error {
	return h.CrudHandler.Destroy(c)
}

// RestoreCategory godoc
// @Summary Restore a deleted category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /categories/{id}/restore [post]
func (h *CategoryHandler) Restore(c *fiber.Ctx) error {
	return h.CrudHandler.Restore(c)
}

type CastMemberHandler struct {
	*CrudHandler[models.CastMember, services.CastMemberInput]
}

func NewCastMemberHandler(service services.CrudService[models.CastMember, services.CastMemberInput], logger *logrus.Logger) *CastMemberHandler {
	return &CastMemberHandler{NewCrudHandler[models.CastMember, services.CastMemberInput](service, BindJSON[services.CastMemberInput], AsIs[models.CastMember], "Cast member", logger)}
}

// ListCastMembers godoc
// @Summary List cast members
// @Description Paginated list; soft deleted cast members are excluded
// @Tags cast_members
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(15)
// @Param search query string false "Free text search"
// @Param sort query string false "Sort column (name, type, created_at)" default(created_at)
// @Param dir query string false "Sort direction (asc, desc)" default(desc)
// @Param all query bool false "Return every record without pagination"
// @Param type query int false "Filter by type (1 director, 2 actor)"
// @Success 200 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /cast_members [get]
func (h *CastMemberHandler) Index(c *fiber.Ctx) error {
	return h.CrudHandler.Index(c)
}

// GetCastMember godoc
// @Summary Get a cast member
// @Tags cast_members
// @Produce json
// @Param id path string true "Cast member ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /cast_members/{id} [get]
func (h *CastMemberHandler) Show(c *fiber.Ctx) error {
	return h.CrudHandler.Show(c)
}

// CreateCastMember godoc
// @Summary Create a cast member
// @Tags cast_members
// @Accept json
// @Produce json
// @Param payload body services.CastMemberInput true "Cast member payload"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /cast_members [post]
func (h *CastMemberHandler) Store(c *fiber.Ctx) error {
	return h.CrudHandler.Store(c)
}

// UpdateCastMember godoc
// @Summary Update a cast member
// @Tags cast_members
// @Accept json
// @Produce json
// @Param id path string true "Cast member ID"
// @Param payload body services.CastMemberInput true "Cast member payload"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /cast_members/{id} [put]
func (h *CastMemberHandler) Update(c *fiber.Ctx) error {
	return h.CrudHandler.Update(c)
}

// DeleteCastMember godoc
// @Summary Soft delete a cast member
// @Tags cast_members
// @Param id path string true "Cast member ID"
// @Success 204
// @Failure 404 {object} utils.StandardResponse
// @Router /cast_members/{id} [delete]
func (h *CastMemberHandler) Destroy(c *fiber.Ctx) error {
	return h.CrudHandler.Destroy(c)
}

// RestoreCastMember godoc
// @Summary Restore a deleted cast member
// @Tags cast_members
// @Produce json
// @Param id path string true "Cast member ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /cast_members/{id}/restore [post]
func (h *CastMemberHandler) Restore(c *fiber.Ctx) error {
	return h.CrudHandler.Restore(c)
}

type GenreHandler struct {
	*CrudHandler[models.Genre, services.GenreInput]
}

func NewGenreHandler(service services.CrudService[models.Genre, services.GenreInput], logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{NewCrudHandler[models.Genre, services.GenreInput](service, BindJSON[services.GenreInput], AsIs[models.Genre], "Genre", logger)}
}

// ListGenres godoc
// @Summary List genres
// @Description Paginated list; soft deleted genres are excluded
// @Tags genres
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(15)
// @Param search query string false "Free text search"
// @Param sort query string false "Sort column (name, is_active, created_at)" default(created_at)
// @Param dir query string false "Sort direction (asc, desc)" default(desc)
// @Param all query bool false "Return every record without pagination"
// @Param is_active query bool false "Filter by active flag"
// @Param categories query string false "Comma separated category IDs"
// @Success 200 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /genres [get]
func (h *GenreHandler) Index(c *fiber.Ctx) error {
	return h.CrudHandler.Index(c)
}

// GetGenre godoc
// @Summary Get a genre
// @Tags genres
// @Produce json
// @Param id path string true "Genre ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /genres/{id} [get]
func (h *GenreHandler) Show(c *fiber.Ctx) error {
	return h.CrudHandler.Show(c)
}

// CreateGenre godoc
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param payload body services.GenreInput true "Genre payload"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /genres [post]
func (h *GenreHandler) Store(c *fiber.Ctx) error {
	return h.CrudHandler.Store(c)
}

// UpdateGenre godoc
// @Summary Update a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param id path string true "Genre ID"
// @Param payload body services.GenreInput true "Genre payload"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /genres/{id} [put]
func (h *GenreHandler) Update(c *fiber.Ctx) error {
	return h.CrudHandler.Update(c)
}

// DeleteGenre godoc
// @Summary Soft delete a genre
// @Tags genres
// @Param id path string true "Genre ID"
// @Success 204
// @Failure 404 {object} utils.StandardResponse
// @Router /genres/{id} [delete]
func (h *GenreHandler) Destroy(c *fiber.Ctx) error {
	return h.CrudHandler.Destroy(c)
}

// RestoreGenre godoc
// @Summary Restore a deleted genre
// @Tags genres
// @Produce json
// @Param id path string true "Genre ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /genres/{id}/restore [post]
func (h *GenreHandler) Restore(c *fiber.Ctx) error {
	return h.CrudHandler.Restore(c)
}

type VideoHandler struct {
	*CrudHandler[models.Video, services.VideoInput]
}

func NewVideoHandler(videos *services.VideoService, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{NewCrudHandler[models.Video, services.VideoInput](videos, BindVideo, VideoShaper(videos), "Video", logger)}
}

// ListVideos godoc
// @Summary List videos
// @Description Paginated list; soft deleted videos are excluded
// @Tags videos
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(15)
// @Param search query string false "Free text search"
// @Param sort query string false "Sort column (title, year_launched, rating, duration, opened, created_at)" default(created_at)
// @Param dir query string false "Sort direction (asc, desc)" default(desc)
// @Param all query bool false "Return every record without pagination"
// @Param rating query string false "Filter by rating (L, 10, 14, 16, 18)"
// @Param categories query string false "Comma separated category IDs"
// @Param genres query string false "Comma separated genre IDs"
// @Success 200 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /videos [get]
func (h *VideoHandler) Index(c *fiber.Ctx) error {
	return h.CrudHandler.Index(c)
}

// GetVideo godoc
// @Summary Get a video
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /videos/{id} [get]
func (h *VideoHandler) Show(c *fiber.Ctx) error {
	return h.CrudHandler.Show(c)
}

// CreateVideo godoc
// @Summary Create a video
// @Tags videos
// @Accept json,mpfd
// @Produce json
// @Param payload body services.VideoInput true "Video payload"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /videos [post]
func (h *VideoHandler) Store(c *fiber.Ctx) error {
	return h.CrudHandler.Store(c)
}

// UpdateVideo godoc
// @Summary Update a video
// @Tags videos
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Video ID"
// @Param payload body services.VideoInput true "Video payload"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /videos/{id} [put]
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	return h.CrudHandler.Update(c)
}

// DeleteVideo godoc
// @Summary Soft delete a video
// @Tags videos
// @Param id path string true "Video ID"
// @Success 204
// @Failure 404 {object} utils.StandardResponse
// @Router /videos/{id} [delete]
func (h *VideoHandler) Destroy(c *fiber.Ctx) error {
	return h.CrudHandler.Destroy(c)
}

// RestoreVideo godoc
// @Summary Restore a deleted video
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /videos/{id}/restore [post]
func (h *VideoHandler) Restore(c *fiber.Ctx) error {
	return h.CrudHandler.Restore(c)
}
