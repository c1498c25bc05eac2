package handlers

import (
	"errors"
	"strconv"

	"video-catalog/internal/repository"
	"video-catalog/internal/services"
	"video-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Binder reads the request body into an entity input.
type Binder[In any] func(c *fiber.Ctx) (*In, error)

// Shaper turns a model into its response representation.
type Shaper[M any] func(m *M) any

// BindJSON decodes the body with fiber's body parser.
func BindJSON[In any](c *fiber.Ctx) (*In, error) {
	in := new(In)
	if err := c.BodyParser(in); err != nil {
		return nil, err
	}
	return in, nil
}

// AsIs returns the model unchanged.
func AsIs[M any](m *M) any {
	return m
}

// CrudHandler serves list/show/store/update/destroy/restore for one entity.
type CrudHandler[M any, In any] struct {
	service services.CrudService[M, In]
	bind    Binder[In]
	shape   Shaper[M]
	name    string
	logger  *logrus.Logger
}

func NewCrudHandler[M any, In any](service services.CrudService[M, In], bind Binder[In], shape Shaper[M], name string, logger *logrus.Logger) *CrudHandler[M, In] {
	return &CrudHandler[M, In]{
		service: service,
		bind:    bind,
		shape:   shape,
		name:    name,
		logger:  logger,
	}
}

// Index lists records. Query: page, per_page, search, sort, dir, all and
// entity filters such as type, categories, genres, is_active.
func (h *CrudHandler[M, In]) Index(c *fiber.Ctx) error {
	ctx := c.Context()

	q := h.service.Paginate(parseListQuery(c))
	items, total, err := h.service.List(ctx, q)
	if err != nil {
		return respondError(c, h.logger, err, h.name, "Failed to retrieve "+h.name+" list")
	}

	data := make([]any, 0, len(items))
	for i := range items {
		data = append(data, h.shape(&items[i]))
	}

	if q.All {
		return utils.SuccessResponse(c, fiber.StatusOK, h.name+" list retrieved successfully", data)
	}
	meta := utils.CreatePaginationMeta(q.Page, q.PerPage, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, h.name+" list retrieved successfully", data, meta)
}

func (h *CrudHandler[M, In]) Show(c *fiber.Ctx) error {
	m, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, h.name, "Failed to retrieve "+h.name)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.name+" retrieved successfully", h.shape(m))
}

func (h *CrudHandler[M, In]) Store(c *fiber.Ctx) error {
	in, err := h.bind(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	m, err := h.service.Create(c.Context(), in)
	if err != nil {
		return respondError(c, h.logger, err, h.name, "Failed to create "+h.name)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, h.name+" created successfully", h.shape(m))
}

func (h *CrudHandler[M, In]) Update(c *fiber.Ctx) error {
	in, err := h.bind(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	m, err := h.service.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.logger, err, h.name, "Failed to update "+h.name)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.name+" updated successfully", h.shape(m))
}

func (h *CrudHandler[M, In]) Destroy(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.logger, err, h.name, "Failed to delete "+h.name)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CrudHandler[M, In]) Restore(c *fiber.Ctx) error {
	m, err := h.service.Restore(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, h.name, "Failed to restore "+h.name)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.name+" restored successfully", h.shape(m))
}

func parseListQuery(c *fiber.Ctx) repository.ListQuery {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	params := c.Queries()
	// ?all and ?all=1 both disable pagination
	raw, all := params["all"]
	if all {
		if b, err := strconv.ParseBool(raw); err == nil {
			all = b
		}
	}

	return repository.ListQuery{
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
		All:     all,
		Params:  params,
	}
}

func respondError(c *fiber.Ctx, logger *logrus.Logger, err error, name, message string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ValidationErrorResponse(c, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, name+" not found")
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(message)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, message)
}
