package platforms

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/mayaweb/udeploy/internal/engine"
	"github.com/mayaweb/udeploy/internal/platforms"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	engineSvc *engine.Service
	catalog   *platforms.Registry

	logger *zap.Logger
}

func NewHandler(engineSvc *engine.Service, catalog *platforms.Registry, logger *zap.Logger) handler.Handler {
	return &Handler{
		engineSvc: engineSvc,
		catalog:   catalog,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/platforms")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Get("/recommended", h.recommended)
	r.Get("/:id", h.get)
}

//	@Summary		List supported platforms
//	@Description	Retrieve every hosting platform the engine can deploy to, in registry order
//	@Tags			platforms
//	@Produce		json
//	@Success		200	{array}	PlatformResponse
//	@Router			/platforms [get]
//
// List supported platforms.
func (h *Handler) list(c *fiber.Ctx) error {
	return c.JSON(toResponses(h.engineSvc.GetSupportedPlatforms()))
}

//	@Summary		Recommend platforms
//	@Description	Suggest platforms for a project type; unknown types get a general-purpose default
//	@Tags			platforms
//	@Produce		json
//	@Param			type	query	string	false	"Project type, e.g. react, nextjs, static"
//	@Success		200		{array}	PlatformResponse
//	@Router			/platforms/recommended [get]
//
// Recommend platforms for a project type.
func (h *Handler) recommended(c *fiber.Ctx) error {
	return c.JSON(toResponses(h.engineSvc.GetRecommendedPlatforms(c.Query("type"))))
}

//	@Summary		Get a platform
//	@Description	Retrieve a single platform by its id
//	@Tags			platforms
//	@Produce		json
//	@Param			id	path		string	true	"Platform ID"
//	@Success		200	{object}	PlatformResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/platforms/{id} [get]
//
// Get a platform.
func (h *Handler) get(c *fiber.Ctx) error {
	platform, err := h.catalog.Get(c.Params("id"))
	if err != nil {
		return fmt.Errorf("failed to get platform: %w", err)
	}

	return c.JSON(toResponse(platform))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, platforms.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func toResponses(list []platforms.Platform) []PlatformResponse {
	return lo.Map(list, func(p platforms.Platform, _ int) PlatformResponse {
		return toResponse(p)
	})
}

func toResponse(p platforms.Platform) PlatformResponse {
	return PlatformResponse{
		ID:               p.ID,
		Name:             p.Name,
		APIBaseURL:       p.APIBaseURL,
		AuthType:         string(p.AuthType),
		SupportedFormats: lo.Map(p.SupportedFormats, func(f platforms.Format, _ int) string { return string(f) }),
		Features:         lo.Map(p.Features, func(f platforms.Feature, _ int) string { return string(f) }),
		Pricing:          string(p.Pricing),
		Credentials:      p.Credentials,
	}
}
