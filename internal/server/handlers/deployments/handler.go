package deployments

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mayaweb/udeploy/internal/deployments"
	"github.com/mayaweb/udeploy/internal/engine"
	"github.com/mayaweb/udeploy/internal/server/validation"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	engineSvc *engine.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	engineSvc *engine.Service,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		engineSvc: engineSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/deployments")

	r.Use(h.errorsHandler)
	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
	r.Post("/batch", validation.DecorateWithBodyEx(h.validator, h.batch))
	r.Get("/", h.list)
	r.Get("/:id", h.get)
	r.Post("/:id/cancel", h.cancel)
	r.Post("/:id/rollback", h.rollback)
}

//	@Summary		Deploy a project
//	@Description	Build, package and publish a project to one platform. Failures are reported in the returned deployment.
//	@Tags			deployments
//	@Accept			json
//	@Produce		json
//	@Param			deployment	body		DeployRequest	true	"Deployment request"
//	@Success		201			{object}	DeploymentResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Router			/deployments [post]
//
// Deploy a project to one platform.
func (h *Handler) post(c *fiber.Ctx, req *DeployRequest) error {
	deployment, err := h.engineSvc.Deploy(c.Context(), toConfig(req.Platform, req.ProjectRequest))
	if err != nil {
		return fmt.Errorf("failed to deploy: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(toResponse(deployment))
}

//	@Summary		Deploy a project to several platforms
//	@Description	Deploy concurrently to every listed platform and wait for all of them. Keys of the response are platform ids.
//	@Tags			deployments
//	@Accept			json
//	@Produce		json
//	@Param			deployment	body		BatchRequest	true	"Batch deployment request"
//	@Success		201			{object}	map[string]DeploymentResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Router			/deployments/batch [post]
//
// Deploy a project to several platforms.
func (h *Handler) batch(c *fiber.Ctx, req *BatchRequest) error {
	results, err := h.engineSvc.DeployToMultiplePlatforms(c.Context(), req.Platforms, toConfig("", req.ProjectRequest))
	if err != nil {
		return fmt.Errorf("failed to deploy: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(lo.MapValues(results, func(d *deployments.Deployment, _ string) DeploymentResponse {
		return toResponse(d)
	}))
}

//	@Summary		List deployments
//	@Description	Retrieve every tracked deployment in the order they were started
//	@Tags			deployments
//	@Produce		json
//	@Success		200	{array}	DeploymentResponse
//	@Router			/deployments [get]
//
// List deployments.
func (h *Handler) list(c *fiber.Ctx) error {
	items, err := h.engineSvc.ListDeployments(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list deployments: %w", err)
	}

	return c.JSON(lo.Map(items, func(d deployments.Deployment, _ int) DeploymentResponse {
		return toResponse(&d)
	}))
}

//	@Summary		Get deployment status
//	@Description	Retrieve a tracked deployment by ID
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment ID"
//	@Success		200	{object}	DeploymentResponse
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id} [get]
//
// Get deployment status.
func (h *Handler) get(c *fiber.Ctx) error {
	id, err := deploymentID(c)
	if err != nil {
		return err
	}

	deployment, err := h.engineSvc.GetDeploymentStatus(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get deployment: %w", err)
	}

	return c.JSON(toResponse(deployment))
}

//	@Summary		Cancel a deployment
//	@Description	Mark a running deployment as cancelled. Cancelling a finished deployment leaves it unchanged.
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment ID"
//	@Success		200	{object}	DeploymentResponse
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id}/cancel [post]
//
// Cancel a deployment.
func (h *Handler) cancel(c *fiber.Ctx) error {
	id, err := deploymentID(c)
	if err != nil {
		return err
	}

	if !h.engineSvc.CancelDeployment(c.Context(), id) {
		return fiber.NewError(fiber.StatusNotFound, deployments.ErrMessageNotFound)
	}

	return h.get(c)
}

//	@Summary		Roll back a deployment
//	@Description	Record a new deployment that serves the release of the given one. The original entry is not modified.
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment ID"
//	@Success		201	{object}	DeploymentResponse
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id}/rollback [post]
//
// Roll back a deployment.
func (h *Handler) rollback(c *fiber.Ctx) error {
	id, err := deploymentID(c)
	if err != nil {
		return err
	}

	deployment, err := h.engineSvc.RollbackDeployment(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to roll back deployment: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(toResponse(deployment))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, deployments.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, deployments.ErrMessageNotFound)
	}
	if errors.Is(err, engine.ErrInvalidConfig) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func deploymentID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.UUID{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return id, nil
}

func toConfig(platform string, req ProjectRequest) deployments.Config {
	return deployments.Config{
		Platform:             platform,
		ProjectID:            req.ProjectID,
		BuildCommand:         req.BuildCommand,
		OutputDirectory:      req.OutputDirectory,
		EnvironmentVariables: req.EnvironmentVariables,
		CustomDomain:         req.CustomDomain,
		SSL:                  req.SSL,
		CDN:                  req.CDN,
	}
}

func toResponse(d *deployments.Deployment) DeploymentResponse {
	return DeploymentResponse{
		DeploymentID:         d.ID,
		Platform:             d.Platform,
		ProjectID:            d.ProjectID,
		Success:              d.Success(),
		Status:               string(d.Status),
		URL:                  d.URL,
		ProviderDeploymentID: d.ProviderDeploymentID,
		Logs:                 lo.Ternary(d.Logs == nil, []string{}, d.Logs),
		Error:                d.Error,
		EstimatedTime:        int64(d.EstimatedTime.Seconds()),
		RollbackOf:           d.RollbackOf,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}
