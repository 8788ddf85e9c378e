package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/modules/client/dto"
	"agenda-api/modules/client/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ClientController handles client address book HTTP requests.
type ClientController struct {
	controller.BaseController
	ClientService service.ClientServiceInterface
}

func NewClientController(svc service.ClientServiceInterface) *ClientController {
	return &ClientController{
		BaseController: controller.NewBaseController(),
		ClientService:  svc,
	}
}

// Create handles POST /private/clients
// @Summary Register a client
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateClientRequest true "Client data"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/clients [post]
func (c *ClientController) Create(ctx echo.Context) error {
	var req dto.CreateClientRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.ClientService.Create(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Client created successfully")
}

// List handles GET /private/clients
// @Summary List clients
// @Description Paginated active clients, optionally filtered by search over name, tax id and email.
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Success 200 {object} dto.PaginatedClientResponse
// @Router /private/clients [get]
func (c *ClientController) List(ctx echo.Context) error {
	result, appErr := c.ClientService.List(ctx.Request().Context(), params.NewQueryParams(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetByID handles GET /private/clients/:id
// @Summary Get a client by ID
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/clients/{id} [get]
func (c *ClientController) GetByID(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid client ID")
	}

	result, appErr := c.ClientService.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetByTaxID handles GET /private/clients/tax/:taxId
// @Summary Get a client by tax ID
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param taxId path string true "Tax ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/clients/tax/{taxId} [get]
func (c *ClientController) GetByTaxID(ctx echo.Context) error {
	result, appErr := c.ClientService.GetByTaxID(ctx.Request().Context(), ctx.Param("taxId"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /private/clients/:id
// @Summary Update a client
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/clients/{id} [put]
func (c *ClientController) Update(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid client ID")
	}

	var req dto.UpdateClientRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.ClientService.Update(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Client updated successfully")
}

// UploadPhoto handles POST /private/clients/:id/photo
// @Summary Upload a client photo
// @Tags Clients
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Client ID"
// @Param photo formData file true "Photo file"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/clients/{id}/photo [post]
func (c *ClientController) UploadPhoto(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid client ID")
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Photo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Could not read photo file")
	}
	defer file.Close()

	result, appErr := c.ClientService.UploadPhoto(
		ctx.Request().Context(),
		id,
		fileHeader.Filename,
		file,
		fileHeader.Header.Get("Content-Type"),
	)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Photo uploaded successfully")
}

// Delete handles DELETE /private/clients/:id
// @Summary Deactivate a client (admin)
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/clients/{id} [delete]
func (c *ClientController) Delete(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid client ID")
	}

	if appErr := c.ClientService.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Client deleted")
}
