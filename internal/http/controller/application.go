package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/usecase/application"
)

type ApplicationController struct {
	uc *application.ApplicationUseCase
}

type ApplicationDto struct {
	ID          uint64 `json:"application_id"`
	OrderID     uint64 `json:"order_id"`
	SendingID   uint64 `json:"sending_id"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Info        string `json:"info,omitempty"`
}

func NewApplicationController(uc *application.ApplicationUseCase) ApplicationController {
	return ApplicationController{
		uc: uc,
	}
}

func applicationToDto(a *entity.Application) ApplicationDto {
	return ApplicationDto{
		ID:          a.ID,
		OrderID:     a.OrderID,
		SendingID:   a.SendingID,
		Status:      string(a.Status),
		StatusLabel: a.Status.Label(),
		Info:        a.Info,
	}
}

// ==========================================
// ========== POST /applications ============
// ==========================================
type ApplicationCreateRequest struct {
	OrderID   uint64 `json:"order_id" validate:"required"`
	SendingID uint64 `json:"sending_id" validate:"required"`
	Status    string `json:"status"`
	Info      string `json:"info"`
}

func (c *ApplicationController) Create(ctx echo.Context) error {

	var req ApplicationCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	saved, err := c.uc.CreateApplication(ctx.Request().Context(), application.ApplicationToCreateDTO{
		OrderID:   req.OrderID,
		SendingID: req.SendingID,
		Status:    req.Status,
		Info:      req.Info,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(200, applicationToDto(saved))
}

// ==========================================

// =========================================================
// ========== GET /applications/:application_id ============
// =========================================================

type ApplicationDetailResponse struct {
	ApplicationDto
	Price   float64    `json:"price"`
	Order   OrderDto   `json:"order"`
	Sending SendingDto `json:"sending"`
}

func (c *ApplicationController) GetById(ctx echo.Context) error {

	applicationIdParam := ctx.Param("application_id")

	applicationId, err := strconv.Atoi(applicationIdParam)
	if err != nil || applicationId <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, ":application_id must be valid int64")
	}

	detail, err := c.uc.GetDetailById(ctx.Request().Context(), uint64(applicationId))
	if err != nil {
		return err
	}

	return ctx.JSON(200, ApplicationDetailResponse{
		ApplicationDto: applicationToDto(detail.Application),
		Price:          detail.Price,
		Order:          orderToDto(detail.Order),
		Sending:        sendingToDto(detail.Sending),
	})
}

// =========================================================

// ==================================================================
// ========== PATCH /applications/:application_id/status ============
// ==================================================================

type ApplicationStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
	Info   string `json:"info"`
}

func (c *ApplicationController) UpdateStatus(ctx echo.Context) error {

	applicationIdParam := ctx.Param("application_id")

	applicationId, err := strconv.Atoi(applicationIdParam)
	if err != nil || applicationId <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, ":application_id must be valid int64")
	}

	var req ApplicationStatusUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	saved, err := c.uc.UpdateStatus(ctx.Request().Context(), uint64(applicationId), application.ApplicationStatusUpdateDTO{
		Status: req.Status,
		Info:   req.Info,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(200, applicationToDto(saved))
}

// ==================================================================
