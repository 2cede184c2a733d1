package controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/usecase/sending"
)

type SendingController struct {
	uc *sending.SendingUseCase
}

type SendingDto struct {
	ID                   uint64 `json:"sending_id"`
	CompanyID            uint64 `json:"company_id"`
	DepartureWarehouseID uint64 `json:"departure_warehouse_id"`
	DepartureDate        string `json:"departure_date"`
	ArrivalWarehouseID   uint64 `json:"arrival_warehouse_id"`
	ArrivalDate          string `json:"arrival_date"`
	TotalVolume          string `json:"total_volume"`
	TransportID          uint64 `json:"transport_id"`
	PriceForM3           string `json:"price_for_m3"`
	Days                 string `json:"days"`
}

type TransitPointDto struct {
	ID                 uint64 `json:"transit_point_id"`
	TransportID        uint64 `json:"transport_id"`
	ArrivalDate        string `json:"arrival_date"`
	ArrivalWarehouseID uint64 `json:"arrival_warehouse_id"`
}

func NewSendingController(uc *sending.SendingUseCase) SendingController {
	return SendingController{
		uc: uc,
	}
}

func sendingToDto(s *entity.Sending) SendingDto {
	return SendingDto{
		ID:                   s.ID,
		CompanyID:            s.CompanyID,
		DepartureWarehouseID: s.DepartureWarehouseID,
		DepartureDate:        s.DepartureDate.Format("2006-01-02"),
		ArrivalWarehouseID:   s.ArrivalWarehouseID,
		ArrivalDate:          s.ArrivalDate.Format("2006-01-02"),
		TotalVolume:          s.TotalVolume.String(),
		TransportID:          s.TransportID,
		PriceForM3:           s.PriceForM3.String(),
		Days:                 s.DaysLabel(),
	}
}

// =====================================
// ========== GET /sendings ============
// =====================================
func (c *SendingController) GetAll(ctx echo.Context) error {

	var limit int = 1
	var offset int = 0
	var err error

	limitParam := ctx.QueryParam("limit")
	if limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 0 || limit > math.MaxInt32 {
			return echo.NewHTTPError(400, "Invalid 'limit' param")
		}
	}

	offsetParam := ctx.QueryParam("offset")
	if offsetParam != "" {
		offset, err = strconv.Atoi(offsetParam)
		if err != nil || offset < 0 || offset > math.MaxInt32 {
			return echo.NewHTTPError(400, "Invalid 'offset' param")
		}
	}

	sendings, err := c.uc.PaginatedGetAll(ctx.Request().Context(), int32(offset), int32(limit))
	if err != nil {
		return err
	}

	res := []SendingDto{}
	for i := range *sendings {
		res = append(res, sendingToDto(&(*sendings)[i]))
	}

	return ctx.JSON(200, res)
}

// =====================================

// ======================================
// ========== POST /sendings ============
// ======================================
type SendingCreateRequest struct {
	CompanyID            uint64                      `json:"company_id" validate:"required"`
	DepartureWarehouseID uint64                      `json:"departure_warehouse_id" validate:"required"`
	DepartureDate        string                      `json:"departure_date" validate:"required"`
	ArrivalWarehouseID   uint64                      `json:"arrival_warehouse_id" validate:"required"`
	ArrivalDate          string                      `json:"arrival_date" validate:"required"`
	TotalVolume          string                      `json:"total_volume" validate:"required"`
	TransportID          uint64                      `json:"transport_id" validate:"required"`
	PriceForM3           string                      `json:"price_for_m3" validate:"required"`
	TransitPoints        []TransitPointCreateRequest `json:"transit_points" validate:"dive"`
}

type TransitPointCreateRequest struct {
	TransportID        uint64 `json:"transport_id" validate:"required"`
	ArrivalDate        string `json:"arrival_date" validate:"required"`
	ArrivalWarehouseID uint64 `json:"arrival_warehouse_id" validate:"required"`
}

func (c *SendingController) Create(ctx echo.Context) error {

	var req SendingCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	toCreate := sending.SendingToCreateDTO{
		CompanyID:            req.CompanyID,
		DepartureWarehouseID: req.DepartureWarehouseID,
		DepartureDate:        req.DepartureDate,
		ArrivalWarehouseID:   req.ArrivalWarehouseID,
		ArrivalDate:          req.ArrivalDate,
		TotalVolume:          req.TotalVolume,
		TransportID:          req.TransportID,
		PriceForM3:           req.PriceForM3,
	}
	for _, tp := range req.TransitPoints {
		toCreate.TransitPoints = append(toCreate.TransitPoints, sending.TransitPointToCreateDTO{
			TransportID:        tp.TransportID,
			ArrivalDate:        tp.ArrivalDate,
			ArrivalWarehouseID: tp.ArrivalWarehouseID,
		})
	}

	saved, err := c.uc.CreateSending(ctx.Request().Context(), toCreate)
	if err != nil {
		return err
	}

	return ctx.JSON(200, sendingToDto(saved))
}

// ======================================

// =================================================
// ========== GET /sendings/:sending_id ============
// =================================================

type SendingDetailResponse struct {
	SendingDto
	FreeVolume    string            `json:"free_volume"`
	Orders        []OrderDto        `json:"orders"`
	TransitPoints []TransitPointDto `json:"transit_points"`
}

func (c *SendingController) GetById(ctx echo.Context) error {

	sendingIdParam := ctx.Param("sending_id")

	sendingId, err := strconv.Atoi(sendingIdParam)
	if err != nil || sendingId <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, ":sending_id must be valid int64")
	}

	detail, err := c.uc.GetDetailById(ctx.Request().Context(), uint64(sendingId))
	if err != nil {
		return err
	}

	res := SendingDetailResponse{
		SendingDto: sendingToDto(detail.Sending),
		FreeVolume: detail.Sending.FreeVolume(detail.Orders).String(),
	}

	res.Orders = []OrderDto{}
	for i := range detail.Orders {
		res.Orders = append(res.Orders, orderToDto(&detail.Orders[i]))
	}

	res.TransitPoints = []TransitPointDto{}
	for _, tp := range detail.TransitPoints {
		res.TransitPoints = append(res.TransitPoints, TransitPointDto{
			ID:                 tp.ID,
			TransportID:        tp.TransportID,
			ArrivalDate:        tp.ArrivalDate.Format("2006-01-02"),
			ArrivalWarehouseID: tp.ArrivalWarehouseID,
		})
	}

	return ctx.JSON(200, res)
}

// =================================================
