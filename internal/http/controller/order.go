package controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/usecase/order"
)

type OrderController struct {
	uc *order.OrderUseCase
}

type OrderDto struct {
	ID                   uint64 `json:"order_id"`
	UserID               uint64 `json:"user_id"`
	DepartureCityID      uint64 `json:"departure_city_id"`
	ArrivalCityID        uint64 `json:"arrival_city_id"`
	SenderFullname       string `json:"sender_fullname"`
	RecipientFullname    string `json:"recipient_fullname"`
	DirectTake           bool   `json:"direct_take"`
	DirectTakeAddress    string `json:"direct_take_address,omitempty"`
	DirectDeliver        bool   `json:"direct_deliver"`
	DirectDeliverAddress string `json:"direct_deliver_address,omitempty"`
	DepartureDate        string `json:"departure_date"`
	CargoType            string `json:"cargo_type"`
	CargoLen             string `json:"cargo_len"`
	CargoWidth           string `json:"cargo_width"`
	CargoDepth           string `json:"cargo_depth"`
	CargoWeight          string `json:"cargo_weight"`
	CargoVolume          string `json:"cargo_volume"`
	InsurancePrice       string `json:"insurance_price"`
	AdditionalInfo       string `json:"additional_info,omitempty"`
}

func NewOrderController(uc *order.OrderUseCase) OrderController {
	return OrderController{
		uc: uc,
	}
}

func orderToDto(o *entity.Order) OrderDto {
	return OrderDto{
		ID:                   o.ID,
		UserID:               o.UserID,
		DepartureCityID:      o.DepartureCityID,
		ArrivalCityID:        o.ArrivalCityID,
		SenderFullname:       o.SenderFullname,
		RecipientFullname:    o.RecipientFullname,
		DirectTake:           o.DirectTake,
		DirectTakeAddress:    o.DirectTakeAddress,
		DirectDeliver:        o.DirectDeliver,
		DirectDeliverAddress: o.DirectDeliverAddress,
		DepartureDate:        o.DepartureDate.Format("2006-01-02"),
		CargoType:            string(o.CargoType),
		CargoLen:             o.CargoLen.String(),
		CargoWidth:           o.CargoWidth.String(),
		CargoDepth:           o.CargoDepth.String(),
		CargoWeight:          o.CargoWeight.String(),
		CargoVolume:          o.CargoVolume().String(),
		InsurancePrice:       o.InsurancePrice.String(),
		AdditionalInfo:       o.AdditionalInfo,
	}
}

// ===================================
// ========== GET /orders ============
// ===================================
func (c *OrderController) GetAll(ctx echo.Context) error {

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

	orders, err := c.uc.PaginatedGetAll(ctx.Request().Context(), int32(offset), int32(limit))
	if err != nil {
		return err
	}

	res := []OrderDto{}
	for i := range *orders {
		res = append(res, orderToDto(&(*orders)[i]))
	}

	return ctx.JSON(200, res)
}

// ===================================

// ====================================
// ========== POST /orders ============
// ====================================
type OrderCreateRequest struct {
	UserID               uint64 `json:"user_id" validate:"required"`
	DepartureCityID      uint64 `json:"departure_city_id" validate:"required"`
	ArrivalCityID        uint64 `json:"arrival_city_id" validate:"required"`
	SenderFullname       string `json:"sender_fullname" validate:"required"`
	RecipientFullname    string `json:"recipient_fullname" validate:"required"`
	DirectTake           bool   `json:"direct_take"`
	DirectTakeAddress    string `json:"direct_take_address"`
	DirectDeliver        bool   `json:"direct_deliver"`
	DirectDeliverAddress string `json:"direct_deliver_address"`
	DepartureDate        string `json:"departure_date" validate:"required"`
	CargoType            string `json:"cargo_type" validate:"required"`
	CargoLen             string `json:"cargo_len" validate:"required"`
	CargoWidth           string `json:"cargo_width" validate:"required"`
	CargoDepth           string `json:"cargo_depth" validate:"required"`
	CargoWeight          string `json:"cargo_weight" validate:"required"`
	InsurancePrice       string `json:"insurance_price" validate:"required"`
	AdditionalInfo       string `json:"additional_info"`
}

func (c *OrderController) Create(ctx echo.Context) error {

	var req OrderCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	saved, err := c.uc.CreateOrder(ctx.Request().Context(), order.OrderToCreateDTO{
		UserID:               req.UserID,
		DepartureCityID:      req.DepartureCityID,
		ArrivalCityID:        req.ArrivalCityID,
		SenderFullname:       req.SenderFullname,
		RecipientFullname:    req.RecipientFullname,
		DirectTake:           req.DirectTake,
		DirectTakeAddress:    req.DirectTakeAddress,
		DirectDeliver:        req.DirectDeliver,
		DirectDeliverAddress: req.DirectDeliverAddress,
		DepartureDate:        req.DepartureDate,
		CargoType:            req.CargoType,
		CargoLen:             req.CargoLen,
		CargoWidth:           req.CargoWidth,
		CargoDepth:           req.CargoDepth,
		CargoWeight:          req.CargoWeight,
		InsurancePrice:       req.InsurancePrice,
		AdditionalInfo:       req.AdditionalInfo,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(200, orderToDto(saved))
}

// ====================================

// =============================================
// ========== GET /orders/:order_id ============
// =============================================

func (c *OrderController) GetById(ctx echo.Context) error {

	orderIdParam := ctx.Param("order_id")

	orderId, err := strconv.Atoi(orderIdParam)
	if err != nil || orderId <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, ":order_id must be valid int64")
	}

	order, err := c.uc.GetById(ctx.Request().Context(), uint64(orderId))
	if err != nil {
		return err
	}

	return ctx.JSON(200, orderToDto(order))
}

// =============================================
