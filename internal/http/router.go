package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cargodelivery.ru/cargo/internal/http/controller"
)

type Router struct {
	Controllers Controllers
}

type Controllers struct {
	OrderController       controller.OrderController
	SendingController     controller.SendingController
	ApplicationController controller.ApplicationController
}

func NewRouter(cs Controllers) *Router {
	return &Router{
		Controllers: cs,
	}
}

func (r Router) SetupRoutes(e *echo.Echo) {

	e.GET("/ping", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "pong")
	})

	// order methods
	e.GET("/orders", r.Controllers.OrderController.GetAll, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/orders", r.Controllers.OrderController.Create, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.GET("/orders/:order_id", r.Controllers.OrderController.GetById, middleware.RateLimiterWithConfig(RatelimiterConfig()))

	// sending methods
	e.GET("/sendings", r.Controllers.SendingController.GetAll, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/sendings", r.Controllers.SendingController.Create, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.GET("/sendings/:sending_id", r.Controllers.SendingController.GetById, middleware.RateLimiterWithConfig(RatelimiterConfig()))

	// application methods
	e.POST("/applications", r.Controllers.ApplicationController.Create, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.GET("/applications/:application_id", r.Controllers.ApplicationController.GetById, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.PATCH("/applications/:application_id/status", r.Controllers.ApplicationController.UpdateStatus, middleware.RateLimiterWithConfig(RatelimiterConfig()))
}

func RatelimiterConfig() middleware.RateLimiterConfig {
	return middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: 10, Burst: 0, ExpiresIn: time.Second},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, nil)
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, nil)
		},
	}
}
