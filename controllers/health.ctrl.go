package controllers

import (
	"net/http"

	"github.com/kittyhub/kittyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

type HealthController struct {
	svc *service.KittyhubService
}

func NewHealthController(svc *service.KittyhubService) *HealthController {
	return &HealthController{svc: svc}
}

type HealthResponse struct {
	Result string `json:"result"`
}

func (controller *HealthController) Health(c echo.Context) error {
	if controller.svc.DB != nil {
		if err := controller.svc.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, &HealthResponse{Result: "DB unreachable"})
		}
	}
	return c.JSON(http.StatusOK, &HealthResponse{
		Result: "OK",
	})
}
