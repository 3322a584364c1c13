package controllers

import (
	"net/http"

	"github.com/kittyhub/kittyhub.go/lib/responses"
	"github.com/kittyhub/kittyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// BalanceController : BalanceController struct
type BalanceController struct {
	svc *service.KittyhubService
}

func NewBalanceController(svc *service.KittyhubService) *BalanceController {
	return &BalanceController{svc: svc}
}

type BalanceResponse struct {
	Balance int64  `json:"balance"`
	Unit    string `json:"unit"`
}

// Balance : Current user's spendable balance
func (controller *BalanceController) Balance(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	balance, err := controller.svc.CurrentUserBalance(c.Request().Context(), userId)
	if err != nil {
		c.Logger().Errorf("Error fetching balance for user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	return c.JSON(http.StatusOK, &BalanceResponse{
		Balance: balance,
		Unit:    "token",
	})
}
