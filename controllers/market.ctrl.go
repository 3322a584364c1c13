package controllers

import (
	"errors"
	"net/http"

	"github.com/kittyhub/kittyhub.go/bank"
	"github.com/kittyhub/kittyhub.go/ledger"
	"github.com/kittyhub/kittyhub.go/lib/responses"
	"github.com/kittyhub/kittyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// MarketController : Marketplace controller struct
type MarketController struct {
	svc *service.KittyhubService
}

func NewMarketController(svc *service.KittyhubService) *MarketController {
	return &MarketController{svc: svc}
}

type SetPriceRequestBody struct {
	// null clears the listing
	Price *int64 `json:"price"`
}

type BuyRequestBody struct {
	KittyID  int64 `json:"kitty_id" validate:"required"`
	SellerID int64 `json:"seller_id" validate:"required"`
	MaxPrice int64 `json:"max_price" validate:"required,gt=0"`
}

type BuyResponseBody struct {
	KittyID int64 `json:"kitty_id"`
	Price   int64 `json:"price"`
}

// SetPrice : List one of the caller's kitties for sale, or delist it
func (controller *MarketController) SetPrice(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	kittyId, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	reqBody := SetPriceRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load set price request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	// the omitempty validators skip a dereferenced zero, so the asking
	// price is checked by hand
	if reqBody.Price != nil && *reqBody.Price <= 0 {
		c.Logger().Errorf("Invalid set price request body user_id:%v price:%v", userId, *reqBody.Price)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.SetPrice(c.Request().Context(), userId, kittyId, reqBody.Price)
	if err != nil {
		c.Logger().Errorf("Failed to set price: user_id:%v kitty_id:%v error: %v", userId, kittyId, err)
		if errors.Is(err, ledger.ErrKittenNotFound) {
			return c.JSON(http.StatusNotFound, responses.KittenNotFoundError)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

// Buy : Purchase a listed kitty from its owner
func (controller *MarketController) Buy(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	reqBody := BuyRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load buy request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid buy request body user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	price, err := controller.svc.Buy(c.Request().Context(), userId, reqBody.SellerID, reqBody.KittyID, reqBody.MaxPrice)
	if err != nil {
		c.Logger().Errorf("Failed to buy kitty: user_id:%v kitty_id:%v seller:%v error: %v", userId, reqBody.KittyID, reqBody.SellerID, err)
		switch {
		case errors.Is(err, ledger.ErrKittenNotFound):
			return c.JSON(http.StatusNotFound, responses.KittenNotFoundError)
		case errors.Is(err, service.ErrNotForSale):
			return c.JSON(http.StatusBadRequest, responses.NotForSaleError)
		case errors.Is(err, service.ErrPriceTooLow):
			return c.JSON(http.StatusBadRequest, responses.PriceTooLowError)
		case errors.Is(err, service.ErrBuyFromSelf):
			return c.JSON(http.StatusBadRequest, responses.BuyFromSelfError)
		case errors.Is(err, bank.ErrInsufficientFunds):
			return c.JSON(http.StatusBadRequest, responses.NotEnoughBalanceError)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, &BuyResponseBody{
		KittyID: reqBody.KittyID,
		Price:   price,
	})
}
