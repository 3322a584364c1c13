package controllers

import (
	"errors"
	"net/http"

	"github.com/kittyhub/kittyhub.go/ledger"
	"github.com/kittyhub/kittyhub.go/lib/responses"
	"github.com/kittyhub/kittyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// KittyController : Kitty registry controller struct
type KittyController struct {
	svc *service.KittyhubService
}

func NewKittyController(svc *service.KittyhubService) *KittyController {
	return &KittyController{svc: svc}
}

type Kitty struct {
	ID     int64  `json:"id"`
	DNA    string `json:"dna"`
	Gender string `json:"gender"`
}

type GetKittiesResponseBody struct {
	Kitties []Kitty `json:"kitties"`
}

type BreedKittiesRequestBody struct {
	FirstID  int64 `json:"first_id" validate:"required"`
	SecondID int64 `json:"second_id" validate:"required"`
}

type TransferKittyRequestBody struct {
	KittyID    int64 `json:"kitty_id" validate:"required"`
	ReceiverID int64 `json:"receiver_id" validate:"required"`
}

func (controller *KittyController) kittyResponse(k *ledger.Kitty) Kitty {
	return Kitty{
		ID:     k.ID,
		DNA:    k.DNA.String(),
		Gender: string(controller.svc.GenderRule.Gender(k.DNA)),
	}
}

// GetKitties : Retrieve the caller's kitties
func (controller *KittyController) GetKitties(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	kitties, err := controller.svc.KittiesFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	response := make([]Kitty, len(kitties))
	for i, k := range kitties {
		response[i] = controller.kittyResponse(&k)
	}
	return c.JSON(http.StatusOK, &GetKittiesResponseBody{Kitties: response})
}

// GetKitty : Retrieve a single kitty owned by the caller
func (controller *KittyController) GetKitty(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	kittyId, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	k, err := controller.svc.FindKitty(c.Request().Context(), userId, kittyId)
	if err != nil {
		if errors.Is(err, ledger.ErrKittenNotFound) {
			return c.JSON(http.StatusNotFound, responses.KittenNotFoundError)
		}
		return err
	}
	response := controller.kittyResponse(k)
	return c.JSON(http.StatusOK, &response)
}

// CreateKitty : Mint a kitty with fresh DNA for the caller
func (controller *KittyController) CreateKitty(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	k, err := controller.svc.CreateKitty(c.Request().Context(), userId)
	if err != nil {
		c.Logger().Errorf("Failed to create kitty: user_id:%v error: %v", userId, err)
		if errors.Is(err, ledger.ErrIDOverflow) {
			return c.JSON(http.StatusInternalServerError, responses.IdOverflowError)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	response := controller.kittyResponse(k)
	return c.JSON(http.StatusOK, &response)
}

// BreedKitties : Breed two of the caller's kitties into a new one
func (controller *KittyController) BreedKitties(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	reqBody := BreedKittiesRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load breed request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid breed request body user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	k, err := controller.svc.BreedKitties(c.Request().Context(), userId, reqBody.FirstID, reqBody.SecondID)
	if err != nil {
		c.Logger().Errorf("Failed to breed kitties: user_id:%v first:%v second:%v error: %v", userId, reqBody.FirstID, reqBody.SecondID, err)
		switch {
		case errors.Is(err, ledger.ErrKittenNotFound):
			return c.JSON(http.StatusNotFound, responses.KittenNotFoundError)
		case errors.Is(err, service.ErrSameGenderBreed):
			return c.JSON(http.StatusBadRequest, responses.SameGenderBreedError)
		case errors.Is(err, ledger.ErrIDOverflow):
			return c.JSON(http.StatusInternalServerError, responses.IdOverflowError)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	response := controller.kittyResponse(k)
	return c.JSON(http.StatusOK, &response)
}

// TransferKitty : Move one of the caller's kitties to another user
func (controller *KittyController) TransferKitty(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	reqBody := TransferKittyRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load transfer request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid transfer request body user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err := controller.svc.TransferKitty(c.Request().Context(), userId, reqBody.ReceiverID, reqBody.KittyID)
	if err != nil {
		c.Logger().Errorf("Failed to transfer kitty: user_id:%v kitty_id:%v error: %v", userId, reqBody.KittyID, err)
		if errors.Is(err, ledger.ErrKittenNotFound) {
			return c.JSON(http.StatusNotFound, responses.KittenNotFoundError)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
