package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var LoginTakenError = ErrorResponse{
	Error:          true,
	Code:           9,
	Message:        "login already exists",
	HttpStatusCode: 400,
}

var KittenNotFoundError = ErrorResponse{
	Error:          true,
	Code:           20,
	Message:        "kitten not found",
	HttpStatusCode: 404,
}

var SameGenderBreedError = ErrorResponse{
	Error:          true,
	Code:           21,
	Message:        "breeding requires two kitties of different gender",
	HttpStatusCode: 400,
}

var IdOverflowError = ErrorResponse{
	Error:          true,
	Code:           22,
	Message:        "kitty id space exhausted",
	HttpStatusCode: 500,
}

var NotForSaleError = ErrorResponse{
	Error:          true,
	Code:           23,
	Message:        "kitty is not for sale",
	HttpStatusCode: 400,
}

var PriceTooLowError = ErrorResponse{
	Error:          true,
	Code:           24,
	Message:        "max price is below the asking price",
	HttpStatusCode: 400,
}

var BuyFromSelfError = ErrorResponse{
	Error:          true,
	Code:           25,
	Message:        "cannot buy your own kitty",
	HttpStatusCode: 400,
}

var NotEnoughBalanceError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "not enough balance to complete the purchase",
	HttpStatusCode: 400,
}

var AccountCreationDisabledError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "account creation is disabled",
	HttpStatusCode: 401,
}

// auth failures are user error, not something to page on
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	m, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	return m["code"] != BadAuthError.Code
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
