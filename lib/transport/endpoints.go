package transport

import (
	"github.com/kittyhub/kittyhub.go/controllers"
	"github.com/kittyhub/kittyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.KittyhubService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.GET("/health", controllers.NewHealthController(svc).Health)
	e.POST("/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware)
	if svc.Config.AllowAccountCreation {
		e.POST("/users", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}

	kittyCtrl := controllers.NewKittyController(svc)
	marketCtrl := controllers.NewMarketController(svc)

	secured.GET("/balance", controllers.NewBalanceController(svc).Balance)
	secured.GET("/events", controllers.NewEventsController(svc).Events)

	secured.GET("/kitties", kittyCtrl.GetKitties)
	secured.GET("/kitties/:id", kittyCtrl.GetKitty)
	securedWithStrictRateLimit.POST("/kitties", kittyCtrl.CreateKitty)
	securedWithStrictRateLimit.POST("/kitties/breed", kittyCtrl.BreedKitties)
	securedWithStrictRateLimit.POST("/kitties/transfer", kittyCtrl.TransferKitty)
	securedWithStrictRateLimit.PUT("/kitties/:id/price", marketCtrl.SetPrice)
	securedWithStrictRateLimit.POST("/kitties/buy", marketCtrl.Buy)
}
