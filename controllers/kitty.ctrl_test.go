package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kittyhub/kittyhub.go/bank"
	"github.com/kittyhub/kittyhub.go/kitty"
	"github.com/kittyhub/kittyhub.go/ledger"
	"github.com/kittyhub/kittyhub.go/lib"
	"github.com/kittyhub/kittyhub.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/ziflex/lecho/v3"
)

func newTestContext(t *testing.T, method, target string, body string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("UserID", userID)
	return c, rec
}

func newControllerTestService(t *testing.T) *service.KittyhubService {
	return &service.KittyhubService{
		Config:     &service.Config{},
		Logger:     lecho.New(os.Stdout),
		Ledger:     ledger.NewMemory(),
		Bank:       bank.NewMemory(0),
		Seeds:      kitty.FixedSeedSource{Value: []byte("controller test seed")},
		GenderRule: kitty.GenderRuleParity,
	}
}

func TestCreateAndGetKitties(t *testing.T) {
	svc := newControllerTestService(t)
	ctrl := NewKittyController(svc)

	c, rec := newTestContext(t, http.MethodPost, "/kitties", "", 1)
	assert.NoError(t, ctrl.CreateKitty(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var created Kitty
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Len(t, created.DNA, 32)
	assert.Contains(t, []string{"male", "female"}, created.Gender)

	c, rec = newTestContext(t, http.MethodGet, "/kitties", "", 1)
	assert.NoError(t, ctrl.GetKitties(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var list GetKittiesResponseBody
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Kitties, 1)
	assert.Equal(t, created.ID, list.Kitties[0].ID)

	// another user sees an empty registry
	c, rec = newTestContext(t, http.MethodGet, "/kitties", "", 2)
	assert.NoError(t, ctrl.GetKitties(c))
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Kitties, 0)
}

func TestBreedKittiesErrors(t *testing.T) {
	svc := newControllerTestService(t)
	ctrl := NewKittyController(svc)
	ctx := context.Background()

	first, err := svc.Ledger.Mint(ctx, 1, kitty.DNA{0x02})
	assert.NoError(t, err)
	second, err := svc.Ledger.Mint(ctx, 1, kitty.DNA{0x04})
	assert.NoError(t, err)

	// same gender pair
	c, rec := newTestContext(t, http.MethodPost, "/kitties/breed",
		fmt.Sprintf(`{"first_id": %d, "second_id": %d}`, first, second), 1)
	assert.NoError(t, ctrl.BreedKitties(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "gender")

	// missing parent
	c, rec = newTestContext(t, http.MethodPost, "/kitties/breed",
		fmt.Sprintf(`{"first_id": %d, "second_id": 99}`, first), 1)
	assert.NoError(t, ctrl.BreedKitties(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransferKittyNotFound(t *testing.T) {
	svc := newControllerTestService(t)
	ctrl := NewKittyController(svc)

	c, rec := newTestContext(t, http.MethodPost, "/kitties/transfer",
		`{"kitty_id": 7, "receiver_id": 2}`, 1)
	assert.NoError(t, ctrl.TransferKitty(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetPriceRejectsNonPositivePrice(t *testing.T) {
	svc := newControllerTestService(t)
	marketCtrl := NewMarketController(svc)
	ctx := context.Background()

	id, err := svc.Ledger.Mint(ctx, 1, kitty.DNA{0x02})
	assert.NoError(t, err)

	setPrice := func(body string) *httptest.ResponseRecorder {
		c, rec := newTestContext(t, http.MethodPut, "/kitties/1/price", body, 1)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprintf("%d", id))
		assert.NoError(t, marketCtrl.SetPrice(c))
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, setPrice(`{"price": 0}`).Code)
	assert.Equal(t, http.StatusBadRequest, setPrice(`{"price": -5}`).Code)

	// no listing was created by the rejected requests
	listed, err := svc.Ledger.Price(ctx, id)
	assert.NoError(t, err)
	assert.Nil(t, listed)

	assert.Equal(t, http.StatusNoContent, setPrice(`{"price": 100}`).Code)
	assert.Equal(t, http.StatusNoContent, setPrice(`{"price": null}`).Code)
}

func TestBuyErrorMapping(t *testing.T) {
	svc := newControllerTestService(t)
	marketCtrl := NewMarketController(svc)
	ctx := context.Background()

	id, err := svc.Ledger.Mint(ctx, 1, kitty.DNA{0x02})
	assert.NoError(t, err)
	buyBody := func(maxPrice int64) string {
		return fmt.Sprintf(`{"kitty_id": %d, "seller_id": 1, "max_price": %d}`, id, maxPrice)
	}

	// unlisted kitty
	c, rec := newTestContext(t, http.MethodPost, "/kitties/buy", buyBody(100), 2)
	assert.NoError(t, marketCtrl.Buy(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not for sale")

	price := int64(100)
	assert.NoError(t, svc.Ledger.SetPrice(ctx, id, &price))

	// bid below asking price
	c, rec = newTestContext(t, http.MethodPost, "/kitties/buy", buyBody(50), 2)
	assert.NoError(t, marketCtrl.Buy(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "asking price")

	// buying your own kitty
	c, rec = newTestContext(t, http.MethodPost, "/kitties/buy", buyBody(100), 1)
	assert.NoError(t, marketCtrl.Buy(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unfunded buyer
	c, rec = newTestContext(t, http.MethodPost, "/kitties/buy", buyBody(100), 2)
	assert.NoError(t, marketCtrl.Buy(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "balance")

	// funded buyer succeeds
	assert.NoError(t, svc.Bank.Deposit(ctx, 2, 150))
	c, rec = newTestContext(t, http.MethodPost, "/kitties/buy", buyBody(100), 2)
	assert.NoError(t, marketCtrl.Buy(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp BuyResponseBody
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(100), resp.Price)
}
