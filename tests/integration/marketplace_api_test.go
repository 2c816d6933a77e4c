package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	catalogapp "github.com/streetmart/backend/internal/application/catalog"
	identityapp "github.com/streetmart/backend/internal/application/identity"
	tradeapp "github.com/streetmart/backend/internal/application/trade"
	"github.com/streetmart/backend/internal/infrastructure/auth"
	"github.com/streetmart/backend/internal/infrastructure/config"
	"github.com/streetmart/backend/internal/infrastructure/event"
	"github.com/streetmart/backend/internal/infrastructure/persistence"
	"github.com/streetmart/backend/internal/infrastructure/printing"
	"github.com/streetmart/backend/internal/infrastructure/seed"
	"github.com/streetmart/backend/internal/infrastructure/storage"
	"github.com/streetmart/backend/internal/interfaces/http/handler"
	"github.com/streetmart/backend/internal/interfaces/http/router"
)

// marketplaceServer serves the full API over the test database
type marketplaceServer struct {
	t      *testing.T
	engine *router.Engine
}

func newMarketplaceServer(t *testing.T, tdb *TestDB) *marketplaceServer {
	t.Helper()

	log := zap.NewNop()
	readDB, err := tdb.Sqlx()
	require.NoError(t, err)

	userRepo := persistence.NewGormUserRepository(tdb.DB)
	listingRepo := persistence.NewGormListingRepository(tdb.DB)
	views := persistence.NewSqlxOrderViewReader(readDB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-secret-with-32-chars!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "streetmart-integration",
		MaxRefreshCount:        3,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(tradeapp.NewOrderActivityHandler(log))

	orders := tradeapp.NewOrderService(persistence.NewGormOrderRepository(tdb.DB), listingRepo,
		tradeapp.OrderServiceConfig{PricePolicy: config.PricePolicyCatalog}, log)
	orders.SetEventPublisher(bus)

	engine := router.NewEngine(router.EngineConfig{
		Logger:         log,
		HTTP:           config.HTTPConfig{MaxBodySize: 1 << 20},
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	}, router.Handlers{
		Auth: handler.NewAuthHandler(identityapp.NewAuthService(userRepo, jwtService, blacklist, bus, log)),
		Catalog: handler.NewCatalogHandler(catalogapp.NewCatalogService(
			persistence.NewGormProductRepository(tdb.DB), listingRepo, userRepo,
			storage.NewStaticImageStorage("/static/images"), log)),
		Order: handler.NewOrderHandler(orders,
			tradeapp.NewSlipService(views, printing.NewSlipBuilder(language.English), nil, log)),
		Dashboard: handler.NewDashboardHandler(tradeapp.NewDashboardService(views, log)),
		System:    handler.NewSystemHandler(tdb.Database, "StreetMart API", "test"),
	})
	t.Cleanup(engine.Close)

	return &marketplaceServer{t: t, engine: engine}
}

func (s *marketplaceServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *marketplaceServer) login(username string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"`+username+`","password":"`+seed.DemoPassword+`"}`)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data handler.LoginResponse `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Data.Token.AccessToken)
	return resp.Data.Token.AccessToken
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.True(t, resp.Success, w.Body.String())
	return resp.Data
}

func TestMarketplaceAPI_OrderFlow(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.Seed()
	srv := newMarketplaceServer(t, tdb)

	vendorToken := srv.login("vendor1")
	supplierToken := srv.login("supplier1")

	// the vendor browses supplier1's listings to build a cart
	supplier := market{tdb: tdb, t: t}.actor("supplier1")
	w := srv.do(http.MethodGet, "/api/v1/catalog/listings?supplier_id="+supplier.UserID.String(), vendorToken, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	listings := decodeData[[]catalogapp.ListingResponse](t, w)
	require.Len(t, listings, 6)

	prices := map[string]catalogapp.ListingResponse{}
	for _, l := range listings {
		prices[l.ProductName] = l
	}
	potato, onion := prices["Potato"], prices["Onion"]

	cart := `{"items":[` +
		`{"product_id":"` + potato.ProductID.String() + `","supplier_id":"` + supplier.UserID.String() + `","quantity":"2","price_per_unit":"` + potato.PricePerUnit.String() + `"},` +
		`{"product_id":"` + onion.ProductID.String() + `","supplier_id":"` + supplier.UserID.String() + `","quantity":"3","price_per_unit":"` + onion.PricePerUnit.String() + `"}]}`

	w = srv.do(http.MethodPost, "/place_order", supplierToken, cart)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized or not a vendor")

	w = srv.do(http.MethodPost, "/place_order", vendorToken, cart)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var placed handler.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.True(t, placed.Success)
	assert.Equal(t, "Order placed successfully!", placed.Message)
	require.NotNil(t, placed.OrderID)
	orderID := placed.OrderID.String()

	w = srv.do(http.MethodGet, "/api/v1/dashboard/supplier/orders", supplierToken, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	supplierOrders := decodeData[[]tradeapp.SupplierOrderResponse](t, w)
	require.Len(t, supplierOrders, 1)
	assert.Equal(t, "Rohan Singh", supplierOrders[0].VendorName)
	assert.Equal(t, "Potato (2 kg) ||| Onion (3 kg)", supplierOrders[0].ItemsSummary)
	assert.Equal(t, "140.00", supplierOrders[0].TotalAmount.StringFixed(2))

	w = srv.do(http.MethodGet, "/api/v1/dashboard/supplier/orders", vendorToken, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Please log in as a supplier to access this page.")

	w = srv.do(http.MethodPatch, "/api/v1/orders/"+orderID+"/status", supplierToken, `{"status":"Accepted"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Accepted", decodeData[tradeapp.OrderStatusResponse](t, w).Status)

	w = srv.do(http.MethodPatch, "/api/v1/orders/"+orderID+"/status", vendorToken, `{"status":"Cancelled"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	w = srv.do(http.MethodGet, "/api/v1/dashboard/vendor/orders", vendorToken, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	vendorOrders := decodeData[[]tradeapp.VendorOrderResponse](t, w)
	require.Len(t, vendorOrders, 1)
	assert.Equal(t, "Accepted", vendorOrders[0].Status)
	assert.Equal(t, "Fresh Veggies Co.", vendorOrders[0].SupplierBusinessName)
	assert.Equal(t, "Potato (2 kg @Rs.25.00) ||| Onion (3 kg @Rs.30.00)", vendorOrders[0].ItemsSummary)

	w = srv.do(http.MethodGet, "/api/v1/orders/"+orderID+"/slip", vendorToken, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Fresh Veggies Co.")
	assert.Contains(t, w.Body.String(), "Potato")

	w = srv.do(http.MethodGet, "/api/v1/orders/"+orderID+"/slip", srv.login("supplier2"), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(http.MethodGet, "/api/v1/orders/"+orderID+"/slip?format=pdf", vendorToken, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMarketplaceAPI_RegisterThenLogin(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	srv := newMarketplaceServer(t, tdb)

	body := `{"username":"Chaat_Corner","password":"s3cret-pass","role":"vendor","name":"Ramesh","shop_business_name":"Chaat Corner","locality":"Juhu","contact_number":"9000000001"}`
	w := srv.do(http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = srv.do(http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = srv.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"chaat_corner","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"chaat_corner","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decodeData[handler.LoginResponse](t, w)
	assert.Equal(t, "/vendor/dashboard", login.DashboardPath)
	assert.Equal(t, "vendor", login.User.Role)

	w = srv.do(http.MethodGet, "/api/v1/auth/me", login.Token.AccessToken, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "chaat_corner", decodeData[handler.AuthUserResponse](t, w).Username)

	w = srv.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
