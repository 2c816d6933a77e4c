package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/streetmart/backend/internal/application/catalog"
	appidentity "github.com/streetmart/backend/internal/application/identity"
	apptrade "github.com/streetmart/backend/internal/application/trade"
	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/trade"
	"github.com/streetmart/backend/internal/infrastructure/persistence"
	"github.com/streetmart/backend/internal/interfaces/http/dto"
	"github.com/streetmart/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input appidentity.RegisterInput) (*appidentity.RegisterResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.RegisterResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.LoginResult), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, input appidentity.RefreshTokenInput) (*appidentity.RefreshTokenResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.RefreshTokenResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input appidentity.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*appidentity.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.UserInfo), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogService) ListSuppliers(ctx context.Context) ([]appcatalog.SupplierResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appcatalog.SupplierResponse), args.Error(1)
}

func (m *MockCatalogService) BrowseListings(ctx context.Context, filter appcatalog.BrowseFilter) ([]appcatalog.ListingResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appcatalog.ListingResponse), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, actor *identity.Actor, cart trade.Cart) (*apptrade.PlaceOrderResult, error) {
	args := m.Called(ctx, actor, cart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.PlaceOrderResult), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, actor *identity.Actor, orderID uuid.UUID, status string) (*apptrade.OrderStatusResponse, error) {
	args := m.Called(ctx, actor, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.OrderStatusResponse), args.Error(1)
}

type MockSlipService struct {
	mock.Mock
}

func (m *MockSlipService) Render(ctx context.Context, actor *identity.Actor, orderID uuid.UUID, format apptrade.SlipFormat) (*apptrade.SlipResult, error) {
	args := m.Called(ctx, actor, orderID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptrade.SlipResult), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) ListSupplierOrders(ctx context.Context, actor *identity.Actor) ([]apptrade.SupplierOrderResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apptrade.SupplierOrderResponse), args.Error(1)
}

func (m *MockDashboardService) ListVendorOrders(ctx context.Context, actor *identity.Actor) ([]apptrade.VendorOrderResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apptrade.VendorOrderResponse), args.Error(1)
}

type MockDatabaseProbe struct {
	mock.Mock
}

func (m *MockDatabaseProbe) Ping() error {
	return m.Called().Error(0)
}

func (m *MockDatabaseProbe) Stats() (persistence.ConnectionStats, error) {
	args := m.Called()
	return args.Get(0).(persistence.ConnectionStats), args.Error(1)
}

// newTestContext builds a gin context for a JSON request. body may be nil, a
// string sent verbatim, or any value marshalled to JSON.
func newTestContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// withActor simulates what the JWT middleware stores for an authenticated request
func withActor(c *gin.Context, actor *identity.Actor) {
	c.Set(middleware.JWTActorKey, actor)
	c.Set(middleware.JWTUserIDKey, actor.UserID.String())
	c.Set(middleware.JWTRoleKey, actor.Role.String())
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func vendor() *identity.Actor {
	return identity.NewActor(uuid.New(), "ramesh_chaat", identity.RoleVendor)
}

func supplier() *identity.Actor {
	return identity.NewActor(uuid.New(), "fresh_farm", identity.RoleSupplier)
}
