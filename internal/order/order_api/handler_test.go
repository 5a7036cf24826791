package order_api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-catering/internal/auth"
	"ms-catering/internal/logger"
	"ms-catering/internal/models"
	"ms-catering/internal/order"
	"ms-catering/internal/order/order_api"
)

type stubOrderDB struct {
	orders map[string]*models.Order
}

func newStubOrderDB() *stubOrderDB {
	return &stubOrderDB{orders: map[string]*models.Order{
		"o1": {
			OrderID:       "o1",
			Email:         "customer@example.com",
			TransactionID: "tx-1",
			Price:         100,
			Quantity:      1,
			Status:        models.StatusPending,
			PaymentMethod: models.PaymentOnline,
			OrderType:     models.OrderRegular,
		},
	}}
}

func (s *stubOrderDB) CreateOrder(_ context.Context, ord models.Order) error {
	s.orders[ord.OrderID] = &ord
	return nil
}

func (s *stubOrderDB) GetOrderByID(_ context.Context, id string) (*models.Order, error) {
	ord, ok := s.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *ord
	return &copied, nil
}

func (s *stubOrderDB) GetOrderByTransactionID(_ context.Context, transactionID string) (*models.Order, error) {
	for _, ord := range s.orders {
		if ord.TransactionID == transactionID {
			copied := *ord
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubOrderDB) UpdateOrderStatusIf(_ context.Context, id string, from, to models.OrderStatus) (bool, error) {
	ord, ok := s.orders[id]
	if !ok || ord.Status != from {
		return false, nil
	}
	ord.Status = to
	return true, nil
}

func (s *stubOrderDB) SetOrderStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	ord, ok := s.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	ord.Status = status
	copied := *ord
	return &copied, nil
}

func (s *stubOrderDB) ListOrdersByEmail(_ context.Context, email string) ([]models.Order, error) {
	var out []models.Order
	for _, ord := range s.orders {
		if ord.Email == email {
			out = append(out, *ord)
		}
	}
	return out, nil
}

func (s *stubOrderDB) ListAllOrders(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, ord := range s.orders {
		out = append(out, *ord)
	}
	return out, nil
}

func (s *stubOrderDB) ListOrdersByType(_ context.Context, orderType models.OrderType) ([]models.Order, error) {
	var out []models.Order
	for _, ord := range s.orders {
		if ord.OrderType == orderType {
			out = append(out, *ord)
		}
	}
	return out, nil
}

func (s *stubOrderDB) LatestOrderByEmail(_ context.Context, email string) (*models.Order, error) {
	orders, _ := s.ListOrdersByEmail(context.Background(), email)
	if len(orders) == 0 {
		return nil, sql.ErrNoRows
	}
	return &orders[0], nil
}

func setupRouter() (*chi.Mux, *stubOrderDB) {
	db := newStubOrderDB()
	svc := order.NewOrderService(db, nil, nil, nil, nil, &logger.Logger{})
	handler := order_api.NewHandler(svc, &logger.Logger{})

	r := chi.NewRouter()
	r.Post("/payments", handler.CreateOrder)
	r.Get("/payments/{orderId}", handler.GetOrder)
	r.Patch("/payments/advance/{orderId}", handler.Advance)
	r.Patch("/payments/cancel/{orderId}", handler.Cancel)
	r.Patch("/payments/{orderId}", handler.SetStatus)
	return r, db
}

func doRequest(r http.Handler, method, path string, body []byte, identity *models.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if identity != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), *identity))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var (
	adminIdentity    = models.Identity{ID: "a1", Email: "admin@example.com", Role: models.RoleAdmin}
	customerIdentity = models.Identity{ID: "u1", Email: "customer@example.com", Role: models.RoleUser}
	strangerIdentity = models.Identity{ID: "u2", Email: "stranger@example.com", Role: models.RoleUser}
)

func TestCreateOrderRejectsUnknownFields(t *testing.T) {
	r, _ := setupRouter()

	body := []byte(`{"email":"customer@example.com","price":100,"quantity":1,"payment_method":"cod","surprise":"field"}`)
	rec := doRequest(r, http.MethodPost, "/payments", body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderPublicCheckout(t *testing.T) {
	r, db := setupRouter()

	body := []byte(`{"email":"new@example.com","price":75,"quantity":1,"payment_method":"cod"}`)
	rec := doRequest(r, http.MethodPost, "/payments", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, len(db.orders))
}

func TestGetOrderOwnership(t *testing.T) {
	r, _ := setupRouter()

	rec := doRequest(r, http.MethodGet, "/payments/o1", nil, &customerIdentity)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(r, http.MethodGet, "/payments/o1", nil, &strangerIdentity)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(r, http.MethodGet, "/payments/o1", nil, &adminIdentity)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(r, http.MethodGet, "/payments/missing", nil, &adminIdentity)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdvanceEndpoint(t *testing.T) {
	r, db := setupRouter()

	rec := doRequest(r, http.MethodPatch, "/payments/advance/o1", nil, &customerIdentity)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(r, http.MethodPatch, "/payments/advance/o1", nil, &adminIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusConfirmed, db.orders["o1"].Status)

	var payload models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, models.StatusConfirmed, payload.Status)
}

func TestAdvancePastTerminalIsBadRequest(t *testing.T) {
	r, db := setupRouter()
	db.orders["o1"].Status = models.StatusCompleted

	rec := doRequest(r, http.MethodPatch, "/payments/advance/o1", nil, &adminIdentity)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelEndpointChecksBodyEmail(t *testing.T) {
	r, db := setupRouter()

	body := []byte(`{"email":"stranger@example.com"}`)
	rec := doRequest(r, http.MethodPatch, "/payments/cancel/o1", body, &strangerIdentity)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	body = []byte(`{"email":"customer@example.com"}`)
	rec = doRequest(r, http.MethodPatch, "/payments/cancel/o1", body, &customerIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusCancelled, db.orders["o1"].Status)
}

func TestSetStatusOverride(t *testing.T) {
	r, db := setupRouter()

	body := []byte(`{"status":"dispatched"}`)
	rec := doRequest(r, http.MethodPatch, "/payments/o1", body, &adminIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusDispatched, db.orders["o1"].Status)

	body = []byte(`{"status":"teleported"}`)
	rec = doRequest(r, http.MethodPatch, "/payments/o1", body, &adminIdentity)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(r, http.MethodPatch, "/payments/o1", []byte(`{"status":"confirmed"}`), &customerIdentity)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
