package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brmartins/orderflow/internal/notification"
	"github.com/brmartins/orderflow/internal/payment"
	"github.com/brmartins/orderflow/internal/store"
	"github.com/brmartins/orderflow/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *notification.MockChannel) {
	t.Helper()

	orders := store.NewMemoryOrderStore()
	users := store.NewMemoryUserStore()

	recorder := notification.NewRecorder()
	channel := notification.NewMockChannelWithRecorder(false, recorder)
	factory := fixedFactory{channel: channel}

	server := NewServer(
		orders,
		usecase.NewCreateOrder(orders, payment.CreditCard{}),
		usecase.NewNotifyOrderCreated(factory, notification.Config{}),
		usecase.NewCreateUser(users),
		usecase.NewListUsers(users),
	)
	return server.Router(), channel
}

// fixedFactory always resolves to the same channel.
type fixedFactory struct {
	channel notification.Channel
}

func (f fixedFactory) Create(string, notification.Config) (notification.Channel, error) {
	return f.channel, nil
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/orders",
		`{"items":[{"product_id":"prod1","quantity":2,"price":10.50}]}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp usecase.Response[usecase.OrderOutput]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 21.00, resp.Data.Total)

	// Order retrievable afterwards.
	get := doJSON(router, http.MethodGet, "/orders/"+resp.Data.ID, "")
	assert.Equal(t, http.StatusOK, get.Code)
}

func TestCreateOrderEndpointValidationFailure(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/orders",
		`{"items":[{"product_id":"prod1","quantity":-2,"price":10.50}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/orders/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotifyOrderEndpoint(t *testing.T) {
	router, channel := newTestRouter(t)

	created := doJSON(router, http.MethodPost, "/orders",
		`{"items":[{"product_id":"prod1","quantity":2,"price":10.50}]}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var resp usecase.Response[usecase.OrderOutput]
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	w := doJSON(router, http.MethodPost, "/orders/"+resp.Data.ID+"/notify",
		`{"customer_email":"customer@example.com","customer_name":"John Doe"}`)

	require.Equal(t, http.StatusOK, w.Code)
	sent := channel.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Content.Subject, "created successfully!")
}

func TestNotifyOrderEndpointUnsupportedChannel(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	users := store.NewMemoryUserStore()
	server := NewServer(
		orders,
		usecase.NewCreateOrder(orders, payment.CreditCard{}),
		usecase.NewNotifyOrderCreated(notification.NewDefaultFactory(), notification.Config{}),
		usecase.NewCreateUser(users),
		usecase.NewListUsers(users),
	)
	router := server.Router()

	created := doJSON(router, http.MethodPost, "/orders",
		`{"items":[{"product_id":"prod1","quantity":1,"price":10.00}]}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var resp usecase.Response[usecase.OrderOutput]
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	// A selector the factory rejects is the caller's fault, not a
	// gateway failure.
	w := doJSON(router, http.MethodPost, "/orders/"+resp.Data.ID+"/notify",
		`{"customer_email":"customer@example.com","customer_name":"John Doe","channel":"carrier-pigeon"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifyOrderEndpointDeliveryFailure(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	users := store.NewMemoryUserStore()
	server := NewServer(
		orders,
		usecase.NewCreateOrder(orders, payment.CreditCard{}),
		usecase.NewNotifyOrderCreated(notification.NewDefaultFactory(), notification.Config{"should_fail": true}),
		usecase.NewCreateUser(users),
		usecase.NewListUsers(users),
	)
	router := server.Router()

	created := doJSON(router, http.MethodPost, "/orders",
		`{"items":[{"product_id":"prod1","quantity":1,"price":10.00}]}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var resp usecase.Response[usecase.OrderOutput]
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	w := doJSON(router, http.MethodPost, "/orders/"+resp.Data.ID+"/notify",
		`{"customer_email":"customer@example.com","customer_name":"John Doe","channel":"mock"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestNotifyOrderEndpointUnknownOrder(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/orders/missing/notify",
		`{"customer_email":"customer@example.com","customer_name":"John Doe"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	created := doJSON(router, http.MethodPost, "/users",
		`{"name":"John Doe","email":"john@example.com"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	invalid := doJSON(router, http.MethodPost, "/users",
		`{"name":"John Doe","email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	list := doJSON(router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, list.Code)

	var resp usecase.Response[[]usecase.UserOutput]
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
