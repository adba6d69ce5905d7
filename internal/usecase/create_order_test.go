package usecase

import (
	"testing"

	"github.com/brmartins/orderflow/internal/order"
	"github.com/brmartins/orderflow/internal/payment"
	"github.com/brmartins/orderflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStrategy records whether it was called and returns a fixed answer.
type stubStrategy struct {
	approve bool
	called  int
	last    payment.Info
}

func (s *stubStrategy) Process(info payment.Info) bool {
	s.called++
	s.last = info
	return s.approve
}

// spyStore counts saves on top of the in-memory store.
type spyStore struct {
	*store.MemoryOrderStore
	saves int
}

func (s *spyStore) Save(o *order.Order) {
	s.saves++
	s.MemoryOrderStore.Save(o)
}

type panicStrategy struct{}

func (panicStrategy) Process(payment.Info) bool {
	panic("gateway connection reset")
}

func TestCreateOrderSuccess(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	strategy := &stubStrategy{approve: true}
	uc := NewCreateOrder(orders, strategy)

	resp := uc.Execute(CreateOrderInput{
		Items: []ItemInput{{ProductID: "prod1", Quantity: 2, Price: 10.50}},
	})

	require.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.Equal(t, 21.00, resp.Data.Total)
	require.Len(t, resp.Data.Items, 1)

	// Order retrievable by its id afterward.
	saved, exists := orders.FindByID(resp.Data.ID)
	require.True(t, exists)
	assert.Equal(t, 21.00, saved.Total)
	assert.Equal(t, order.StatusCompleted, saved.Status)

	// Payment was attempted with the order total.
	assert.Equal(t, 1, strategy.called)
	assert.Equal(t, 21.00, strategy.last.Amount)
	assert.Equal(t, "BRL", strategy.last.Currency)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	strategy := &stubStrategy{approve: true}
	uc := NewCreateOrder(orders, strategy)

	resp := uc.Execute(CreateOrderInput{Items: []ItemInput{}})

	require.False(t, resp.Success)
	assert.Contains(t, resp.Error, "must contain at least one item")
	// Neither payment nor persistence is attempted.
	assert.Equal(t, 0, strategy.called)
}

func TestCreateOrderInvalidQuantity(t *testing.T) {
	strategy := &stubStrategy{approve: true}
	uc := NewCreateOrder(store.NewMemoryOrderStore(), strategy)

	resp := uc.Execute(CreateOrderInput{
		Items: []ItemInput{{ProductID: "prod1", Quantity: -1, Price: 10.00}},
	})

	require.False(t, resp.Success)
	assert.Contains(t, resp.Error, "quantity must be positive")
	assert.Equal(t, 0, strategy.called)
}

func TestCreateOrderInvalidPrice(t *testing.T) {
	strategy := &stubStrategy{approve: true}
	uc := NewCreateOrder(store.NewMemoryOrderStore(), strategy)

	resp := uc.Execute(CreateOrderInput{
		Items: []ItemInput{{ProductID: "prod1", Quantity: 1, Price: 0}},
	})

	require.False(t, resp.Success)
	assert.Contains(t, resp.Error, "price must be positive")
	assert.Equal(t, 0, strategy.called)
}

func TestCreateOrderPaymentDeclined(t *testing.T) {
	orders := &spyStore{MemoryOrderStore: store.NewMemoryOrderStore()}
	uc := NewCreateOrder(orders, &stubStrategy{approve: false})

	resp := uc.Execute(CreateOrderInput{
		Items: []ItemInput{{ProductID: "prod1", Quantity: 1, Price: 10.00}},
	})

	require.False(t, resp.Success)
	assert.Equal(t, "payment processing failed", resp.Error)

	// A declined order is never persisted.
	assert.Equal(t, 0, orders.saves)
}

func TestCreateOrderRecoversFromGatewayPanic(t *testing.T) {
	uc := NewCreateOrder(store.NewMemoryOrderStore(), panicStrategy{})

	resp := uc.Execute(CreateOrderInput{
		Items: []ItemInput{{ProductID: "prod1", Quantity: 1, Price: 10.00}},
	})

	require.False(t, resp.Success)
	assert.Contains(t, resp.Error, "error creating order: ")
	assert.Contains(t, resp.Error, "gateway connection reset")
}

func TestCreateOrderGeneratesUniqueIDs(t *testing.T) {
	uc := NewCreateOrder(store.NewMemoryOrderStore(), &stubStrategy{approve: true})

	first := uc.Execute(CreateOrderInput{Items: []ItemInput{{ProductID: "p", Quantity: 1, Price: 1}}})
	second := uc.Execute(CreateOrderInput{Items: []ItemInput{{ProductID: "p", Quantity: 1, Price: 1}}})

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.NotEqual(t, first.Data.ID, second.Data.ID)
}
