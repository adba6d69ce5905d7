package api

import (
	"net/http"
	"strings"

	"github.com/brmartins/orderflow/internal/metrics"
	"github.com/brmartins/orderflow/internal/store"
	"github.com/brmartins/orderflow/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the order and user use cases over HTTP.
type Server struct {
	orders      store.OrderStore
	createOrder *usecase.CreateOrder
	notifyOrder *usecase.NotifyOrderCreated
	createUser  *usecase.CreateUser
	listUsers   *usecase.ListUsers
}

// NewServer wires the HTTP layer around the use cases.
func NewServer(
	orders store.OrderStore,
	createOrder *usecase.CreateOrder,
	notifyOrder *usecase.NotifyOrderCreated,
	createUser *usecase.CreateUser,
	listUsers *usecase.ListUsers,
) *Server {
	return &Server{
		orders:      orders,
		createOrder: createOrder,
		notifyOrder: notifyOrder,
		createUser:  createUser,
		listUsers:   listUsers,
	}
}

// Router builds the gin router with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(metrics.PrometheusMiddleware("orderflow"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/orders", s.handleCreateOrder)
	router.GET("/orders/:orderId", s.handleGetOrder)
	router.POST("/orders/:orderId/notify", s.handleNotifyOrder)

	router.POST("/users", s.handleCreateUser)
	router.GET("/users", s.handleListUsers)

	return router
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var input usecase.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	resp := s.createOrder.Execute(input)
	if !resp.Success {
		c.JSON(orderFailureStatus(resp.Error), resp)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// orderFailureStatus maps envelope errors onto HTTP statuses.
func orderFailureStatus(message string) int {
	switch {
	case message == "payment processing failed":
		return http.StatusPaymentRequired
	case strings.HasPrefix(message, "error creating order"):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) handleGetOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	o, exists := s.orders.FindByID(orderID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "Order not found",
			"order_id": orderID,
		})
		return
	}

	c.JSON(http.StatusOK, o)
}

type notifyRequest struct {
	CustomerEmail string `json:"customer_email" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	Channel       string `json:"channel"`
	DeviceToken   string `json:"device_token"`
}

func (s *Server) handleNotifyOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	o, exists := s.orders.FindByID(orderID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "Order not found",
			"order_id": orderID,
		})
		return
	}

	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	resp := s.notifyOrder.Execute(usecase.NotifyOrderCreatedInput{
		Order:         o,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Channel:       req.Channel,
		DeviceToken:   req.DeviceToken,
	})

	if !resp.Success {
		c.JSON(notifyFailureStatus(resp.Error), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// notifyFailureStatus maps envelope errors onto HTTP statuses: a channel
// selector the factory rejects is the caller's fault, anything else is a
// delivery failure upstream.
func notifyFailureStatus(message string) int {
	if strings.Contains(message, "unsupported notification channel") {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var input usecase.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	resp := s.createUser.Execute(input)
	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.listUsers.Execute())
}
