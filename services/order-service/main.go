package main

import (
	"github.com/brmartins/orderflow/internal/api"
	"github.com/brmartins/orderflow/internal/config"
	"github.com/brmartins/orderflow/internal/patterns"
	"github.com/brmartins/orderflow/internal/payment"
	"github.com/brmartins/orderflow/internal/store"
	"github.com/brmartins/orderflow/internal/usecase"
	log "github.com/sirupsen/logrus"
)

func init() {
	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg := config.Load()

	orders := store.NewMemoryOrderStore()
	users := store.NewMemoryUserStore()

	strategy := payment.NewResilient(
		payment.CreditCard{},
		patterns.NewCircuitBreaker("Payment", "orderflow"),
	)

	factory := cfg.NewFactory()
	notifyConfig := cfg.ChannelConfig(cfg.NotifyChannel)

	server := api.NewServer(
		orders,
		usecase.NewCreateOrder(orders, strategy),
		usecase.NewNotifyOrderCreated(factory, notifyConfig),
		usecase.NewCreateUser(users),
		usecase.NewListUsers(users),
	)

	log.WithFields(log.Fields{
		"port":           cfg.Port,
		"notify_channel": cfg.NotifyChannel,
	}).Info("Order service starting")

	if err := server.Router().Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
