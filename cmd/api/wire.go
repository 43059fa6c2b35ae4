//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"

	"goflare.io/billing"
	"goflare.io/billing/config"
	"goflare.io/billing/driver"
	"goflare.io/billing/event"
	"goflare.io/billing/handlers"
	"goflare.io/billing/server"
	"goflare.io/billing/setup_intent"
)

func InitializeBillingService() (*server.Server, error) {

	wire.Build(
		config.ProvideApplicationConfig,
		config.NewLogger,
		config.ProvidePostgresConn,
		config.ProvideEmber,
		config.ProvideIgnite,
		config.ProvideNATS,
		config.ProvideRegistry,
		wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
		wire.Bind(new(billing.Broker), new(*nats.Conn)),
		driver.NewTransactionManager,
		wire.Bind(new(driver.Transactor), new(*driver.TransactionManager)),
		event.NewRepository,
		event.NewService,
		setup_intent.NewRepository,
		setup_intent.NewService,
		billing.NewMetrics,
		billing.NewStripeBilling,
		handlers.NewSetupIntentHandler,
		handlers.NewWebhookHandler,
		server.NewServer,
	)

	return &server.Server{}, nil
}
