package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/bank-server/api"
	"github.com/carson-networks/bank-server/internal/config"
	"github.com/carson-networks/bank-server/internal/dispatcher"
	"github.com/carson-networks/bank-server/internal/handlers/v1/account"
	"github.com/carson-networks/bank-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/operator"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/storage"
)

var configFile = flag.String("config", "", "Path to configuration file (overrides BANK_CONFIG_FILE)")

func main() {
	flag.Parse()

	logger := logging.SetupLogging()
	logger.Info("bank-server starting")

	var envConfig *config.Config
	var err error
	if *configFile != "" {
		envConfig, err = config.Load(*configFile)
	} else {
		envConfig, err = config.ProcessEnvironmentVariables()
	}
	if err != nil {
		logger.WithError(err).Fatal("config.Load")
		return
	}
	logging.SetLevel(logger, envConfig.Logging.Level)

	sinks := logging.OpenAuditSinks(envConfig.Logging.AuditDir, logger)
	defer sinks.Close()

	dbStorage, err := storage.NewStorage(envConfig, storage.WithAuditor(sinks.DB))
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}

	op := operator.NewOperatorDelegator(dbStorage, envConfig.Storage.Workers)
	op.Start()
	defer op.Stop()

	svc := service.NewService(dbStorage, op, sinks.DB)

	d := dispatcher.NewDispatcher(logger, sinks.Request)
	account.RegisterAll(d, svc.Account)
	transaction.RegisterAll(d, svc.Transaction)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	listener := api.NewListener(envConfig, logger, d, sinks)
	group.Go(func() error {
		return listener.Serve(ctx)
	})

	if envConfig.Server.StatusPort != 0 {
		httpRest := api.Rest{
			Logger:  logger,
			Addr:    envConfig.Server.StatusAddress(),
			Service: svc,
		}
		group.Go(func() error {
			return httpRest.Serve(ctx)
		})
	}

	logger.WithFields(logrus.Fields{
		"addr":     envConfig.Server.Address(),
		"database": dbStorage.Path(),
	}).Info("bank-server ready")

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("bank-server stopped with error")
		return
	}
	logger.Info("bank-server stopped")
}
