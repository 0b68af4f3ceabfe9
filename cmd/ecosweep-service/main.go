package main

import (
	"fmt"
	"os"

	"github.com/nurpe/ecosweep/internal/auth"
	"github.com/nurpe/ecosweep/internal/config"
	"github.com/nurpe/ecosweep/internal/db"
	"github.com/nurpe/ecosweep/internal/excel"
	httphandler "github.com/nurpe/ecosweep/internal/http"
	"github.com/nurpe/ecosweep/internal/http/middleware"
	"github.com/nurpe/ecosweep/internal/logger"
	"github.com/nurpe/ecosweep/internal/pdf"
	"github.com/nurpe/ecosweep/internal/repository"
	"github.com/nurpe/ecosweep/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	receipts := pdf.NewGenerator()
	statements := excel.NewGenerator()

	pickupService := service.NewPickupService(repository.NewBookingRepository(database), receipts)
	billingService := service.NewBillingService(repository.NewPaymentRepository(database), receipts, statements, cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(pickupService, billingService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting ecosweep service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
