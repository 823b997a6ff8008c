package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "quarhire/internal/config"
	intdb "quarhire/internal/db"
	"quarhire/internal/gateways/hubtel"
	"quarhire/internal/gateways/paystack"
	router "quarhire/internal/http"
	"quarhire/internal/http/handlers"
	"quarhire/internal/mailer"
	"quarhire/internal/repositories"
	"quarhire/internal/services"
	"quarhire/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.NewLogger(env.GinMode, env.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	db, err := intconfig.ConnectDB(env.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer intconfig.CloseDB(db)

	if env.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := intdb.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			logger.Fatal("schema migration failed", zap.Error(err))
		}
	}

	httpClient := &http.Client{Timeout: env.HTTPClientTimeout}
	hubtelClient := hubtel.NewClient(hubtel.Config{
		ClientID:              env.Hubtel.ClientID,
		ClientSecret:          env.Hubtel.ClientSecret,
		MerchantAccountNumber: env.Hubtel.MerchantAccountNumber,
		CallbackURL:           env.Hubtel.CallbackURL,
		ReturnURL:             env.Hubtel.ReturnURL,
		CancellationURL:       env.Hubtel.CancellationURL,
		CheckoutBaseURL:       env.Hubtel.CheckoutBaseURL,
		StatusBaseURL:         env.Hubtel.StatusBaseURL,
	}, httpClient)
	if !hubtelClient.Configured() {
		logger.Warn("hubtel credentials missing; checkout and verification will fail closed")
	}
	paystackClient := paystack.NewClient(env.Paystack.SecretKey, env.Paystack.BaseURL, httpClient)
	mail := mailer.NewResendMailer(env.ResendAPIKey, env.EmailFrom)
	if !mail.Configured() {
		logger.Warn("resend api key missing; email endpoints will fail closed")
	}

	bookingRepo := repositories.BookingRepository{DB: db}
	callbackRepo := repositories.CallbackRepository{DB: db}
	driverRepo := repositories.DriverRepository{DB: db}

	docs := services.DocsService{Bookings: bookingRepo}
	notify := services.NotificationService{
		Mailer:          mail,
		Bookings:        bookingRepo,
		Docs:            docs,
		AdminEmail:      env.AdminEmail,
		SupportPhone:    env.SupportPhone,
		SupportWhatsApp: env.SupportWhatsApp,
	}
	payments := services.PaymentService{
		Bookings:  bookingRepo,
		Callbacks: callbackRepo,
		Gateway:   hubtelClient,
		Legacy:    paystackClient,
		Notifier:  notify,
	}
	auth := services.AuthService{
		Secret:   []byte(env.AuthJWTSecret),
		Profiles: repositories.ProfileRepository{DB: db},
	}

	hd := &handlers.Handler{
		DB:       db,
		Bookings: services.BookingService{Bookings: bookingRepo, Drivers: driverRepo, Payments: payments},
		Payments: payments,
		Drivers:  services.DriverService{Drivers: driverRepo},
		Notify:   notify,
		Docs:     docs,
		Reports:  services.ReportsService{Finance: repositories.FinanceRepository{DB: db}},
		Support:  handlers.Support{Phone: env.SupportPhone, WhatsApp: env.SupportWhatsApp},
	}

	r := router.NewRouter(env, hd, auth)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
