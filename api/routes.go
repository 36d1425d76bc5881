package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/account"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/metrics"
	"github.com/carson-networks/expense-tracker/internal/origins"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// securityHeaders follows helmet's defaults. No Content-Security-Policy: the /docs page loads
// its renderer from a CDN.
var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"Referrer-Policy", "no-referrer"},
	{"Strict-Transport-Security", "max-age=15552000; includeSubDomains"},
	{"X-DNS-Prefetch-Control", "off"},
	{"X-Download-Options", "noopen"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "cross-origin"},
}

type Rest struct {
	Logger  *logrus.Logger
	Config  *config.Config
	Service *service.Service
	Storage *storage.Storage
	Policy  *origins.Policy
	Tokens  *auth.Issuer
	Metrics *metrics.HTTP
}

// Handler builds the router. Middleware order matters: the request log sees the status written
// by the recoverer, and CORS answers preflights before the bearer check runs.
func (r *Rest) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		logging.Middleware(r.Logger),
		apierror.Recoverer(r.Logger),
		r.Metrics.Middleware,
		r.Policy.Handler(r.Logger),
		auth.Middleware(r.Tokens),
	)
	for _, header := range securityHeaders {
		router.Use(middleware.SetHeader(header[0], header[1]))
	}
	router.NotFound(apierror.NotFound)
	router.MethodNotAllowed(apierror.MethodNotAllowed)
	router.Handle("/metrics", r.Metrics.Handler())

	apierror.Install(r.Config.IsDevelopment())
	humaConfig := huma.DefaultConfig("Expense Tracker API", "1.0.0")
	humaConfig.CreateHooks = nil
	humaAPI := humachi.New(router, humaConfig)

	status.NewHandler(r.Storage).Register(humaAPI)

	account.NewRegisterHandler(r.Service.Auth).Register(humaAPI)
	account.NewLoginHandler(r.Service.Auth).Register(humaAPI)
	account.NewSetAvatarHandler(r.Service.Auth).Register(humaAPI)
	account.NewAllUsersHandler(r.Service.Auth).Register(humaAPI)

	transaction.NewAddTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewGetTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(humaAPI)

	return router
}

// Serve blocks until ctx is cancelled or the listener fails, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Config.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Config.Port).Info("HttpServer.Serve.listening")
		listenErr <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
