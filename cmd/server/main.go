package main

import (
	"log"
	"net/http"

	"souq-be/internal/cart"
	"souq-be/internal/config"
	"souq-be/internal/db"
	"souq-be/internal/gateway"
	"souq-be/internal/logger"
	"souq-be/internal/middleware"
	"souq-be/internal/order"

	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cfg.StoreBaseURL)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	settingsRepo := gateway.NewSettingsRepository(database)
	factory := gateway.NewFactory(settingsRepo, orderSvc, cartSvc, nil)
	handler := gateway.NewHandler(factory, orderSvc)

	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.StoreBaseURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/process", handler.ProcessHandler)
		r.Post("/process", handler.ProcessHandler)
		r.Get("/pay", handler.PayHandler)
		r.Get("/fields", handler.FieldsHandler)
	})

	r.Route("/payments/paylink", func(r chi.Router) {
		r.Get("/callback", handler.CallbackHandler)
		r.Post("/callback", handler.CallbackHandler)
	})

	log.Printf("🚀 Payment server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, r))
}
