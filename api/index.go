package api

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"storefront/app"
	"storefront/config"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		cfg := config.LoadConfig()
		cfg.AppEnv = "production"

		logger, err := config.NewLogger(cfg)
		if err != nil {
			initErr = err
			return
		}
		application, initErr = app.New(context.Background(), cfg, logger)
		if initErr != nil {
			logger.Error("failed to initialize app", zap.Error(initErr))
		}
	})
}

// Handler is the serverless entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"message":"Service unavailable"}`))
		return
	}
	application.Router.ServeHTTP(w, r)
}
