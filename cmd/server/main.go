package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/GOAT858/Bid2Win/internal/config"
	"github.com/GOAT858/Bid2Win/internal/oracle"
	"github.com/GOAT858/Bid2Win/internal/oracle/openrouter"
	"github.com/GOAT858/Bid2Win/internal/rating"
	"github.com/GOAT858/Bid2Win/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	var advisor oracle.Advisor
	if cfg.OpenRouterAPIKey != "" {
		advisor = openrouter.NewClient(
			&http.Client{Timeout: cfg.OracleTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.OracleModel,
			cfg.OracleFallbackModel,
			logger,
		)
		logger.Info("oracle enabled", "model", cfg.OracleModel)
	}

	ratings := rating.NewService(logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/api/leaderboard", func(c echo.Context) error {
		return c.JSON(http.StatusOK, ratings.Leaderboard())
	})
	e.GET("/ws", func(c echo.Context) error {
		// One session per connection: a table of one human and bots.
		s := server.NewSession(cfg, logger, ratings, advisor)
		return s.ServeWS(c)
	})

	logger.Info("listening", "addr", cfg.HTTPAddr)
	if err := e.Start(cfg.HTTPAddr); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
