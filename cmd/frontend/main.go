package main

import (
	"github.com/joho/godotenv"

	"paradisian/internal/frontend/handler"
	"paradisian/internal/gateway"
	"paradisian/internal/session"
	"paradisian/pkg/app"
	"paradisian/pkg/config"
	"paradisian/pkg/events"
)

const ServiceName = "frontend"

func main() {
	// Missing .env is fine; deployed environments inject variables directly.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Frontend service")
	pages, publisher := initPages(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(pages)
	serverApp.OnShutdown(publisher.Close)
	serverApp.Run()
}

func initPages(cfg *config.Config) (*handler.Pages, *events.Publisher) {
	store := session.NewCookieStore(cfg.CookieAuthSecret, cfg.CookieSecure)
	backend := gateway.New(gateway.Options{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout,
		Log:     cfg.Log,
	})
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)

	return handler.NewPages(cfg, backend, store, publisher), publisher
}
