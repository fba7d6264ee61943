package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"givebox/internal/adapter/repo"
	"givebox/internal/currency"
	"givebox/internal/http/handlers"
	httpapi "givebox/internal/http/httpapi"
	"givebox/internal/infra"
	"givebox/internal/web"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	sessions := scs.New()
	sessions.Store = pgxstore.New(dbpool)
	sessions.Lifetime = cfg.SessionLifetime
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Secure = cfg.AppEnv != "development"
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	fetcher := currency.NewHTTPFetcher(currency.FetcherOptions{
		APIKey: cfg.CurrencyAPIKey,
		APIURL: cfg.CurrencyAPIURL,
		Logger: logger,
	})
	rateCache := currency.NewCache(fetcher, cfg.BaseCurrency, cfg.CurrencyCacheWindow, logger)
	converter := currency.NewConverter(rateCache)

	views, err := web.NewTemplates()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}

	app := handlers.NewApp(
		logger,
		repo.NewDonationRepository(runner),
		repo.NewUserRepository(runner),
		sessions,
		converter,
		cfg.BaseCurrency,
		views,
	)

	router := httpapi.NewRouter(app, sessions, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("http server listening")
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
