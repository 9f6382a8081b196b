package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"nmai/sunrise-service/config"
	"nmai/sunrise-service/internal/api/v1/handlers"
	"nmai/sunrise-service/internal/i18n"
	"nmai/sunrise-service/internal/providers"
	"nmai/sunrise-service/internal/service"
	"nmai/sunrise-service/internal/static"
	"nmai/sunrise-service/internal/telemetry"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	ctx, mainCtxStop := context.WithCancel(context.Background())

	shutdownTracing, err := telemetry.Setup(ctx, conf.ServiceName, conf.OtelEndpoint)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	upstream := providers.NewUpstreamService(providers.Options{
		LocationIQURL:    conf.LocationIQURL,
		LocationIQAPIKey: conf.LocationIQAPIKey,
		GeoNamesURL:      conf.GeoNamesURL,
		GeoNamesUsername: conf.GeoNamesUsername,
		SunriseSunsetURL: conf.SunriseSunsetURL,
		Timeout:          conf.UpstreamTimeout,
	})
	gatewayService := service.NewGatewayService(upstream)

	router := handlers.NewRouter(
		gatewayService,
		i18n.NewFileStore(conf.I18nDir),
		static.NewServer(conf.PublicDir),
		conf.UpstreamTimeout,
	)

	httpServer := &http.Server{
		Addr:              conf.ServerAddress(),
		Handler:           otelhttp.NewHandler(handlers.WithRequestLogging(logger, router), conf.ServiceName),
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func(shutdownCtx context.Context) {
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
		if tracingErr := shutdownTracing(shutdownCtx); tracingErr != nil {
			logger.Error().Err(tracingErr).Msg("tracing shutdown failed")
		}
	})

	logger.Info().
		Str("address", conf.ServerAddress()).
		Str("public_dir", conf.PublicDir).
		Str("i18n_dir", conf.I18nDir).
		Msg("server started")

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
		logger.Fatal().Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func(context.Context)) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)
		defer cancel()

		callback(shutdownCtx)

		cancelCtx()
	}()
}
