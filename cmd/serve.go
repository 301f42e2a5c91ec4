// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/tribes-music/session-service/internal/authorization"
	"github.com/tribes-music/session-service/internal/config"
	"github.com/tribes-music/session-service/internal/db"
	"github.com/tribes-music/session-service/internal/identity"
	"github.com/tribes-music/session-service/internal/idp"
	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring/prometheus"
	"github.com/tribes-music/session-service/internal/storage"
	"github.com/tribes-music/session-service/internal/tracing"
	"github.com/tribes-music/session-service/pkg/authentication"
	"github.com/tribes-music/session-service/pkg/session"
	"github.com/tribes-music/session-service/pkg/web"
	"github.com/tribes-music/session-service/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("session-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	authorizer := authorization.NewAuthorizer(s, specs.PermissionRefreshInterval, tracer, monitor, logger)
	idpClient := idp.NewClient(specs.IdpAdminURL, tracer, monitor, logger)

	sessionCache := session.NewCache()
	sessionService := session.NewService(s, authorizer, sessionCache, tracer, monitor, logger)
	sessionAPI := session.NewAPI(sessionService, tracer, monitor, logger)

	webhooksService := webhooks.NewService(s, idpClient, sessionCache, tracer, monitor, logger)
	webhooksAPI := webhooks.NewAPI(webhooksService)

	identityMiddleware := identity.NewMiddleware(tracer, monitor, logger)
	principal := identityMiddleware.HTTPMiddleware

	if specs.AuthenticationEnabled {
		verifier, err := authentication.NewJWTAuthenticator(
			context.Background(),
			specs.JWTIssuer,
			specs.JWKSURL,
			specs.AllowedSubjects,
			specs.RequiredScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize JWT authenticator: %v", err)
		}
		principal = authentication.NewMiddleware(verifier, tracer, monitor, logger).Authenticate()
		logger.Info("JWT authentication is enabled")
	} else {
		logger.Info("Trusting identity headers from the fronting proxy")
	}

	router := web.NewRouter(
		sessionAPI,
		webhooksAPI,
		principal,
		dbClient,
		specs.CORSAllowedOrigins,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
