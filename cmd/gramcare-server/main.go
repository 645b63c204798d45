package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gramcare/gramcare/internal/config"
	"github.com/gramcare/gramcare/internal/domain/chat"
	"github.com/gramcare/gramcare/internal/domain/emergency"
	"github.com/gramcare/gramcare/internal/domain/facility"
	"github.com/gramcare/gramcare/internal/domain/healthrecord"
	"github.com/gramcare/gramcare/internal/domain/identity"
	"github.com/gramcare/gramcare/internal/domain/insurance"
	"github.com/gramcare/gramcare/internal/domain/scheme"
	"github.com/gramcare/gramcare/internal/domain/triage"
	"github.com/gramcare/gramcare/internal/platform/auth"
	"github.com/gramcare/gramcare/internal/platform/db"
	"github.com/gramcare/gramcare/internal/platform/middleware"
	"github.com/gramcare/gramcare/internal/platform/notification"
	"github.com/gramcare/gramcare/internal/platform/websocket"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gramcare-server",
		Short: "GramCare rural healthcare API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tenantCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the GramCare API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			fmt.Printf("Running migrations on schema: %s\n", schema)

			count, err := migrator.Up(ctx, schema)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("schema", "tenant_default", "Target schema for migrations")
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx, schema)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("Migration status for schema: %s\n", schema)
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("schema", "tenant_default", "Target schema for migrations")
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Restore from a schema dump instead, then re-run migrate up.")
			return nil
		},
	})

	return cmd
}

func tenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new tenant schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			fmt.Printf("Creating tenant schema: tenant_%s\n", name)
			if err := db.CreateTenantSchema(ctx, pool, name, ""); err != nil {
				return err
			}
			fmt.Println("Tenant created successfully. Apply migrations with: gramcare-server migrate up --schema tenant_" + name)
			return nil
		},
	}
	createCmd.Flags().String("name", "", "Tenant identifier (alphanumeric)")

	cmd.AddCommand(createCmd)
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.SanitizeWithLogger(logger))
	e.Use(middleware.BodyLimit("1M", "10M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", "X-Tenant-ID"},
	}))

	// API groups. The public group serves registration, login, shared record
	// views, and facility/scheme information without a bearer token; the api
	// group carries authentication, tenant resolution, and access auditing.
	public := e.Group("/api/v1")
	api := e.Group("/api/v1")

	if cfg.IsDev() {
		api.Use(auth.DevAuthMiddleware())
	} else {
		api.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     "gramcare",
			SigningKey: []byte(cfg.JWTSecret),
		}))
	}

	public.Use(db.TenantMiddleware(pool, cfg.DefaultTenant))
	api.Use(db.TenantMiddleware(pool, cfg.DefaultTenant))
	api.Use(middleware.Audit(logger))

	// Rate limiting
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	public.Use(middleware.RateLimit(rateLimitCfg))
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Cache validation for read-heavy public lookups (facility types,
	// scheme and product info). Authenticated responses stay uncached.
	public.Use(middleware.CatalogCache(10 * time.Minute))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Shared infrastructure
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), "gramcare")

	hub := websocket.NewHub(logger)

	var smsSender notification.SMSSender
	if cfg.SMSGatewayURL != "" {
		smsSender = notification.NewHTTPSMSSender(cfg.SMSGatewayURL)
	} else {
		logger.Warn().Msg("SMS_GATEWAY_URL not set, SMS delivery runs in mock mode")
		smsSender = &notification.MockSMSSender{}
	}
	emailSender := notification.NewLogEmailSender(logger)
	notifyMgr := notification.NewNotificationManager(emailSender, smsSender, notification.NewTemplateEngine())

	// Identity: users, citizen profiles, ASHA workers, auth tokens
	userRepo := identity.NewUserRepoPG(pool)
	citizenRepo := identity.NewCitizenRepoPG(pool)
	ashaRepo := identity.NewASHARepoPG(pool)
	identitySvc := identity.NewService(userRepo, citizenRepo, ashaRepo, tokens)
	identity.NewHandler(identitySvc).RegisterRoutes(public, api)

	// Emergency alerts: CAS assignment workflow, SMS fan-out, live events
	alertRepo := emergency.NewAlertRepoPG(pool)
	emergencySvc := emergency.NewService(
		alertRepo,
		emergency.NewReporterDirectory(userRepo, citizenRepo),
		emergency.NewResponderDirectory(userRepo, ashaRepo),
		emergency.NewSMSNotifier(notifyMgr),
		emergency.NewHubSink(hub),
		nil,
		logger,
	)
	emergency.NewHandler(emergencySvc, ashaRepo).RegisterRoutes(api)

	// Health records and shareable record links
	recordRepo := healthrecord.NewRepoPG(pool)
	recordSvc := healthrecord.NewService(recordRepo, nil, logger)
	healthrecord.NewHandler(recordSvc).RegisterRoutes(public, api)

	// AI triage: symptom analysis persists assessments as health records
	triageSvc := triage.NewService(healthrecord.NewTriageSink(recordRepo, nil), nil, logger)
	triage.NewHandler(triageSvc).RegisterRoutes(api)

	// Micro-insurance policies and claims
	policyRepo := insurance.NewPolicyRepoPG(pool)
	insuranceSvc := insurance.NewService(policyRepo, nil, logger)
	insurance.NewHandler(insuranceSvc).RegisterRoutes(public, api)

	// Facility directory
	facilityRepo := facility.NewRepoPG(pool)
	facilitySvc := facility.NewService(facilityRepo, userRepo, nil, logger)
	facility.NewHandler(facilitySvc).RegisterRoutes(public, api)

	// Government schemes: eligibility, applications, BSKY hospital lookup
	schemeRepo := scheme.NewApplicationRepoPG(pool)
	schemeSvc := scheme.NewService(
		schemeRepo,
		scheme.NewMockGateway(time.Now),
		userRepo,
		citizenRepo,
		facility.NewHospitalDirectory(facilityRepo),
		nil,
		logger,
	)
	scheme.NewHandler(schemeSvc).RegisterRoutes(public, api)

	// Scripted health chat
	chatRepo := chat.NewRepoPG(pool)
	chatSvc := chat.NewService(chatRepo, nil, logger)
	chat.NewHandler(chatSvc).RegisterRoutes(api)

	// Notifications (direct send + templates)
	notification.NewNotificationHandler(notifyMgr).RegisterRoutes(api)

	// WebSocket endpoint for emergency alert subscribers
	websocket.NewWebSocketHandler(hub).RegisterRoutes(e.Group(""))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
