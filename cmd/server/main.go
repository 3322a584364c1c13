package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/kittyhub/kittyhub.go/bank"
	"github.com/kittyhub/kittyhub.go/db"
	"github.com/kittyhub/kittyhub.go/db/migrations"
	"github.com/kittyhub/kittyhub.go/kitty"
	"github.com/kittyhub/kittyhub.go/ledger"
	"github.com/kittyhub/kittyhub.go/lib/logging"
	"github.com/kittyhub/kittyhub.go/lib/service"
	"github.com/kittyhub/kittyhub.go/lib/tokens"
	"github.com/kittyhub/kittyhub.go/lib/transport"
	"github.com/uptrace/bun/migrate"
)

func main() {

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configrued log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c.DatabaseUri, c.DatabaseMaxConns, c.DatabaseMaxIdleConns, time.Duration(c.DatabaseConnMaxLifetime)*time.Second)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	genderRule, err := kitty.ParseGenderRule(c.GenderRule)
	if err != nil {
		logger.Fatalf("Error loading gender rule: %v", err)
	}

	// The registry and the bank always share a backend so that a purchase
	// is one atomic unit.
	var kittyLedger ledger.Ledger
	var userBank bank.Bank
	switch c.LedgerBackend {
	case "postgres":
		kittyLedger = ledger.NewPostgres(dbConn)
		userBank = bank.NewPostgres(dbConn, c.ExistentialBalance)
	case "memory":
		kittyLedger = ledger.NewMemory()
		userBank = bank.NewMemory(c.ExistentialBalance)
	default:
		logger.Fatalf("Unknown ledger backend: %s", c.LedgerBackend)
	}

	svc := &service.KittyhubService{
		Config:      c,
		DB:          dbConn,
		Logger:      logger,
		Ledger:      kittyLedger,
		Bank:        userBank,
		Seeds:       kitty.SystemSeedSource{},
		GenderRule:  genderRule,
		EventPubSub: service.NewPubsub(),
	}

	//init echo server
	e := transport.InitEcho(c, logger)

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for the endpoints that mint or move kitties
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret), strictRateLimitMiddleware, logMw)

	transport.RegisterEndpoints(svc, e, secured, securedWithStrictRateLimit, strictRateLimitMiddleware, tokens.AdminTokenMiddleware(c.AdminToken), logMw)

	var backgroundWg sync.WaitGroup
	backGroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)

	//Start webhook subscription
	if svc.Config.WebhookUrl != "" {
		backgroundWg.Add(1)
		go func() {
			svc.StartWebhookSubscription(backGroundCtx)
			svc.Logger.Info("Webhook routine done")
			backgroundWg.Done()
		}()
	}
	//Start rabbit publisher
	if svc.Config.RabbitMQUri != "" {
		backgroundWg.Add(1)
		go func() {
			err = svc.StartRabbitMqPublisher(backGroundCtx)
			if err != nil {
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}

			svc.Logger.Info("Rabbit event publisher done")
			backgroundWg.Done()
		}()
	}

	//Start Prometheus server if necessary
	if svc.Config.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	//Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("KittyHub exiting gracefully. Goodbye.")
}
