package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsscheduler "github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ms-structured-data/internal/auth"
	"ms-structured-data/internal/cache"
	"ms-structured-data/internal/config"
	"ms-structured-data/internal/eventbridge"
	"ms-structured-data/internal/handlers"
	"ms-structured-data/internal/invalidation"
	"ms-structured-data/internal/kafka"
	"ms-structured-data/internal/render"
	"ms-structured-data/internal/services"
	"ms-structured-data/internal/structured"
)

func main() {
	cfg := config.Load()

	dbService, err := services.NewDatabaseService(services.DatabaseConfig{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		DBName:   cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database service: %v", err)
	}
	defer dbService.Close()

	if err := dbService.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache, err := cache.NewRedisCache(cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to initialize Redis cache: %v", err)
	}
	defer redisCache.Close()

	eventService := services.NewEventService(dbService.DB)
	settingsService := services.NewSettingsService(dbService.DB)
	quotaService := services.NewQuotaService(dbService.DB)

	builder := structured.NewBuilder(settingsService, quotaService, structured.SystemClock{}, cfg.PublicBaseURL)
	renderer := render.NewRenderer(builder, settingsService, redisCache,
		time.Duration(cfg.CacheTTLSeconds)*time.Second, cfg.SupportedLocales)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// AWS wiring is optional; without it the service still serves payloads
	// and invalidates through CDC, it just loses the presale-boundary flips.
	var schedulerService *eventbridge.Service
	if cfg.AWSRegion != "" {
		awsOptions := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.AWSRegion),
		}
		if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
			log.Println("Using AWS credentials from environment variables")
			awsOptions = append(awsOptions, awsconfig.WithCredentialsProvider(
				aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
					return aws.Credentials{
						AccessKeyID:     cfg.AWSAccessKeyID,
						SecretAccessKey: cfg.AWSSecretAccessKey,
					}, nil
				}),
			))
		} else {
			log.Println("No AWS credentials provided in environment variables, falling back to default credentials")
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsOptions...)
		if err != nil {
			log.Fatalf("unable to load AWS SDK config, %v", err)
		}
		sqsClient := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
			if cfg.AWSEndpoint != "" {
				log.Printf("Using LocalStack endpoint for AWS services: %s", cfg.AWSEndpoint)
				o.BaseEndpoint = &cfg.AWSEndpoint
			}
		})

		if cfg.SchedulerRoleARN != "" && cfg.SQSInvalidationQueueARN != "" {
			schedulerClient := awsscheduler.NewFromConfig(awsCfg, func(o *awsscheduler.Options) {
				if cfg.AWSEndpoint != "" {
					o.BaseEndpoint = &cfg.AWSEndpoint
				}
			})
			schedulerService = eventbridge.NewService(cfg, schedulerClient)
		} else {
			log.Println("Scheduler role or invalidation queue ARN not configured, skipping presale schedules")
		}

		if cfg.SQSInvalidationQueueURL != "" {
			log.Printf("Starting invalidation processor for queue: %s", cfg.SQSInvalidationQueueURL)
			processor := invalidation.NewProcessor(sqsClient, renderer, cfg.SQSInvalidationQueueURL)
			go func() {
				if err := processor.ProcessMessages(ctx); err != nil {
					log.Printf("Invalidation processor stopped: %v", err)
				}
			}()
		} else {
			log.Println("Invalidation queue URL not configured, skipping invalidation processor setup")
		}
	} else {
		log.Println("AWS region not configured, skipping AWS clients setup")
	}

	if cfg.KafkaURL != "" {
		if cfg.EventsKafkaTopic != "" {
			log.Printf("Starting events consumer for topic %s at %s", cfg.EventsKafkaTopic, cfg.KafkaURL)
			eventConsumer := kafka.NewEventConsumer(cfg, renderer, schedulerService)
			go eventConsumer.StartConsuming(ctx)
		}
		if cfg.SettingsKafkaTopic != "" {
			log.Printf("Starting settings consumer for topic %s at %s", cfg.SettingsKafkaTopic, cfg.KafkaURL)
			settingsConsumer := kafka.NewSettingsConsumer(cfg, renderer)
			go settingsConsumer.StartConsuming(ctx)
		}
	} else {
		log.Println("Kafka URL not configured, skipping Kafka consumers setup")
	}

	runHTTPServer(cfg, renderer, eventService, redisCache, dbService, cancel)
}

// runHTTPServer configures the router and serves until a shutdown signal.
func runHTTPServer(cfg config.Config, renderer *render.Renderer, eventService *services.EventService,
	redisCache *cache.RedisCache, dbService *services.DatabaseService, cancel context.CancelFunc) {
	router := mux.NewRouter()

	sdHandler := handlers.NewStructuredDataHandler(renderer, eventService, structured.SystemClock{}, cfg)

	// Public endpoint the host platform injects into its event pages.
	router.HandleFunc("/api/structured-data/v1/events/{eventId}/jsonld", sdHandler.GetJSONLD).Methods("GET")

	// Admin endpoints behind JWT auth.
	adminRouter := router.PathPrefix("/api/structured-data/v1/events/{eventId}").Subrouter()
	adminRouter.Use(auth.AdminMiddleware(cfg.JWTSecret))
	adminRouter.HandleFunc("/preview", sdHandler.Preview).Methods("GET")
	adminRouter.HandleFunc("/items", sdHandler.ListItems).Methods("GET")
	adminRouter.HandleFunc("/invalidate", sdHandler.Invalidate).Methods("POST")

	healthHandler := handlers.NewHealthHandler(map[string]func() error{
		"database": dbService.CheckConnection,
		"cache":    redisCache.CheckConnection,
	})
	router.HandleFunc("/health/ready", healthHandler.HandleReadiness).Methods("GET")
	router.HandleFunc("/health/live", healthHandler.HandleLiveness).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}
