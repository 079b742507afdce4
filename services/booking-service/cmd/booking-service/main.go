package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sadia-akter/trimly/libs/config"
	"github.com/sadia-akter/trimly/libs/db"
	"github.com/sadia-akter/trimly/libs/httpx"
	"github.com/sadia-akter/trimly/libs/kafkax"
	otelx "github.com/sadia-akter/trimly/libs/otel"
	"github.com/sadia-akter/trimly/libs/runtime"
	"github.com/sadia-akter/trimly/services/booking-service/internal/approval"
	"github.com/sadia-akter/trimly/services/booking-service/internal/consumer"
	"github.com/sadia-akter/trimly/services/booking-service/internal/handlers"
	"github.com/sadia-akter/trimly/services/booking-service/internal/inbox"
	"github.com/sadia-akter/trimly/services/booking-service/internal/outbox"
	"github.com/sadia-akter/trimly/services/booking-service/internal/policy"
	"github.com/sadia-akter/trimly/services/booking-service/internal/storage"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	config.LoadDotEnv()

	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	repo := storage.NewBookingRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	businessBaseURL := config.String("BUSINESS_BASE_URL", "http://business-service:8082")
	schedulingProvider := newSchedulingProvider(logger, businessBaseURL)

	// Business-service answers policy lookups; when it is down, the locally
	// cached copy (kept fresh by settings-updated events) answers instead.
	policyProvider := policy.NewFallbackProvider(
		newPolicyPrimary(logger, businessBaseURL),
		func(ctx context.Context, businessID string) (string, int, error) {
			row, err := repo.GetPolicyCache(ctx, businessID)
			if err != nil {
				return "", 0, err
			}
			return row.ApprovalMode, row.MinChangeMinutes, nil
		},
		logger,
	)

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	inboxRepo := inbox.NewRepository(pool)
	settingsTopic := config.String("KAFKA_CONSUME_TOPIC", "business.settings.updated.v1")
	if strings.TrimSpace(settingsTopic) != "" {
		consumerCfg := consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "booking-service"),
			Topic:   settingsTopic,
		}
		eventConsumer := consumer.New(logger, inboxRepo, consumerCfg, func(ctx context.Context, msg kafka.Message) error {
			var payload struct {
				BusinessID       string `json:"business_id"`
				ApprovalMode     string `json:"approval_mode"`
				MinChangeMinutes int    `json:"min_change_minutes"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				logger.Error("invalid event payload", "err", err, "topic", msg.Topic)
				return nil
			}
			if payload.BusinessID == "" {
				logger.Error("missing business_id in event", "topic", msg.Topic)
				return nil
			}
			if _, err := approval.ParseMode(payload.ApprovalMode); err != nil {
				logger.Error("unknown approval mode in event", "mode", payload.ApprovalMode)
				return nil
			}

			tx, err := pool.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(ctx) }()

			if err := repo.UpsertPolicyCache(ctx, tx, storage.PolicyCacheRow{
				BusinessID:       payload.BusinessID,
				ApprovalMode:     payload.ApprovalMode,
				MinChangeMinutes: payload.MinChangeMinutes,
			}); err != nil {
				return err
			}
			return tx.Commit(ctx)
		})
		go eventConsumer.Run(ctx)
	}

	bookingHandler := handlers.NewBookingHandler(repo, outboxRepo, logger, policyProvider, schedulingProvider)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/public/slots", bookingHandler.Slots)
	mux.HandleFunc("/api/v1/public/book", bookingHandler.Create)
	mux.HandleFunc("/api/v1/appointments", bookingHandler.List)
	mux.HandleFunc("/api/v1/appointments/cancel", bookingHandler.Cancel)
	mux.HandleFunc("/api/v1/appointments/reschedule", bookingHandler.Reschedule)
	mux.HandleFunc("/api/v1/appointments/confirm", bookingHandler.Confirm)
	mux.HandleFunc("/api/v1/appointments/complete", bookingHandler.Complete)
	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
