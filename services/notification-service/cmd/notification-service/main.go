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
	"github.com/sadia-akter/trimly/services/notification-service/internal/consumer"
	"github.com/sadia-akter/trimly/services/notification-service/internal/email"
	"github.com/sadia-akter/trimly/services/notification-service/internal/inbox"
	"github.com/sadia-akter/trimly/services/notification-service/internal/outbox"
	"github.com/sadia-akter/trimly/services/notification-service/internal/sms"
	"github.com/sadia-akter/trimly/services/notification-service/internal/storage"
	"github.com/sadia-akter/trimly/services/notification-service/internal/templates"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTopics = "booking.appointment.created.v1," +
	"booking.appointment.confirmed.v1," +
	"booking.appointment.cancelled.v1," +
	"booking.appointment.rescheduled.v1," +
	"booking.appointment.completed.v1"

func writeReceipt(ctx context.Context, pool *db.Pool, outboxRepo *outbox.Repository, evt templates.AppointmentEvent, channel, providerID, failureReason string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	eventType := "notification.sent.v1"
	fields := map[string]any{
		"appointment_id": evt.AppointmentID,
		"business_id":    evt.BusinessID,
		"channel":        channel,
	}
	if failureReason != "" {
		eventType = "notification.failed.v1"
		fields["error_reason"] = failureReason
		fields["failed_at"] = time.Now().UTC().Format(time.RFC3339)
	} else {
		if strings.TrimSpace(providerID) == "" {
			providerID = "unknown"
		}
		fields["provider_id"] = providerID
		fields["sent_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	if err := outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "notification",
		AggregateID:   evt.AppointmentID,
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func main() {
	config.LoadDotEnv()

	service := config.String("SERVICE_NAME", "notification-service")
	port, err := config.Port("PORT", "8085")
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

	inboxRepo := inbox.NewRepository(pool)
	notificationsRepo := storage.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	smtpHost := config.String("SMTP_HOST", "mailpit")
	smtpPort := config.String("SMTP_PORT", "1025")
	smtpFrom := config.String("SMTP_FROM", "no-reply@trimly.local")
	emailSender := email.NewSMTPSender(smtpHost, smtpPort, smtpFrom)
	emailProviderID := "smtp"

	smsProvider := strings.ToLower(config.String("SMS_PROVIDER", "noop"))
	smsWebhookURL := config.String("SMS_WEBHOOK_URL", "")
	smsWebhookToken := config.String("SMS_WEBHOOK_TOKEN", "")
	var smsSender sms.Sender
	switch smsProvider {
	case "webhook":
		smsSender = sms.NewWebhookSender(smsWebhookURL, smsWebhookToken)
	case "noop":
		smsSender = sms.NewNoopSender()
	default:
		smsSender = sms.NewWebhookSender(smsWebhookURL, smsWebhookToken)
	}

	failSuffix := config.String("NOTIFICATION_FAIL_SUFFIX", "")

	handle := func(ctx context.Context, msg kafka.Message) error {
		var evt templates.AppointmentEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Error("invalid event payload", "err", err, "topic", msg.Topic)
			return nil
		}
		if evt.AppointmentID == "" || evt.BusinessID == "" {
			logger.Error("missing event fields", "topic", msg.Topic)
			return nil
		}

		message, ok := templates.Render(msg.Topic, evt)
		if !ok {
			logger.Info("no template for event, skipping", "topic", msg.Topic)
			return nil
		}

		deliver := func(channel, recipient string, send func() error, providerID string) error {
			if strings.TrimSpace(recipient) == "" {
				return nil
			}
			failureReason := ""
			status := "sent"
			if failSuffix != "" && strings.HasSuffix(recipient, failSuffix) {
				status = "failed"
				failureReason = "simulated failure"
			} else if err := send(); err != nil {
				status = "failed"
				failureReason = err.Error()
				logger.Error("delivery failed", "channel", channel, "err", err, "recipient", recipient)
			}
			if err := notificationsRepo.Insert(ctx, storage.Notification{
				AppointmentID: evt.AppointmentID,
				BusinessID:    evt.BusinessID,
				Channel:       channel,
				Recipient:     recipient,
				Payload:       map[string]any{"event_type": msg.Topic, "subject": message.Subject},
				Status:        status,
			}); err != nil {
				logger.Error("failed to persist notification", "err", err)
				return err
			}
			return writeReceipt(ctx, pool, outboxRepo, evt, channel, providerID, failureReason)
		}

		if err := deliver("email", evt.CustomerEmail, func() error {
			return emailSender.Send(evt.CustomerEmail, message.Subject, message.Body)
		}, emailProviderID); err != nil {
			return err
		}
		if err := deliver("sms", evt.CustomerPhone, func() error {
			return smsSender.Send(ctx, evt.CustomerPhone, message.Subject+": "+message.Body)
		}, smsSender.ProviderID()); err != nil {
			return err
		}

		logger.Info("event processed", "appointment_id", evt.AppointmentID, "topic", msg.Topic)
		return nil
	}

	topics := config.String("KAFKA_CONSUME_TOPICS", defaultTopics)
	for _, topic := range strings.Split(topics, ",") {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		eventConsumer := consumer.New(logger, inboxRepo, consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "notification-service"),
			Topic:   topic,
		}, handle)
		go eventConsumer.Run(ctx)
	}

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notification")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
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
