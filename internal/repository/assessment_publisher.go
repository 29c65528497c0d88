package repository

import (
	"context"
	"fmt"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	domrepo "github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/pkg/config"
	"github.com/abhinavomanakuttan/leaf-net/pkg/kafka"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

// KafkaAssessmentPublisher streams completed orchestration assessments,
// keyed by region so per-region ordering is preserved.
type KafkaAssessmentPublisher struct {
	producer *kafka.Producer
	topic    string
	log      *logger.Logger
}

func NewKafkaAssessmentPublisher(cfg *config.Config, log *logger.Logger) (*KafkaAssessmentPublisher, error) {
	producer, err := kafka.NewProducer(
		kafka.WithBrokers(cfg.Kafka.Brokers),
		kafka.WithCompression(cfg.Kafka.Compression),
		kafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		kafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		kafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		kafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		kafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		kafka.WithAsync(cfg.Kafka.Producer.Async),
		kafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("create assessment producer: %w", err)
	}
	return &KafkaAssessmentPublisher{producer: producer, topic: cfg.Kafka.Topic, log: log}, nil
}

var _ domrepo.Publisher = (*KafkaAssessmentPublisher)(nil)

func (p *KafkaAssessmentPublisher) PublishAssessment(ctx context.Context, region string, resp models.OrchestrationResponse) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(region), resp); err != nil {
		p.log.Error("assessment publish failed",
			logger.String("region", region),
			logger.Error(err))
		return err
	}
	return nil
}

func (p *KafkaAssessmentPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is wired when kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishAssessment(context.Context, string, models.OrchestrationResponse) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }

var _ domrepo.Publisher = NoopPublisher{}
