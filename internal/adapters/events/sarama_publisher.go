package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fleet-sim-service/internal/domain"

	"github.com/IBM/sarama"
)

// SaramaPublisher emits completed simulation runs to a Kafka topic as
// JSON messages keyed by result id.
type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSaramaPublisher(brokers []string, topic string) (*SaramaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("sarama publisher: create producer: %w", err)
	}

	log.Printf("Kafka producer ready brokers=%v topic=%s", brokers, topic)
	return &SaramaPublisher{producer: producer, topic: topic}, nil
}

func (p *SaramaPublisher) SimulationCompleted(ctx context.Context, res *domain.SimulationResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("sarama publisher: marshal result: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(res.ID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("sarama publisher: send to %s: %w", p.topic, err)
	}

	return nil
}

func (p *SaramaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) SimulationCompleted(context.Context, *domain.SimulationResult) error {
	return nil
}
