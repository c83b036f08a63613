// Package publisher streams persisted verification results to Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"numcheck/internal/verification/models"
)

const produceTimeout = 5 * time.Second

// ResultEvent is the record value written for each result.
type ResultEvent struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	Address   string    `json:"address"`
	Outcome   string    `json:"outcome"`
	Status    string    `json:"status"`
	CheckedAt time.Time `json:"checked_at"`
}

// Kafka produces one record per persisted result, keyed by address so all
// checks of a number land on the same partition.
type Kafka struct {
	client *kgo.Client
	topic  string
}

// NewKafka connects to brokers and makes sure topic exists.
func NewKafka(ctx context.Context, brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, kadm.NewClient(client), topic); err != nil {
		client.Close()
		return nil, err
	}
	return &Kafka{client: client, topic: topic}, nil
}

func ensureTopic(ctx context.Context, adm *kadm.Client, topic string) error {
	resp, err := adm.CreateTopics(ctx, 1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Publish writes rec synchronously.
func (k *Kafka) Publish(ctx context.Context, rec models.Record) error {
	value, err := json.Marshal(ResultEvent{
		ID:        rec.ID,
		Number:    rec.RawNumber,
		Address:   rec.Address,
		Outcome:   string(rec.Outcome),
		Status:    rec.Outcome.Label(),
		CheckedAt: rec.CheckedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal result event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, produceTimeout)
	defer cancel()

	record := &kgo.Record{Topic: k.topic, Key: []byte(rec.Address), Value: value}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce result %d: %w", rec.ID, err)
	}
	return nil
}

// Close flushes and closes the client.
func (k *Kafka) Close() {
	k.client.Close()
}
