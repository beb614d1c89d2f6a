package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"github.com/twmb/franz-go/pkg/kgo"
)

// RecordProducer is the part of *kgo.Client the change feed uses
type RecordProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaChangeFeed implements ChangeFeed by producing JSON records to one topic,
// keyed by kind and business key so a key's events stay in one partition.
type KafkaChangeFeed struct {
	producer RecordProducer
	topic    string
}

// NewKafkaChangeFeed creates a new Kafka change feed
func NewKafkaChangeFeed(producer RecordProducer, topic string) repository.ChangeFeed {
	return &KafkaChangeFeed{
		producer: producer,
		topic:    topic,
	}
}

// Publish produces the event and waits for the broker acknowledgement
func (f *KafkaChangeFeed) Publish(ctx context.Context, event entity.ChangeEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode change event %s: %w", event.ID, err)
	}

	record := &kgo.Record{
		Topic: f.topic,
		Key:   []byte(string(event.Kind) + "|" + event.Key),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "op", Value: []byte(event.Op)},
		},
	}
	if err := f.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce change event %s: %w", event.ID, err)
	}
	return nil
}
