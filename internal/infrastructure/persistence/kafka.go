package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaOptions configures the change feed producer
type KafkaOptions struct {
	Brokers  string
	ClientID string
	Topic    string
}

// NewKafkaClient creates a producer client for the change feed topic and checks broker reachability
func NewKafkaClient(ctx context.Context, opts KafkaOptions) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(opts.Brokers, ",")...),
		kgo.ClientID(opts.ClientID),
		kgo.DefaultProduceTopic(opts.Topic),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.RecordRetries(5),
		kgo.DialTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping kafka %s: %w", opts.Brokers, err)
	}
	return client, nil
}
