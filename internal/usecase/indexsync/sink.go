package indexsync

import (
	"context"
	"time"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"github.com/google/uuid"
)

// Change is one resolved change ready to be applied. Document is nil for deletes.
type Change struct {
	Kind     entity.Kind
	Key      string
	Op       entity.ChangeOp
	Document *entity.Document
}

// Sink receives resolved changes. Apply must be idempotent.
type Sink interface {
	Name() string
	Apply(ctx context.Context, ch Change) error
}

// IndexSink mirrors changes into the search index
type IndexSink struct {
	index repository.SearchIndex
}

func NewIndexSink(index repository.SearchIndex) *IndexSink {
	return &IndexSink{index: index}
}

func (s *IndexSink) Name() string { return "search_index" }

func (s *IndexSink) Apply(ctx context.Context, ch Change) error {
	if ch.Op == entity.ChangeDelete {
		return s.index.Remove(ctx, ch.Kind, ch.Key)
	}
	return s.index.Upsert(ctx, *ch.Document)
}

// CacheSink drops the cached entity on every change
type CacheSink struct {
	cache repository.EntityCache
}

func NewCacheSink(cache repository.EntityCache) *CacheSink {
	return &CacheSink{cache: cache}
}

func (s *CacheSink) Name() string { return "cache" }

func (s *CacheSink) Apply(ctx context.Context, ch Change) error {
	return s.cache.Invalidate(ctx, ch.Kind, ch.Key)
}

// FeedSink publishes every change on the change feed
type FeedSink struct {
	feed repository.ChangeFeed
	now  func() time.Time
}

func NewFeedSink(feed repository.ChangeFeed) *FeedSink {
	return &FeedSink{feed: feed, now: time.Now}
}

func (s *FeedSink) Name() string { return "change_feed" }

func (s *FeedSink) Apply(ctx context.Context, ch Change) error {
	event := entity.ChangeEvent{
		ID:         uuid.NewString(),
		Kind:       ch.Kind,
		Key:        ch.Key,
		Op:         ch.Op,
		OccurredAt: s.now().UTC(),
	}
	if ch.Document != nil {
		event.Fields = ch.Document.Fields
	}
	return s.feed.Publish(ctx, event)
}
