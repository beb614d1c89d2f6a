package indexsync

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"flight-inventory-service/internal/domain"
	"flight-inventory-service/internal/domain/entity"
)

type memoryIndex struct {
	mu   sync.Mutex
	docs map[entity.Kind]map[string]entity.Document
}

func newMemoryIndex() *memoryIndex {
	return &memoryIndex{docs: make(map[entity.Kind]map[string]entity.Document)}
}

func (m *memoryIndex) Upsert(_ context.Context, doc entity.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[doc.Kind] == nil {
		m.docs[doc.Kind] = make(map[string]entity.Document)
	}
	m.docs[doc.Kind][doc.ID] = doc
	return nil
}

func (m *memoryIndex) Remove(_ context.Context, kind entity.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs[kind], id)
	return nil
}

func (m *memoryIndex) Search(_ context.Context, kind entity.Kind, text string, _ int) ([]entity.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Document
	for _, doc := range m.docs[kind] {
		for _, v := range doc.Fields {
			if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), strings.ToLower(text)) {
				out = append(out, doc)
				break
			}
		}
	}
	return out, nil
}

func (m *memoryIndex) IDs(_ context.Context, kind entity.Kind) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.docs[kind]))
	for id := range m.docs[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memoryIndex) get(kind entity.Kind, id string) (entity.Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[kind][id]
	return doc, ok
}

// mapProjector serves documents from an in-memory state the test mutates
type mapProjector struct {
	mu      sync.Mutex
	state   map[string]map[string]interface{}
	refs    map[string][]string
	failFor int
}

func newMapProjector() *mapProjector {
	return &mapProjector{state: make(map[string]map[string]interface{}), refs: make(map[string][]string)}
}

func (p *mapProjector) set(kind entity.Kind, key string, fields map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state[string(kind)+"|"+key] = fields
}

func (p *mapProjector) remove(kind entity.Kind, key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.state, string(kind)+"|"+key)
}

func (p *mapProjector) Project(_ context.Context, kind entity.Kind, key string) (entity.Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFor > 0 {
		p.failFor--
		return entity.Document{}, errors.New("store timeout")
	}
	fields, ok := p.state[string(kind)+"|"+key]
	if !ok {
		return entity.Document{}, domain.ErrNotFound
	}
	copied := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return entity.Document{Kind: kind, ID: key, Fields: copied}, nil
}

func (p *mapProjector) Keys(_ context.Context, kind entity.Kind) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var keys []string
	prefix := string(kind) + "|"
	for id := range p.state {
		if strings.HasPrefix(id, prefix) {
			keys = append(keys, strings.TrimPrefix(id, prefix))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (p *mapProjector) Referencing(_ context.Context, kind entity.Kind, key string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refs[string(kind)+"|"+key], nil
}

// recordingSink records applied changes and fails the first failures calls
type recordingSink struct {
	mu       sync.Mutex
	applied  []Change
	failures int
	calls    int
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Apply(_ context.Context, ch Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures > 0 {
		s.failures--
		return errors.New("sink unavailable")
	}
	s.applied = append(s.applied, ch)
	return nil
}

func (s *recordingSink) changes() []Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Change(nil), s.applied...)
}

func (s *recordingSink) setFailures(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
}
