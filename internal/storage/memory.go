package storage

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/inkwellhq/resumepress/internal/resume"
)

// MemoryStore keeps everything in a map. Used by tests and the --memory dev
// mode; nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	logger *log.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *log.Logger) *MemoryStore {
	return &MemoryStore{values: make(map[string]string), logger: logger}
}

func (s *MemoryStore) get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) set(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}

// SaveResume stores the resume content.
func (s *MemoryStore) SaveResume(ctx context.Context, data resume.Data) error {
	_ = ctx
	raw, err := encodeJSON(data)
	if err != nil {
		return err
	}
	s.set(keyResumeData, raw)
	return nil
}

// LoadResume returns the stored resume, or absent.
func (s *MemoryStore) LoadResume(ctx context.Context) (resume.Data, bool, error) {
	_ = ctx
	raw, ok := s.get(keyResumeData)
	if !ok {
		return resume.Data{}, false, nil
	}
	var data resume.Data
	if !decodeJSON(s.logger, keyResumeData, raw, &data) {
		return resume.Data{}, false, nil
	}
	return data, true, nil
}

// SaveCustomization stores the customization record.
func (s *MemoryStore) SaveCustomization(ctx context.Context, c resume.Customization) error {
	_ = ctx
	raw, err := encodeJSON(c)
	if err != nil {
		return err
	}
	s.set(keyCustomization, raw)
	return nil
}

// LoadCustomization returns the stored customization, or absent.
func (s *MemoryStore) LoadCustomization(ctx context.Context) (resume.Customization, bool, error) {
	_ = ctx
	raw, ok := s.get(keyCustomization)
	if !ok {
		return resume.Customization{}, false, nil
	}
	var c resume.Customization
	if !decodeJSON(s.logger, keyCustomization, raw, &c) {
		return resume.Customization{}, false, nil
	}
	return c, true, nil
}

// MarkPaymentCompleted records the payment sentinel.
func (s *MemoryStore) MarkPaymentCompleted(ctx context.Context) error {
	_ = ctx
	s.set(keyPayment, paymentSentinel)
	return nil
}

// PaymentCompleted reports whether the sentinel is present.
func (s *MemoryStore) PaymentCompleted(ctx context.Context) (bool, error) {
	_ = ctx
	raw, ok := s.get(keyPayment)
	return ok && raw == paymentSentinel, nil
}

// ClearPayment removes the sentinel.
func (s *MemoryStore) ClearPayment(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	delete(s.values, keyPayment)
	s.mu.Unlock()
	return nil
}
