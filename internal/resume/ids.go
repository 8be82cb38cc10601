package resume

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource issues identifiers for list entries. Identifiers only need to be
// stable across edits within one session; they are used for list
// reconciliation, not as global keys.
type IDSource interface {
	NewID() string
}

type uuidSource struct{}

func (uuidSource) NewID() string {
	return uuid.New().String()
}

// NewIDSource returns the UUID-backed production source.
func NewIDSource() IDSource {
	return uuidSource{}
}

// SequenceSource issues deterministic counter-based identifiers. Intended for
// tests and fixtures.
type SequenceSource struct {
	prefix  string
	counter uint64
}

// NewSequenceSource creates a SequenceSource with the given prefix.
func NewSequenceSource(prefix string) *SequenceSource {
	return &SequenceSource{prefix: prefix}
}

func (s *SequenceSource) NewID() string {
	id := atomic.AddUint64(&s.counter, 1)
	return fmt.Sprintf("%s-%d", s.prefix, id)
}

// AssignIDs fills in missing entry identifiers across all list sections.
// Existing identifiers are left untouched so edits keep their entries stable.
func AssignIDs(data *Data, ids IDSource) {
	for i := range data.WorkExperience {
		if data.WorkExperience[i].ID == "" {
			data.WorkExperience[i].ID = ids.NewID()
		}
	}
	for i := range data.Education {
		if data.Education[i].ID == "" {
			data.Education[i].ID = ids.NewID()
		}
	}
	for i := range data.Certifications {
		if data.Certifications[i].ID == "" {
			data.Certifications[i].ID = ids.NewID()
		}
	}
	for i := range data.References {
		if data.References[i].ID == "" {
			data.References[i].ID = ids.NewID()
		}
	}
}
