package submissions

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for submission storage
type Repository interface {
	Record(ctx context.Context, s *Submission) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, filter ListFilter) ([]*Submission, error)
}

// InMemoryRepository keeps submissions for the lifetime of the process.
type InMemoryRepository struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		submissions: make(map[string]*Submission),
	}
}

// Record stores a copy of s.
func (r *InMemoryRepository) Record(ctx context.Context, s *Submission) error {
	if err := s.Validate(); err != nil {
		return err
	}
	cp := *s

	r.mu.Lock()
	r.submissions[cp.ID] = &cp
	r.mu.Unlock()
	return nil
}

// GetByID retrieves a submission by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.submissions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	cp := *s
	return &cp, nil
}

// List returns submissions newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Submission, error) {
	if filter.Status != "" {
		if err := validateStatus(filter.Status); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	var out []*Submission
	for _, s := range r.submissions {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset >= len(out) {
		return []*Submission{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}
