package database

import (
	"context"
	"sync"

	"github.com/agenteunico/crm-leads/internal/entity"
)

// MemoryLeadRepository mantém leads e o log de interações em memória.
// Um único RWMutex protege os dois, então append + atualização do
// last_contact_at são vistos juntos pelos leitores.
type MemoryLeadRepository struct {
	mu           sync.RWMutex
	leads        map[string]*entity.Lead
	order        []string
	interactions []*entity.Interaction
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{
		leads: make(map[string]*entity.Lead),
	}
}

func (r *MemoryLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[lead.ID]; !exists {
		r.order = append(r.order, lead.ID)
	}
	r.leads[lead.ID] = lead.Clone()
	return nil
}

// List devolve cópias na ordem de inserção.
func (r *MemoryLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Lead, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.leads[id].Clone())
	}
	return out, nil
}

func (r *MemoryLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	return lead.Clone(), nil
}

func (r *MemoryLeadRepository) AppendInteraction(ctx context.Context, inter *entity.Interaction, touch bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[inter.LeadID]
	if !ok {
		return entity.ErrLeadNotFound
	}

	stored := *inter
	r.interactions = append(r.interactions, &stored)

	if touch {
		at := inter.At
		lead.LastContactAt = &at
	}
	return nil
}

func (r *MemoryLeadRepository) ListInteractions(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entity.Interaction{}
	for _, inter := range r.interactions {
		if inter.LeadID == leadID {
			c := *inter
			out = append(out, &c)
		}
	}
	return out, nil
}
