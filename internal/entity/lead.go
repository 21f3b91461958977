package entity

import (
	"context"
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead não encontrado")

// Canal padrão quando o cadastro não informa nenhum.
const DefaultChannel = "whatsapp"

type Lead struct {
	ID            string     `json:"id"`
	Name          string     `json:"nome"`
	Channel       string     `json:"canal"`
	Phone         *string    `json:"telefone"`
	Email         *string    `json:"email,omitempty"`
	Origin        string     `json:"origem,omitempty"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
	LastContactAt *time.Time `json:"last_contact_at"`
}

// ReferenceTime é a base para calcular inatividade: último contato ou criação.
func (l *Lead) ReferenceTime() time.Time {
	if l.LastContactAt != nil {
		return *l.LastContactAt
	}
	return l.CreatedAt
}

// Clone devolve uma cópia sem aliasing de slices ou ponteiros.
func (l *Lead) Clone() *Lead {
	c := *l
	c.Tags = append([]string{}, l.Tags...)
	if l.Phone != nil {
		p := *l.Phone
		c.Phone = &p
	}
	if l.Email != nil {
		e := *l.Email
		c.Email = &e
	}
	if l.LastContactAt != nil {
		t := *l.LastContactAt
		c.LastContactAt = &t
	}
	return &c
}

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	AppendInteraction(ctx context.Context, inter *Interaction, touch bool) error
	ListInteractions(ctx context.Context, leadID string) ([]*Interaction, error)
}
