package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/agenteunico/crm-leads/internal/entity"
	"github.com/google/uuid"
)

const (
	DefaultColdLeadDays = 30

	// Acima disso o corte já fica milhões de anos no passado.
	maxColdLeadDays = 1_000_000_000

	// Fragmento usado quando o lead não tem nome.
	greetingFallback = "tudo bem"
)

type CRMService struct {
	Repo  entity.LeadRepository
	Clock Clock
	NewID func() string
}

func NewCRMService(repo entity.LeadRepository, clock Clock) *CRMService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CRMService{
		Repo:  repo,
		Clock: clock,
		NewID: func() string { return uuid.New().String() },
	}
}

func (s *CRMService) CreateLead(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	channel := input.Channel
	if channel == "" {
		channel = entity.DefaultChannel
	}
	lead := &entity.Lead{
		ID:        s.NewID(),
		Name:      input.Name,
		Channel:   channel,
		Phone:     input.Phone,
		Email:     input.Email,
		Origin:    input.Origin,
		Tags:      append([]string{}, input.Tags...),
		CreatedAt: s.Clock.Now(),
	}

	if err := s.Repo.Create(ctx, lead); err != nil {
		return nil, newStorageError("create lead", err)
	}

	log.Printf("[CRM] lead criado id=%s canal=%s tags=%v", lead.ID, lead.Channel, lead.Tags)
	return lead.Clone(), nil
}

func (s *CRMService) ListLeads(ctx context.Context) ([]*entity.Lead, error) {
	leads, err := s.Repo.List(ctx)
	if err != nil {
		return nil, newStorageError("list leads", err)
	}
	return leads, nil
}

func (s *CRMService) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, newNotFoundError(id)
		}
		return nil, newStorageError("find lead", err)
	}
	return lead, nil
}

// RecordInteraction registra o evento e, para tipos de contato, move o
// last_contact_at do lead para o instante da interação.
func (s *CRMService) RecordInteraction(ctx context.Context, leadID, tipo, note string) (*entity.Interaction, error) {
	inter := &entity.Interaction{
		ID:     s.NewID(),
		LeadID: leadID,
		Type:   tipo,
		Note:   note,
		At:     s.Clock.Now(),
	}

	touch := entity.CountsAsContact(tipo)
	if err := s.Repo.AppendInteraction(ctx, inter, touch); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, newNotFoundError(leadID)
		}
		return nil, newStorageError("append interaction", err)
	}

	log.Printf("[CRM] interação %s registrada lead=%s contato=%t", tipo, leadID, touch)
	return inter, nil
}

func (s *CRMService) ListInteractions(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	if _, err := s.GetLead(ctx, leadID); err != nil {
		return nil, err
	}
	items, err := s.Repo.ListInteractions(ctx, leadID)
	if err != nil {
		return nil, newStorageError("list interactions", err)
	}
	return items, nil
}

func (s *CRMService) LastActivity(ctx context.Context, leadID string) (*time.Time, error) {
	lead, err := s.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return lead.LastContactAt, nil
}

// ColdLeads devolve os leads cuja referência (último contato ou criação) é
// anterior a now - days, do mais antigo para o mais recente.
func (s *CRMService) ColdLeads(ctx context.Context, days int) ([]*entity.Lead, error) {
	leads, err := s.ListLeads(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := coldCutoff(s.Clock.Now(), days)

	cold := make([]*entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.ReferenceTime().Before(cutoff) {
			cold = append(cold, lead)
		}
	}

	slices.SortStableFunc(cold, func(a, b *entity.Lead) int {
		return a.ReferenceTime().Compare(b.ReferenceTime())
	})
	return cold, nil
}

// coldCutoff subtrai dias de calendário em vez de uma time.Duration, que
// estoura a partir de ~106 mil dias.
func coldCutoff(now time.Time, days int) time.Time {
	if days > maxColdLeadDays {
		days = maxColdLeadDays
	}
	return now.AddDate(0, 0, -days)
}

func (s *CRMService) ReminderSuggestion(lead *entity.Lead) string {
	name := greetingFallback
	if lead.Name != "" {
		name = firstName(lead.Name)
	}
	return fmt.Sprintf(
		"Oi %s! Tudo certo? 😊\n"+
			"Passando pra te avisar que essa semana tem horários legais disponíveis.\n"+
			"Quer que eu te mande as opções?",
		name,
	)
}

// firstName pega o trecho antes do primeiro espaço.
func firstName(name string) string {
	first, _, _ := strings.Cut(name, " ")
	return first
}
