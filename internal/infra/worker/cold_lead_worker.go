package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/agenteunico/crm-leads/internal/entity"
	"github.com/agenteunico/crm-leads/internal/infra/queue"
)

type ColdLeadSource interface {
	ColdLeads(ctx context.Context, days int) ([]*entity.Lead, error)
}

type Ranker interface {
	Rank(leads []*entity.Lead) []entity.Decision
}

type OutreachPublisher interface {
	PublishOutreach(ctx context.Context, payload queue.OutreachPayload) error
}

// ColdLeadWorker varre periodicamente os leads frios e publica sugestões de
// contato para os que ficaram em nível alta ou urgente.
type ColdLeadWorker struct {
	leads        ColdLeadSource
	ranker       Ranker
	publisher    OutreachPublisher
	days         int
	tickInterval time.Duration
	onPublish    func(entity.Tier)

	mu sync.Mutex
	// lead id -> referência do lead quando a sugestão foi publicada
	published map[string]time.Time
}

func NewColdLeadWorker(leads ColdLeadSource, ranker Ranker, publisher OutreachPublisher, days int, interval time.Duration) *ColdLeadWorker {
	return &ColdLeadWorker{
		leads:        leads,
		ranker:       ranker,
		publisher:    publisher,
		days:         days,
		tickInterval: interval,
		published:    make(map[string]time.Time),
	}
}

// OnPublish registra um callback chamado a cada sugestão publicada.
func (w *ColdLeadWorker) OnPublish(fn func(entity.Tier)) {
	w.onPublish = fn
}

func (w *ColdLeadWorker) Start(ctx context.Context) {
	log.Printf("[COLD-LEADS] worker iniciado (limite %d dias, intervalo %s)", w.days, w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[COLD-LEADS] worker encerrado")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep faz uma varredura e devolve quantas sugestões foram publicadas.
// Um lead só volta a ser publicado depois que a referência dele muda, ou
// seja, depois de um novo contato seguido de outro período frio.
func (w *ColdLeadWorker) Sweep(ctx context.Context) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cold, err := w.leads.ColdLeads(ctx, w.days)
	if err != nil {
		log.Printf("[COLD-LEADS] erro ao buscar leads frios: %v", err)
		return 0
	}

	byID := make(map[string]*entity.Lead, len(cold))
	for _, lead := range cold {
		byID[lead.ID] = lead
	}
	for id := range w.published {
		if _, ok := byID[id]; !ok {
			delete(w.published, id)
		}
	}
	if len(cold) == 0 {
		return 0
	}

	published := 0
	for _, d := range w.ranker.Rank(cold) {
		if d.Tier != entity.TierUrgent && d.Tier != entity.TierHigh {
			continue
		}

		lead := byID[d.LeadID]
		ref := lead.ReferenceTime()
		if last, ok := w.published[lead.ID]; ok && last.Equal(ref) {
			continue
		}

		payload := buildPayload(lead, d)
		if err := w.publisher.PublishOutreach(ctx, payload); err != nil {
			log.Printf("[COLD-LEADS] falha ao publicar lead=%s: %v", d.LeadID, err)
			continue
		}
		w.published[lead.ID] = ref
		if w.onPublish != nil {
			w.onPublish(d.Tier)
		}
		published++
	}

	if published > 0 {
		log.Printf("[COLD-LEADS] %d sugestão(ões) publicada(s) de %d leads frios", published, len(cold))
	}
	return published
}

func buildPayload(lead *entity.Lead, d entity.Decision) queue.OutreachPayload {
	payload := queue.OutreachPayload{
		LeadID:     lead.ID,
		Name:       lead.Name,
		Channel:    lead.Channel,
		Score:      d.Score,
		Tier:       string(d.Tier),
		Reasons:    d.Reasons,
		NextAction: d.NextAction,
		Message:    d.SuggestedMessage,
	}
	if lead.Phone != nil {
		payload.Phone = *lead.Phone
	}
	if lead.Email != nil {
		payload.Email = *lead.Email
	}
	return payload
}
