package usecase

import (
	"fmt"
	"slices"
	"time"

	"github.com/agenteunico/crm-leads/internal/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const secondsPerDay = 86400

// DecisionService é o motor de priorização por heurísticas aditivas.
// Cada regra aplicada deixa uma razão legível, na ordem em que foi avaliada.
type DecisionService struct {
	Clock Clock
}

func NewDecisionService(clock Clock) *DecisionService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DecisionService{Clock: clock}
}

func (s *DecisionService) ScoreLead(lead *entity.Lead) entity.Decision {
	return scoreAt(lead, s.Clock.Now())
}

// Rank pontua todos os leads com o mesmo instante e ordena por score
// decrescente. Empates mantêm a ordem de entrada.
func (s *DecisionService) Rank(leads []*entity.Lead) []entity.Decision {
	now := s.Clock.Now()

	decisions := make([]entity.Decision, 0, len(leads))
	for _, lead := range leads {
		decisions = append(decisions, scoreAt(lead, now))
	}

	slices.SortStableFunc(decisions, func(a, b entity.Decision) int {
		return b.Score - a.Score
	})
	return decisions
}

// daysIdle trunca os segundos decorridos em dias inteiros (não é diferença
// de calendário).
func daysIdle(ref, now time.Time) int {
	elapsed := int64(now.Sub(ref) / time.Second)
	return int(elapsed / secondsPerDay)
}

func scoreAt(lead *entity.Lead, now time.Time) entity.Decision {
	var reasons []string
	score := 0

	dias := daysIdle(lead.ReferenceTime(), now)

	switch {
	case dias >= 45:
		score += 50
		reasons = append(reasons, fmt.Sprintf("%d dias sem contato (muito tempo)", dias))
	case dias >= 30:
		score += 35
		reasons = append(reasons, fmt.Sprintf("%d dias sem contato", dias))
	case dias >= 14:
		score += 20
		reasons = append(reasons, fmt.Sprintf("%d dias sem contato (atenção)", dias))
	default:
		score += 5
		reasons = append(reasons, fmt.Sprintf("%d dias sem contato", dias))
	}

	tags := tagSet(lead.Tags)
	if tags["recorrente"] {
		score += 20
		reasons = append(reasons, "tag: recorrente (alto LTV)")
	}
	if tags["vip"] {
		score += 15
		reasons = append(reasons, "tag: vip (prioridade)")
	}
	if tags["quente"] {
		score += 10
		reasons = append(reasons, "tag: quente (intenção)")
	}
	if tags["barbearia"] || tags["corte"] {
		score += 8
		reasons = append(reasons, "tag: serviço recorrente (barbearia/corte)")
	}
	if tags["indicacao"] || tags["indicação"] {
		score += 6
		reasons = append(reasons, "tag: indicação (rede)")
	}

	if lower(lead.Channel) == "whatsapp" {
		score += 5
		reasons = append(reasons, "canal: WhatsApp (alta resposta)")
	}

	tier := entity.TierForScore(score)
	action, message := suggestionFor(tier, lead.Name)

	return entity.Decision{
		LeadID:           lead.ID,
		Score:            score,
		Tier:             tier,
		Reasons:          reasons,
		NextAction:       action,
		SuggestedMessage: message,
	}
}

func suggestionFor(tier entity.Tier, name string) (string, string) {
	if name == "" {
		name = greetingFallback
	}
	first := firstName(name)

	switch tier {
	case entity.TierUrgent, entity.TierHigh:
		return "Enviar lembrete de retorno com horários", fmt.Sprintf(
			"Oi %s! Tudo certo? 😊\n"+
				"Essa semana abriu uns horários bem bons.\n"+
				"Quer que eu te mande as opções?",
			first,
		)
	case entity.TierMedium:
		return "Reativar conversa (check-in leve)", fmt.Sprintf(
			"Oi %s! Passando só pra saber como você está 😊\n"+
				"Se quiser, posso te mandar horários disponíveis essa semana.",
			first,
		)
	default:
		return "Acompanhar e marcar para nova checagem", fmt.Sprintf(
			"Oi %s! Tudo certo?\n"+
				"Quando você quiser, posso te mandar horários disponíveis. 😊",
			first,
		)
	}
}

func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[lower(t)] = true
	}
	return set
}

// cases.Caser guarda estado, então cada chamada usa o seu.
func lower(s string) string {
	return cases.Lower(language.BrazilianPortuguese).String(s)
}
