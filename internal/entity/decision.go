package entity

type Tier string

const (
	TierLow    Tier = "baixa"
	TierMedium Tier = "media"
	TierHigh   Tier = "alta"
	TierUrgent Tier = "urgente"
)

// TierForScore aplica os limiares do maior para o menor.
func TierForScore(score int) Tier {
	switch {
	case score >= 80:
		return TierUrgent
	case score >= 60:
		return TierHigh
	case score >= 35:
		return TierMedium
	default:
		return TierLow
	}
}

// Decision é derivada e nunca persistida.
type Decision struct {
	LeadID           string   `json:"lead_id"`
	Score            int      `json:"score"`
	Tier             Tier     `json:"nivel"`
	Reasons          []string `json:"razoes"`
	NextAction       string   `json:"proxima_acao"`
	SuggestedMessage string   `json:"mensagem_sugerida"`
}
