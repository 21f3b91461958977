package entity

import "time"

const (
	InteractionMessageSent = "mensagem_enviada"
	InteractionReply       = "resposta"
	InteractionAppointment = "agendamento"
	InteractionPurchase    = "compra"
	InteractionNote        = "nota"
)

type Interaction struct {
	ID     string    `json:"id"`
	LeadID string    `json:"lead_id"`
	Type   string    `json:"tipo"`
	Note   string    `json:"note"`
	At     time.Time `json:"at"`
}

// CountsAsContact diz se o tipo reinicia o relógio de "lead frio".
// Notas internas ficam no histórico mas não mascaram a inatividade.
func CountsAsContact(tipo string) bool {
	switch tipo {
	case InteractionMessageSent, InteractionReply, InteractionAppointment, InteractionPurchase:
		return true
	}
	return false
}
