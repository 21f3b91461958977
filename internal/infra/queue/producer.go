package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OutreachPayload é uma sugestão de contato gerada pelo motor de decisão.
type OutreachPayload struct {
	LeadID     string   `json:"lead_id"`
	Name       string   `json:"nome"`
	Channel    string   `json:"canal"`
	Phone      string   `json:"telefone,omitempty"`
	Email      string   `json:"email,omitempty"`
	Score      int      `json:"score"`
	Tier       string   `json:"nivel"`
	Reasons    []string `json:"razoes"`
	NextAction string   `json:"proxima_acao"`
	Message    string   `json:"mensagem_sugerida"`
}

type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishOutreach(ctx context.Context, payload OutreachPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.LeadID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
