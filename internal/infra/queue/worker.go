package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrMissingRecipient = errors.New("lead sem destinatário para o canal")

type WhatsAppSender interface {
	SendText(ctx context.Context, phone, body string) error
}

type EmailSender interface {
	SendOutreach(to, name, body string) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel  Consumer
	WhatsApp WhatsAppSender
	Email    EmailSender
}

func NewWorker(ch Consumer, whatsapp WhatsAppSender, email EmailSender) *Worker {
	return &Worker{
		Channel:  ch,
		WhatsApp: whatsapp,
		Email:    email,
	}
}

// Start consome a fila até o contexto ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // ack manual
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf("[WORKER] aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("[WORKER] encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Println("[WORKER] canal de entrega fechado")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload OutreachPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Printf("[WORKER] JSON inválido: %s", err)
		d.Nack(false, false)
		return
	}

	if err := w.Dispatch(ctx, payload); err != nil {
		log.Printf("[WORKER] falha no envio lead=%s canal=%s: %s", payload.LeadID, payload.Channel, err)
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}

// Dispatch roteia pelo canal do lead. Canais sem integração são apenas
// registrados em log.
func (w *Worker) Dispatch(ctx context.Context, payload OutreachPayload) error {
	switch strings.ToLower(payload.Channel) {
	case "whatsapp":
		if payload.Phone == "" {
			return ErrMissingRecipient
		}
		return w.WhatsApp.SendText(ctx, payload.Phone, payload.Message)

	case "email":
		if payload.Email == "" {
			return ErrMissingRecipient
		}
		return w.Email.SendOutreach(payload.Email, payload.Name, payload.Message)

	default:
		log.Printf("[WORKER] canal sem integração: %s (lead %s). Apenas logando.", payload.Channel, payload.LeadID)
		return nil
	}
}
