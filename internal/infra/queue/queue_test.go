package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

type MockWhatsApp struct {
	mock.Mock
}

func (m *MockWhatsApp) SendText(ctx context.Context, phone, body string) error {
	return m.Called(ctx, phone, body).Error(0)
}

type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendOutreach(to, name, body string) error {
	return m.Called(to, name, body).Error(0)
}

type fakeAcker struct {
	mu       sync.Mutex
	acks     int
	nacks    int
	requeued bool
}

func (a *fakeAcker) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks++
	return nil
}

func (a *fakeAcker) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks++
	a.requeued = a.requeued || requeue
	return nil
}

func (a *fakeAcker) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcker) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acks, a.nacks
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
}

func (c *fakeConsumer) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return c.deliveries, nil
}

func samplePayload() OutreachPayload {
	return OutreachPayload{
		LeadID:     "l-1",
		Name:       "Tiago Campos",
		Channel:    "whatsapp",
		Phone:      "+5511987654321",
		Score:      90,
		Tier:       "urgente",
		Reasons:    []string{"50 dias sem contato (muito tempo)"},
		NextAction: "Enviar lembrete de retorno com horários",
		Message:    "Oi Tiago!",
	}
}

func TestPublishOutreach(t *testing.T) {
	pub := new(MockPublisher)
	payload := samplePayload()

	pub.On("PublishWithContext", mock.Anything, ExchangeName, RoutingKey, false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var got OutreachPayload
			if err := json.Unmarshal(msg.Body, &got); err != nil {
				return false
			}
			return msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp.Persistent &&
				msg.MessageId == "l-1" &&
				got.LeadID == "l-1" && got.Score == 90
		}),
	).Return(nil)

	err := NewProducer(pub).PublishOutreach(context.Background(), payload)

	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestPublishOutreachError(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	err := NewProducer(pub).PublishOutreach(context.Background(), samplePayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestDispatchWhatsApp(t *testing.T) {
	wa := new(MockWhatsApp)
	wa.On("SendText", mock.Anything, "+5511987654321", "Oi Tiago!").Return(nil)

	w := NewWorker(nil, wa, new(MockEmail))

	require.NoError(t, w.Dispatch(context.Background(), samplePayload()))
	wa.AssertExpectations(t)
}

func TestDispatchEmail(t *testing.T) {
	em := new(MockEmail)
	em.On("SendOutreach", "tiago@x.com", "Tiago Campos", "Oi Tiago!").Return(nil)

	payload := samplePayload()
	payload.Channel = "Email"
	payload.Email = "tiago@x.com"

	w := NewWorker(nil, new(MockWhatsApp), em)

	require.NoError(t, w.Dispatch(context.Background(), payload))
	em.AssertExpectations(t)
}

func TestDispatchMissingRecipient(t *testing.T) {
	w := NewWorker(nil, new(MockWhatsApp), new(MockEmail))

	payload := samplePayload()
	payload.Phone = ""
	assert.ErrorIs(t, w.Dispatch(context.Background(), payload), ErrMissingRecipient)

	payload.Channel = "email"
	assert.ErrorIs(t, w.Dispatch(context.Background(), payload), ErrMissingRecipient)
}

func TestDispatchUnknownChannelIsIgnored(t *testing.T) {
	wa := new(MockWhatsApp)
	em := new(MockEmail)
	w := NewWorker(nil, wa, em)

	payload := samplePayload()
	payload.Channel = "instagram"

	assert.NoError(t, w.Dispatch(context.Background(), payload))
	wa.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
	em.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkerAcksAndNacks(t *testing.T) {
	wa := new(MockWhatsApp)
	wa.On("SendText", mock.Anything, "+5511987654321", mock.Anything).Return(nil).Once()
	wa.On("SendText", mock.Anything, "+5511000000000", mock.Anything).Return(errors.New("api down")).Once()

	ok, _ := json.Marshal(samplePayload())
	failing := samplePayload()
	failing.Phone = "+5511000000000"
	bad, _ := json.Marshal(failing)

	acker := &fakeAcker{}
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery, 3)}
	consumer.deliveries <- amqp.Delivery{Acknowledger: acker, Body: ok}
	consumer.deliveries <- amqp.Delivery{Acknowledger: acker, Body: []byte("{not json")}
	consumer.deliveries <- amqp.Delivery{Acknowledger: acker, Body: bad}
	close(consumer.deliveries)

	w := NewWorker(consumer, wa, new(MockEmail))

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background(), QueueName) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker não terminou")
	}

	acks, nacks := acker.counts()
	assert.Equal(t, 1, acks)
	assert.Equal(t, 2, nacks)
	assert.False(t, acker.requeued)
	wa.AssertExpectations(t)
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery)}
	w := NewWorker(consumer, new(MockWhatsApp), new(MockEmail))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx, QueueName) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker não respeitou o cancelamento")
	}
}
