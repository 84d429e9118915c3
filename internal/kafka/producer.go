package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventProducer receives a notification after every successful mutation.
// Delivery is fire-and-forget: a broker outage must not fail the mutation.
type EventProducer interface {
	Emit(action, taskID string, count int)
}

type event struct {
	Action string    `json:"action"`
	TaskID string    `json:"taskId,omitempty"`
	Count  int       `json:"count"`
	At     time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Producer) Emit(action, taskID string, count int) {
	now := time.Now()
	value, err := json.Marshal(event{Action: action, TaskID: taskID, Count: count, At: now})
	if err != nil {
		log.Println("failed to marshal kafka event:", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(now.Format(time.RFC3339Nano)),
		Value: value,
		Time:  now,
	}

	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		log.Println("failed to write kafka message:", err)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NoopProducer is used when no broker is configured.
type NoopProducer struct{}

func (NoopProducer) Emit(action, taskID string, count int) {}

var (
	_ EventProducer = (*Producer)(nil)
	_ EventProducer = NoopProducer{}
)
