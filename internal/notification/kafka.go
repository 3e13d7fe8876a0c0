package notification

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// KafkaEmitter publishes events to a Kafka topic, keyed by kind so
// consumers interested in one event family read a single partition set.
type KafkaEmitter struct {
	writer *kafka.Writer
}

func NewKafkaEmitter(brokers []string, topic string) *KafkaEmitter {
	return &KafkaEmitter{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (e *KafkaEmitter) Emit(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return e.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Kind),
		Value: value,
	})
}

func (e *KafkaEmitter) Close() error {
	return e.writer.Close()
}
