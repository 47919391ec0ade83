package outbox

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer manages one writer per topic, created on first use. It
// only writes to topics named in the topic catalog; a write anywhere
// else is a wiring bug, not a runtime condition to tolerate.
type KafkaProducer struct {
	brokers []string
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates a KafkaProducer.
func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

// WriteMessages writes messages to the given topic.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	if !catalogTopic(topic) {
		return fmt.Errorf("refusing to write to uncatalogued topic %q", topic)
	}
	return p.writerForTopic(topic).WriteMessages(ctx, msgs...)
}

func catalogTopic(topic string) bool {
	for _, known := range topicCatalog {
		if known == topic {
			return true
		}
	}
	return false
}

func (p *KafkaProducer) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Async:        false,
	}
	p.writers[topic] = writer
	return writer
}

// Close releases all writers.
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
