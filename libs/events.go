package libs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventCatalogChanged     = "catalog.changed"
)

type Event struct {
	Type    string
	Key     string
	Payload interface{}
}

type envelope struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// CatalogChange is the payload of EventCatalogChanged.
type CatalogChange struct {
	Entity string `json:"entity"`
	ID     int64  `json:"id"`
	Action string `json:"action"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close()
}

// deliveryTimeout bounds how long a buffered record is retried before its
// delivery callback reports a failure.
const deliveryTimeout = 15 * time.Second

// KafkaPublisher produces asynchronously: Publish only buffers the record and
// delivery errors are logged from the produce callback.
type KafkaPublisher struct {
	cl           *kgo.Client
	ordersTopic  string
	catalogTopic string
	log          *zap.Logger
}

func NewKafkaPublisher(brokers []string, ordersTopic, catalogTopic string, log *zap.Logger) (*KafkaPublisher, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerLinger(10*time.Millisecond),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.RecordDeliveryTimeout(deliveryTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &KafkaPublisher{
		cl:           cl,
		ordersTopic:  ordersTopic,
		catalogTopic: catalogTopic,
		log:          log,
	}, nil
}

func (p *KafkaPublisher) topicFor(eventType string) string {
	if strings.HasPrefix(eventType, "order.") {
		return p.ordersTopic
	}
	return p.catalogTopic
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(envelope{Type: ev.Type, OccurredAt: time.Now().UTC(), Payload: ev.Payload})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	rec := &kgo.Record{
		Topic:   p.topicFor(ev.Type),
		Key:     []byte(ev.Key),
		Value:   value,
		Headers: []kgo.RecordHeader{{Key: "event-type", Value: []byte(ev.Type)}},
	}
	// The record outlives the request that produced it.
	p.cl.TryProduce(context.WithoutCancel(ctx), rec, func(r *kgo.Record, err error) {
		if err != nil {
			p.log.Warn("failed to deliver event",
				zap.String("type", ev.Type), zap.String("topic", r.Topic), zap.String("key", ev.Key), zap.Error(err))
		}
	})
	return nil
}

func (p *KafkaPublisher) Close() {
	p.log.Info("closing kafka producer...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.cl.Flush(ctx); err != nil {
		p.log.Warn("kafka producer flush incomplete", zap.Error(err))
	}
	p.cl.Close()
	p.log.Info("kafka producer is closed")
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() {}
