package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Garden event types
const (
	PlantSeeded     Type = "garden.plant.seeded"
	PlantBloomed    Type = "garden.plant.bloomed"
	PlantDied       Type = "garden.plant.died"
	PlantAbandoned  Type = "garden.plant.abandoned"
	ProductApplied  Type = "garden.product.applied"
	ProductBought   Type = "garden.product.bought"
	PointsConverted Type = "garden.points.converted"
	HealthLow       Type = "garden.health.low"
)

// AllTypes lists every garden event type, for subscribers that want all of them
var AllTypes = []Type{
	PlantSeeded,
	PlantBloomed,
	PlantDied,
	PlantAbandoned,
	ProductApplied,
	ProductBought,
	PointsConverted,
	HealthLow,
}

// Typed event payloads for type safety

// PlantPayloadV1 describes a plant lifecycle transition
type PlantPayloadV1 struct {
	UserID    string  `json:"user_id"`
	PlantID   string  `json:"plant_id"`
	Health    float64 `json:"health"`
	Badge     string  `json:"badge,omitempty"`
	Reward    int64   `json:"reward,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// ProductAppliedPayloadV1 is the typed payload for product application events
type ProductAppliedPayloadV1 struct {
	UserID    string  `json:"user_id"`
	ProductID string  `json:"product_id"`
	Category  string  `json:"category"`
	Outcome   string  `json:"outcome"`
	Health    float64 `json:"health"`
	Timestamp int64   `json:"timestamp"`
}

// ProductBoughtPayloadV1 is the typed payload for purchase events
type ProductBoughtPayloadV1 struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Amount    int    `json:"amount"`
	Cost      int64  `json:"cost"`
	Timestamp int64  `json:"timestamp"`
}

// PointsConvertedPayloadV1 is the typed payload for currency conversion events
type PointsConvertedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewPlantEvent creates a plant lifecycle event of the given type
func NewPlantEvent(eventType Type, payload PlantPayloadV1) Event {
	if payload.Timestamp == 0 {
		payload.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
	}
}

// NewProductAppliedEvent creates a new product applied event
func NewProductAppliedEvent(userID, productID, category, outcome string, health float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProductApplied,
		Payload: ProductAppliedPayloadV1{
			UserID:    userID,
			ProductID: productID,
			Category:  category,
			Outcome:   outcome,
			Health:    health,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewProductBoughtEvent creates a new product bought event
func NewProductBoughtEvent(userID, productID string, amount int, cost int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProductBought,
		Payload: ProductBoughtPayloadV1{
			UserID:    userID,
			ProductID: productID,
			Amount:    amount,
			Cost:      cost,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPointsConvertedEvent creates a new points converted event
func NewPointsConvertedEvent(userID string, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PointsConverted,
		Payload: PointsConvertedPayloadV1{
			UserID:    userID,
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
