package metrics

import (
	"context"

	"github.com/osse101/PlantTycoon_Go/internal/event"
	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// EventMetricsCollector subscribes to garden events and records business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all garden events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent updates metrics for a single event
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PlantSeeded, event.PlantBloomed, event.PlantDied, event.PlantAbandoned, event.HealthLow:
		var p event.PlantPayloadV1
		if p, err = event.DecodePayload[event.PlantPayloadV1](evt.Payload); err == nil {
			recordPlant(evt.Type, p)
		}

	case event.ProductApplied:
		var p event.ProductAppliedPayloadV1
		if p, err = event.DecodePayload[event.ProductAppliedPayloadV1](evt.Payload); err == nil {
			Interventions.WithLabelValues(p.ProductID, p.Category, p.Outcome).Inc()
		}

	case event.ProductBought:
		var p event.ProductBoughtPayloadV1
		if p, err = event.DecodePayload[event.ProductBoughtPayloadV1](evt.Payload); err == nil {
			ProductsBought.WithLabelValues(p.ProductID).Add(float64(p.Amount))
			PointsSpent.Add(float64(p.Cost))
		}

	case event.PointsConverted:
		var p event.PointsConvertedPayloadV1
		if p, err = event.DecodePayload[event.PointsConvertedPayloadV1](evt.Payload); err == nil {
			PointsConverted.Add(float64(p.Amount))
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func recordPlant(t event.Type, p event.PlantPayloadV1) {
	switch t {
	case event.PlantSeeded:
		PlantsSeeded.WithLabelValues(p.PlantID).Inc()
	case event.PlantBloomed:
		PlantsResolved.WithLabelValues(p.PlantID, OutcomeBloomed).Inc()
	case event.PlantDied:
		PlantsResolved.WithLabelValues(p.PlantID, OutcomeDied).Inc()
	case event.PlantAbandoned:
		PlantsResolved.WithLabelValues(p.PlantID, OutcomeAbandoned).Inc()
	case event.HealthLow:
		LowHealthAlerts.WithLabelValues(p.PlantID).Inc()
	}
}
