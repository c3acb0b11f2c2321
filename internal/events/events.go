// Package events defines the pricing facts this service publishes and the
// publisher that wraps them in CloudEvents envelopes.
package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/resort-pms/service-pricing/internal/pkg/kafka"
)

const (
	// TopicPricingEvents carries every pricing fact.
	TopicPricingEvents = "pricing.events"

	// Source identifies this service in CloudEvents envelopes.
	Source = "service-pricing"
)

// Event type identifiers.
const (
	RatesBulkImported     = "pricing.rates.bulk_imported"
	ConfigUpdated         = "pricing.config.updated"
	SeasonSettingsUpdated = "pricing.season.settings_updated"
)

// RatesBulkImportedEvent records the outcome of one bulk rate import.
type RatesBulkImportedEvent struct {
	Schema       string    `json:"schema"` // annual | seasonal | quick_paste_seasonal | quick_paste_single
	Year         int       `json:"year"`
	SuccessCount int       `json:"success_count"`
	ErrorCount   int       `json:"error_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ConfigUpdatedEvent records a pricing config change.
type ConfigUpdatedEvent struct {
	BoatCostPerBooking  float64   `json:"boat_cost_per_booking"`
	BoatPriceAdult      float64   `json:"boat_price_adult"`
	BoatPriceChild      float64   `json:"boat_price_child"`
	ProfitMarginPercent float64   `json:"profit_margin_percent"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// SeasonSettingsUpdatedEvent records a season multiplier change.
type SeasonSettingsUpdatedEvent struct {
	LowPercent  float64   `json:"low_percent"`
	MidPercent  float64   `json:"mid_percent"`
	HighPercent float64   `json:"high_percent"`
	RoundToFive bool      `json:"round_to_five"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher publishes pricing events. Publishing is best effort: failures are
// logged, never surfaced to the request that triggered them.
type Publisher struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewPublisher creates a Publisher over the given producer.
func NewPublisher(producer *kafka.Producer, logger *zap.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

// Publish wraps data in a CloudEvents envelope and sends it to the pricing
// topic.
func (p *Publisher) Publish(ctx context.Context, eventType string, data interface{}) {
	if p == nil || p.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(Source, eventType, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, TopicPricingEvents, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicPricingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
