package application

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"vin-gateway/vehicle/domain"
)

type outcomeCounter struct{ c metric.Int64Counter }

type resultCounter struct{ c metric.Int64Counter }

type rejectCounter struct{ c metric.Int64Counter }

var (
	decodeOutcomes   outcomeCounter
	createResults    resultCounter
	admissionRejects rejectCounter
)

func init() {
	meter := otel.Meter("vin-gateway/vehicle/application")

	var err error

	decodeOutcomes.c, err = meter.Int64Counter(
		"vin_gateway.decode.outcomes",
		metric.WithDescription("Decode requests by outcome"),
	)
	if err != nil {
		log.Fatalf("failed to create decode.outcomes counter: %v", err)
	}

	createResults.c, err = meter.Int64Counter(
		"vin_gateway.vehicle.creates",
		metric.WithDescription("Vehicle creation attempts by result"),
	)
	if err != nil {
		log.Fatalf("failed to create vehicle.creates counter: %v", err)
	}

	admissionRejects.c, err = meter.Int64Counter(
		"vin_gateway.admission.rejected",
		metric.WithDescription("Requests turned away for lack of a free slot"),
	)
	if err != nil {
		log.Fatalf("failed to create admission.rejected counter: %v", err)
	}
}

func (o outcomeCounter) add(ctx context.Context, op string, outcome domain.Outcome) {
	o.c.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", string(outcome)),
	))
}

func (r resultCounter) add(ctx context.Context, result string) {
	r.c.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (r rejectCounter) add(ctx context.Context, pool string) {
	r.c.Add(ctx, 1, metric.WithAttributes(attribute.String("pool", pool)))
}
