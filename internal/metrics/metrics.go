package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	usersCreated       metric.Int64Counter
	assignmentsCreated metric.Int64Counter
	assignmentsGraded  metric.Int64Counter
	assignmentsViewed  metric.Int64Counter
	gradesViewed       metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.usersCreated, err = meter.Int64Counter(
		"assignment_service.users.created",
		metric.WithDescription("Total number of users created"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, err
	}

	m.assignmentsCreated, err = meter.Int64Counter(
		"assignment_service.assignments.created",
		metric.WithDescription("Total number of assignments submitted"),
		metric.WithUnit("{assignment}"),
	)
	if err != nil {
		return nil, err
	}

	m.assignmentsGraded, err = meter.Int64Counter(
		"assignment_service.assignments.graded",
		metric.WithDescription("Total number of assignments graded"),
		metric.WithUnit("{assignment}"),
	)
	if err != nil {
		return nil, err
	}

	m.assignmentsViewed, err = meter.Int64Counter(
		"assignment_service.assignments.viewed",
		metric.WithDescription("Total number of assignment reads"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.gradesViewed, err = meter.Int64Counter(
		"assignment_service.grades.viewed",
		metric.WithDescription("Total number of grade list reads"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordUserCreated(ctx context.Context) {
	if m != nil && m.usersCreated != nil {
		m.usersCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordAssignmentCreated(ctx context.Context) {
	if m != nil && m.assignmentsCreated != nil {
		m.assignmentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordAssignmentGraded(ctx context.Context) {
	if m != nil && m.assignmentsGraded != nil {
		m.assignmentsGraded.Add(ctx, 1)
	}
}

func (m *Metrics) RecordAssignmentViewed(ctx context.Context) {
	if m != nil && m.assignmentsViewed != nil {
		m.assignmentsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordGradesViewed(ctx context.Context) {
	if m != nil && m.gradesViewed != nil {
		m.gradesViewed.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
