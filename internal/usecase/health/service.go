package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates the service is operational.
	Healthy Status = "ok"
	// Empty indicates the service is up but the catalog has no items to recommend from.
	Empty Status = "empty"
)

// Report aggregates the health status with catalog statistics.
type Report struct {
	Status     Status
	Items      int
	Dimensions int
	Users      int
}

// Service reports service health.
type Service struct {
	stats StatsReader
}

// New creates a Service.
func New(stats StatsReader) *Service {
	return &Service{stats: stats}
}

// Check builds a health report. The engine is in-memory, so it is always serving;
// an empty catalog is reported but not treated as a failure.
func (s *Service) Check(ctx context.Context) Report {
	st := s.stats.Stats(ctx)
	status := Healthy
	if st.Items == 0 {
		status = Empty
	}
	return Report{
		Status:     status,
		Items:      st.Items,
		Dimensions: st.Dimensions,
		Users:      st.Users,
	}
}
