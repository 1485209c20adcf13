package colorpicker

import "time"

// HealthStatus is the health of the picker or one of its components.
type HealthStatus string

const (
	// HealthOK indicates the component is functioning normally.
	HealthOK HealthStatus = "ok"
	// HealthDegraded indicates partial functionality or non-critical issues.
	HealthDegraded HealthStatus = "degraded"
	// HealthUnhealthy indicates the component is not functioning.
	HealthUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck is the result of Picker.Health.
type HealthCheck struct {
	Status     HealthStatus
	Timestamp  time.Time
	Uptime     time.Duration
	Components map[string]ComponentHealth
	Message    string
}

// ComponentHealth is the health of one component: "instance", "history"
// or "errors".
type ComponentHealth struct {
	Status      HealthStatus
	Message     string
	LastUpdated time.Time
}

// IsHealthy returns true if the overall status is HealthOK.
func (h HealthCheck) IsHealthy() bool {
	return h.Status == HealthOK
}

// IsDegraded returns true if the overall status is HealthDegraded.
func (h HealthCheck) IsDegraded() bool {
	return h.Status == HealthDegraded
}

// IsUnhealthy returns true if the overall status is HealthUnhealthy.
func (h HealthCheck) IsUnhealthy() bool {
	return h.Status == HealthUnhealthy
}
