package models

import "time"

// VersionStatus represents where a workflow version is in its lifecycle.
type VersionStatus string

const (
	VersionStatusLive         VersionStatus = "live"
	VersionStatusExperimental VersionStatus = "experimental"
	VersionStatusArchived     VersionStatus = "archived"
)

// WorkflowVersion is an immutable compiled snapshot of a workflow.
type WorkflowVersion struct {
	ID              string        `json:"id"                        yaml:"id"`
	ParentVersionID *string       `json:"parentVersionId,omitempty" yaml:"parentVersionId,omitempty"`
	Label           string        `json:"label"                     yaml:"label"`
	CreatedAt       time.Time     `json:"createdAt"                 yaml:"createdAt"`
	AeonmiSource    string        `json:"aeonmiSource"              yaml:"aeonmiSource"`
	Status          VersionStatus `json:"status"                    yaml:"status"`
	MetricsSnapshot *KPISnapshot  `json:"metricsSnapshot,omitempty" yaml:"metricsSnapshot,omitempty"`
}

// KPISnapshot captures the measured metrics of a version at a point in time.
type KPISnapshot struct {
	Revenue      float64   `json:"revenue"      yaml:"revenue"`
	Conversion   float64   `json:"conversion"   yaml:"conversion"`
	Throughput   float64   `json:"throughput"   yaml:"throughput"`
	LatencyMsP95 float64   `json:"latencyMsP95" yaml:"latencyMsP95"`
	CapturedAt   time.Time `json:"capturedAt"   yaml:"capturedAt"`
}
