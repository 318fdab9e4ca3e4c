package models

// KPI is the metric an evolution experiment optimizes.
type KPI string

const (
	KPIRevenue    KPI = "revenue"
	KPIConversion KPI = "conversion"
	KPIThroughput KPI = "throughput"
)

// EvolutionPolicy controls how variants of a workflow are spun and A/B tested.
type EvolutionPolicy struct {
	Enabled     bool                 `json:"enabled"     yaml:"enabled"`
	MaxVariants int                  `json:"maxVariants" yaml:"maxVariants" validate:"min=0"`
	KPIPrimary  KPI                  `json:"kpiPrimary"  yaml:"kpiPrimary"  validate:"omitempty,oneof=revenue conversion throughput"`
	Constraints EvolutionConstraints `json:"constraints" yaml:"constraints"`
}

// EvolutionConstraints bound what a variant may do.
type EvolutionConstraints struct {
	MustUseQubeSecurity   bool     `json:"mustUseQubeSecurity"             yaml:"mustUseQubeSecurity"`
	MaxLatencyMs          *float64 `json:"maxLatencyMs,omitempty"          yaml:"maxLatencyMs,omitempty"          validate:"omitempty,gt=0"`
	ForbiddenIntegrations []string `json:"forbiddenIntegrations,omitempty" yaml:"forbiddenIntegrations,omitempty"`
}
