package domain

// WBSStatus is the authored status of a WBS item. Parents derive an
// AggregatedStatus from their children instead.
type WBSStatus string

const (
	WBSNotStarted WBSStatus = "not_started"
	WBSInProgress WBSStatus = "in_progress"
	WBSDelayed    WBSStatus = "delayed"
	WBSCompleted  WBSStatus = "completed"
	WBSCancelled  WBSStatus = "cancelled"
)

// AggregatedStatus is the derived status of a parent node: the five authored
// values plus "mixed" for heterogeneous child sets.
type AggregatedStatus string

const (
	AggNotStarted AggregatedStatus = "not_started"
	AggInProgress AggregatedStatus = "in_progress"
	AggDelayed    AggregatedStatus = "delayed"
	AggCompleted  AggregatedStatus = "completed"
	AggCancelled  AggregatedStatus = "cancelled"
	AggMixed      AggregatedStatus = "mixed"
)

// Aggregated converts an authored status into its aggregated-status value.
func (s WBSStatus) Aggregated() AggregatedStatus {
	return AggregatedStatus(s)
}

// ValidWBSStatuses is the canonical set of accepted authored status strings.
var ValidWBSStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "delayed": true,
	"completed": true, "cancelled": true,
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// EntityType distinguishes the two entity kinds the finance calculators
// accept: a whole project or a single WBS item.
type EntityType string

const (
	EntityProject EntityType = "project"
	EntityWBSItem EntityType = "wbs_item"
)

// ValidEntityTypes is the canonical set of accepted entity type strings.
var ValidEntityTypes = map[string]bool{
	"project": true, "wbs_item": true,
}

type HealthLevel string

const (
	HealthHealthy  HealthLevel = "healthy"
	HealthWarning  HealthLevel = "warning"
	HealthCritical HealthLevel = "critical"
)

type TrendDirection string

const (
	TrendImproving     TrendDirection = "improving"
	TrendStable        TrendDirection = "stable"
	TrendDeteriorating TrendDirection = "deteriorating"
)

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)
