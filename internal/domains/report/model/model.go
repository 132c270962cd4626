package model

import (
	"time"

	"campusroom/shared/model"
)

const (
	TableName  = "reports"
	EntityName = "report"

	FieldID           = "id"
	FieldReporterID   = "reporter_id"
	FieldRoomCode     = "room_code"
	FieldCategory     = "category"
	FieldSeverityRank = "severity_rank"
	FieldTimeBucket   = "time_bucket"
	FieldStatus       = "status"
)

const (
	CategoryProjector       = "projector"
	CategoryComputer        = "computer"
	CategoryLighting        = "lighting"
	CategoryAirConditioning = "air_conditioning"
	CategoryOther           = "other"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

const (
	SourceClassifier = "classifier"
	SourceFallback   = "fallback"
)

const (
	MostSevere  = 1
	LeastSevere = 5
)

var fallbackRanks = map[string]int{
	CategoryProjector:       1,
	CategoryComputer:        2,
	CategoryLighting:        3,
	CategoryAirConditioning: 4,
	CategoryOther:           5,
}

// FallbackRank is the severity implied by the category alone. Unknown
// categories rank as least severe.
func FallbackRank(category string) int {
	if rank, ok := fallbackRanks[category]; ok {
		return rank
	}

	return LeastSevere
}

type Report struct {
	ID           string    `db:"id"`
	ReporterID   string    `db:"reporter_id"`
	Role         string    `db:"role"`
	RoomCode     string    `db:"room_code"`
	Category     string    `db:"category"`
	Description  string    `db:"description"`
	SeverityRank int       `db:"severity_rank"`
	AIConfidence float64   `db:"ai_confidence"`
	AIRationale  string    `db:"ai_rationale"`
	TriageSource string    `db:"triage_source"`
	Status       string    `db:"status"`
	TimeBucket   time.Time `db:"time_bucket"`
	model.Metadata
}

// GroupedReport is the latest report of a (room, category, time bucket) group
// together with the size of the group.
type GroupedReport struct {
	Report
	ReportCount int `db:"report_count"`
}

// Bucket truncates t to the start of its bucket on the wall clock of loc, so
// buckets follow the named zone across daylight saving changes.
func Bucket(t time.Time, loc *time.Location, minutes int) time.Time {
	local := t.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	sinceMidnight := local.Hour()*60 + local.Minute()

	start := sinceMidnight - sinceMidnight%minutes

	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(), start/60, start%60, 0, 0, loc)
}
