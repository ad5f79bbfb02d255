package protocol

// Event type discriminators for the four WebSocket frame kinds.
const (
	TypeStart    = "start"
	TypeProgress = "progress"
	TypeFound    = "found"
	TypeComplete = "complete"
)

// StartEvent announces the total seed count before any worker begins.
type StartEvent struct {
	Type  string `json:"type"`
	Total int64  `json:"total"`
}

// ProgressEvent reports cumulative scan progress.
type ProgressEvent struct {
	Type         string  `json:"type"`
	CheckedCount int64   `json:"checkedCount"`
	Total        int64   `json:"total"`
	Progress     float64 `json:"progress"`
	Speed        float64 `json:"speed"`
	Elapsed      float64 `json:"elapsed"`
}

// WeatherDetail is attached to a FoundEvent so a front end can render
// why a seed matched without re-running the oracle.
type WeatherDetail struct {
	SpringRain   []int `json:"springRain"`
	SummerRain   []int `json:"summerRain"`
	FallRain     []int `json:"fallRain"`
	GreenRainDay int   `json:"greenRainDay"`
}

// FoundEvent announces one matched seed.
type FoundEvent struct {
	Type          string         `json:"type"`
	Seed          int32          `json:"seed"`
	WeatherDetail *WeatherDetail `json:"weatherDetail,omitempty"`
}

// CompleteEvent announces the end of a search.
type CompleteEvent struct {
	Type       string  `json:"type"`
	TotalFound int     `json:"totalFound"`
	Elapsed    float64 `json:"elapsed"`
}

func NewStartEvent(total int64) StartEvent {
	return StartEvent{Type: TypeStart, Total: total}
}

func NewProgressEvent(checked, total int64, percent, speed, elapsed float64) ProgressEvent {
	return ProgressEvent{
		Type:         TypeProgress,
		CheckedCount: checked,
		Total:        total,
		Progress:     percent,
		Speed:        speed,
		Elapsed:      elapsed,
	}
}

func NewFoundEvent(seed int32, detail *WeatherDetail) FoundEvent {
	return FoundEvent{Type: TypeFound, Seed: seed, WeatherDetail: detail}
}

func NewCompleteEvent(totalFound int, elapsed float64) CompleteEvent {
	return CompleteEvent{Type: TypeComplete, TotalFound: totalFound, Elapsed: elapsed}
}
