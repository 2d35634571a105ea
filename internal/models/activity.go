package models

// ActivityInterval is a labeled half-open time range [Start, End) over
// elapsed seconds. Labels are not required to be distinct: two separate
// sitting periods are two intervals with the same label.
type ActivityInterval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
	Color string  `json:"color,omitempty"` // Display hint for background shading
}

// ActivitySchedule is the boundary/label table supplied once per analysis
// run. Boundaries must be strictly increasing and carry exactly one fewer
// label than boundary values.
type ActivitySchedule struct {
	Boundaries []float64 `json:"boundaries"`
	Labels     []string  `json:"labels"`
}

// Activity label constants for the default recording protocol
const (
	ActivitySitting       = "sitting"
	ActivityWalking       = "walking"
	ActivityPuttingShoes  = "putting on shoes"
	ActivityStairClimbing = "climbing stairs"
)

// ActivityColors maps the default activity labels to display colors.
var ActivityColors = map[string]string{
	ActivitySitting:       "blue",
	ActivityWalking:       "green",
	ActivityPuttingShoes:  "purple",
	ActivityStairClimbing: "red",
}

// DefaultActivitySchedule returns the boundary/label table of the standard
// measurement protocol (sit, walk the dog, recover, climb stairs).
func DefaultActivitySchedule() ActivitySchedule {
	return ActivitySchedule{
		Boundaries: []float64{0, 120, 240, 360, 2160, 3360, 4020, 6000, 6480, 6780, 7320},
		Labels: []string{
			ActivitySitting, ActivityWalking, ActivityPuttingShoes, ActivityWalking,
			ActivitySitting, ActivityWalking, ActivitySitting, ActivityWalking,
			ActivityStairClimbing, ActivitySitting,
		},
	}
}

// ActivitySummary aggregates heart-rate statistics for one activity label
type ActivitySummary struct {
	Label        string  `json:"label"`
	BeatCount    int     `json:"beatCount"`
	MeanBPM      float64 `json:"meanBpm"`
	MinBPM       float64 `json:"minBpm"`
	MaxBPM       float64 `json:"maxBpm"`
	SDNNSeconds  float64 `json:"sdnnSeconds"`
	RMSSDSeconds float64 `json:"rmssdSeconds"`
}
