package matching

// Pipeline stages announced through the ProgressReporter.
const (
	StageScoring   = "scoring"
	StageSeeding   = "seeding"
	StageLeftovers = "leftovers"
	StageRepair    = "repair"
	StageComplete  = "complete"
)

// ProgressEvent describes one step of a matrix build or team formation.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Done    int    `json:"done,omitempty"`
	Total   int    `json:"total,omitempty"`
	Teams   int    `json:"teams,omitempty"`
}

// ProgressReporter receives progress events from the engine. The engine never
// writes to the console itself; callers decide whether events go to a logger,
// a WebSocket room, or nowhere.
type ProgressReporter interface {
	Report(event ProgressEvent)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Report(ProgressEvent) {}

// ReporterFunc adapts a function to the ProgressReporter interface.
type ReporterFunc func(ProgressEvent)

func (f ReporterFunc) Report(event ProgressEvent) {
	f(event)
}
