package sgb

const (
	EventCast    = "Cast"
	EventSelfHit = "SelfHit"
	EventArrow   = "Arrow"
)

// Event is one entry of a trial trace.
type Event struct {
	Type    string `json:"type"`
	Caster  int    `json:"caster"`
	Dummy   Pos    `json:"dummy"`
	Cell    Pos    `json:"cell"`
	Arrow   int    `json:"arrow,omitempty"`
	Attempt int    `json:"attempt,omitempty"`
}
