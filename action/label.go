package action

// Label is the gross motion state of the tracked person
type Label int

const (
	// Detecting means there is not yet enough history to classify
	Detecting Label = 0
	// Standing means the person and both body halves are near still
	Standing Label = 1
	// WalkingOrRunning means the person is translating or the legs are busy
	WalkingOrRunning Label = 2
	// UpperBodyActive means arms/torso are moving while the person stays put
	UpperBodyActive Label = 3
	// Moving is the fallback when no other rule matches
	Moving Label = 4
	// NotFound means no person box was available for the frame
	NotFound Label = 5
)

var labelNames = map[Label]string{
	Detecting:        "detecting",
	Standing:         "standing",
	WalkingOrRunning: "walking_or_running",
	UpperBodyActive:  "upper_body_active",
	Moving:           "moving",
	NotFound:         "not_found",
}

// String returns the label name as shown on the overlay
func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLabel returns the Label for a name produced by String
func ParseLabel(name string) (Label, bool) {
	for l, n := range labelNames {
		if n == name {
			return l, true
		}
	}
	return 0, false
}
