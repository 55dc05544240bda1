package core

// TouchPhase is the stage of a touch gesture.
type TouchPhase int

const (
	TouchDown TouchPhase = iota // Finger (or mouse button) pressed
	TouchMove                   // Pointer moved while pressed
	TouchUp                     // Finger lifted
)

// String returns a human-readable name for the phase.
func (p TouchPhase) String() string {
	switch p {
	case TouchDown:
		return "Down"
	case TouchMove:
		return "Move"
	case TouchUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// TouchEvent is a single discrete touch sample in window units.
type TouchEvent struct {
	X, Y  float64
	Phase TouchPhase
}

// TiltSample is a pair of accelerometer readings along the device x and y
// axes, in m/s². Positive X means the device is tilted to the left, positive
// Y means its top edge is raised.
type TiltSample struct {
	X, Y float64
}
