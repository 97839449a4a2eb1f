// Package input turns key presses into the per-tick action snapshot the
// session consumes.
package input

// Action is a logical game input.
type Action uint8

const (
	Up Action = iota
	Down
	Left
	Right
	Shoot
	Focus
	Bomb // accepted and recorded, no effect
	Pause
	actionCount
)

var actionNames = [actionCount]string{"up", "down", "left", "right", "shoot", "focus", "bomb", "pause"}

func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a name from the key bindings file to an Action.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// State is the set of actions held during one tick.
type State struct {
	held [actionCount]bool
}

// StateFromMask rebuilds a State from a recorded mask.
func StateFromMask(mask uint16) State {
	var s State
	for a := Action(0); a < actionCount; a++ {
		s.held[a] = mask&(1<<a) != 0
	}
	return s
}

func (s State) Held(a Action) bool {
	return a < actionCount && s.held[a]
}

func (s *State) Set(a Action, held bool) {
	if a < actionCount {
		s.held[a] = held
	}
}

// Mask packs the held actions into one bit each, Up at bit 0.
func (s State) Mask() uint16 {
	var m uint16
	for a := Action(0); a < actionCount; a++ {
		if s.held[a] {
			m |= 1 << a
		}
	}
	return m
}

// Direction returns the movement axes: -1, 0 or 1 each, with opposing
// keys cancelling out.
func (s State) Direction() (x, y float64) {
	if s.held[Left] {
		x--
	}
	if s.held[Right] {
		x++
	}
	if s.held[Up] {
		y--
	}
	if s.held[Down] {
		y++
	}
	return x, y
}
