package event

import "time"

// Session event types. Emitted by systems during a tick, delivered at the
// start of the next one.

type EnemyKilled struct {
	Slot  int
	X, Y  float64
	Score int // player score after the kill
}

type PlayerHit struct {
	Damage int
	Health int
}

type PlayerDied struct {
	Score   int
	Elapsed time.Duration
}

type PauseToggled struct {
	Paused bool
}
