package world

// Gate is a dependency predicate evaluated once, when an entity is
// dispatched. Failing it tears the entity down silently.
type Gate interface {
	Allow(e *Entity) bool
}

type constGate bool

func (g constGate) Allow(*Entity) bool { return bool(g) }

var (
	Always Gate = constGate(true)
	Never  Gate = constGate(false)
)

type anchorGate struct {
	anchor *Entity
}

func (g anchorGate) Allow(*Entity) bool { return g.anchor.Live() }

// AnchorAlive passes while anchor is live, e.g. escorts spawned with the
// enemy they orbit.
func AnchorAlive(anchor *Entity) Gate { return anchorGate{anchor: anchor} }

type scoreGate struct {
	player *Player
	min    int
}

func (g scoreGate) Allow(*Entity) bool { return g.player.Score >= g.min }

// ScoreAtLeast passes once the player's score has reached min.
func ScoreAtLeast(p *Player, min int) Gate { return scoreGate{player: p, min: min} }

// GateFunc adapts a plain predicate.
type GateFunc func(e *Entity) bool

func (f GateFunc) Allow(e *Entity) bool { return f(e) }
