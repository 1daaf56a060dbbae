package runner

// Snapshot is a read-only copy of the game state for renderers, hosts and
// tests. Its slices are owned by the snapshot.
type Snapshot struct {
	Phase   Phase
	Outcome Outcome
	Paused  bool
	Run     int

	Player    Player
	Obstacles []Obstacle
	Items     []Item

	BackgroundX float64
	GoalX       float64
	Distance    float64
	Speed       float64
	Score       int

	Invincible      bool
	InvincibleTicks int
	Tick            int

	Width        float64
	Height       float64
	GroundLevel  float64
	GoalDistance float64
}

func newSnapshot(g *Game) Snapshot {
	w := g.world
	return Snapshot{
		Phase:   g.phase,
		Outcome: g.outcome,
		Paused:  g.paused,
		Run:     g.runs,

		Player:    w.Player,
		Obstacles: append([]Obstacle(nil), w.Obstacles...),
		Items:     append([]Item(nil), w.Items...),

		BackgroundX: w.BackgroundX,
		GoalX:       w.GoalX,
		Distance:    w.Distance,
		Speed:       w.Speed,
		Score:       w.Score,

		Invincible:      w.Invincible,
		InvincibleTicks: w.InvincibleTicks,
		Tick:            w.Tick,

		Width:        g.cfg.World.Width,
		Height:       g.cfg.World.Height,
		GroundLevel:  g.cfg.World.GroundLevel,
		GoalDistance: g.cfg.World.GoalDistance,
	}
}

// Progress returns the completed fraction of the goal distance in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.GoalDistance <= 0 {
		return 0
	}
	p := s.Distance / s.GoalDistance
	if p > 1 {
		return 1
	}
	return p
}

// Remaining returns the distance left to the goal.
func (s Snapshot) Remaining() float64 {
	if r := s.GoalDistance - s.Distance; r > 0 {
		return r
	}
	return 0
}
