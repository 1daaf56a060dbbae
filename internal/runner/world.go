package runner

import (
	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// ObstacleKind is the variant of an obstacle.
type ObstacleKind int

const (
	ObstacleCactus ObstacleKind = iota
	ObstacleRock
	ObstacleLog
	ObstacleBird // the only aerial variant
)

// groundObstacles are chosen uniformly when a ground obstacle spawns.
var groundObstacles = [...]ObstacleKind{ObstacleCactus, ObstacleRock, ObstacleLog}

// String returns the variant name.
func (k ObstacleKind) String() string {
	return string(k.Sprite())
}

// Sprite returns the asset name used to draw the variant.
func (k ObstacleKind) Sprite() assets.Kind {
	switch k {
	case ObstacleCactus:
		return assets.Cactus
	case ObstacleRock:
		return assets.Rock
	case ObstacleLog:
		return assets.Log
	default:
		return assets.Bird
	}
}

// Aerial reports whether the variant flies instead of standing on the ground.
func (k ObstacleKind) Aerial() bool {
	return k == ObstacleBird
}

// ItemKind is the variant of a collectible.
type ItemKind int

const (
	ItemCoin ItemKind = iota // adds a score bonus
	ItemStar                 // grants temporary invincibility
)

// String returns the variant name.
func (k ItemKind) String() string {
	return string(k.Sprite())
}

// Sprite returns the asset name used to draw the variant.
func (k ItemKind) Sprite() assets.Kind {
	if k == ItemStar {
		return assets.Star
	}
	return assets.Coin
}

type size struct{ W, H float64 }

// Fixed per-variant sizes in world units.
var (
	obstacleSizes = map[ObstacleKind]size{
		ObstacleCactus: {W: 25, H: 45},
		ObstacleRock:   {W: 40, H: 30},
		ObstacleLog:    {W: 55, H: 25},
		ObstacleBird:   {W: 40, H: 25},
	}
	itemSizes = map[ItemKind]size{
		ItemCoin: {W: 20, H: 20},
		ItemStar: {W: 25, H: 25},
	}
)

// Player is the single runner body. Y is the top edge; Y grows downward.
type Player struct {
	X, Y        float64
	W, H        float64
	VelocityY   float64
	Gravity     float64
	JumpImpulse float64
	Airborne    bool
}

// Rect returns the player's collision rectangle.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Jump launches a grounded player. Jumping while airborne does nothing and
// returns false.
func (p *Player) Jump() bool {
	if p.Airborne {
		return false
	}
	p.Airborne = true
	p.VelocityY = -p.JumpImpulse
	return true
}

// Integrate applies one tick of vertical motion and clamps the player onto
// the ground. It returns true on the tick the player lands.
func (p *Player) Integrate(groundLevel float64) bool {
	if !p.Airborne {
		return false
	}
	p.VelocityY += p.Gravity
	p.Y += p.VelocityY

	if floor := groundLevel - p.H; p.Y >= floor {
		p.Y = floor
		p.VelocityY = 0
		p.Airborne = false
		return true
	}
	return false
}

// Obstacle is a scrolling hazard.
type Obstacle struct {
	Kind ObstacleKind
	X, Y float64
	W, H float64
}

// Rect returns the obstacle's collision rectangle.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.W, o.H)
}

// Item is a scrolling collectible.
type Item struct {
	Kind ItemKind
	X, Y float64
	W, H float64
}

// Rect returns the item's collision rectangle.
func (it Item) Rect() core.Rect {
	return core.NewRect(it.X, it.Y, it.W, it.H)
}

// World is the complete mutable state of one run. It is owned by Game and
// mutated only by the update step.
type World struct {
	Player    Player
	Obstacles []Obstacle
	Items     []Item

	BackgroundX float64 // parallax offset, wraps at the world width
	GoalX       float64 // goal marker position, counts down toward 0
	Distance    float64 // total distance travelled, never decreases
	Speed       float64 // scroll speed for the current tick
	Score       int

	Invincible      bool
	InvincibleTicks int // remaining ticks, zero unless Invincible

	Tick int // update steps executed in this run
}

// newWorld returns the initial state of a run.
func newWorld(cfg config.RunnerConfig) World {
	return World{
		Player: Player{
			X:           cfg.Player.X,
			Y:           cfg.World.GroundLevel - cfg.Player.Height,
			W:           cfg.Player.Width,
			H:           cfg.Player.Height,
			Gravity:     cfg.Physics.Gravity,
			JumpImpulse: cfg.Physics.JumpImpulse,
		},
		Obstacles: make([]Obstacle, 0, 8),
		Items:     make([]Item, 0, 8),
		GoalX:     cfg.World.Width + cfg.World.GoalDistance,
		Speed:     cfg.Physics.BaseSpeed,
	}
}

// scrollObstacles moves obstacles left and drops the ones that left the
// screen, reusing the backing array.
func scrollObstacles(obs []Obstacle, dx float64) []Obstacle {
	kept := obs[:0]
	for _, o := range obs {
		o.X -= dx
		if o.X+o.W > 0 {
			kept = append(kept, o)
		}
	}
	return kept
}

// scrollItems is scrollObstacles for items.
func scrollItems(items []Item, dx float64) []Item {
	kept := items[:0]
	for _, it := range items {
		it.X -= dx
		if it.X+it.W > 0 {
			kept = append(kept, it)
		}
	}
	return kept
}
