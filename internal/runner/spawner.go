package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// Spawner generates obstacles and items at the right edge of the screen.
// All randomness comes from the injected *rand.Rand and all timing from
// the frame timestamps it is given, so a seed plus a timestamp sequence
// reproduces a run exactly.
type Spawner struct {
	rng          *rand.Rand
	cfg          config.RunnerSpawn
	worldW       float64
	groundLevel  float64
	lastObstacle time.Time
}

// NewSpawner creates a spawner for the given config.
func NewSpawner(rng *rand.Rand, cfg config.RunnerConfig) *Spawner {
	return &Spawner{
		rng:         rng,
		cfg:         cfg.Spawn,
		worldW:      cfg.World.Width,
		groundLevel: cfg.World.GroundLevel,
	}
}

// Reset starts the obstacle cooldown from now and swaps the random source.
func (s *Spawner) Reset(rng *rand.Rand, now time.Time) {
	s.rng = rng
	s.lastObstacle = now
}

// Spawn makes this tick's two independent spawn decisions.
func (s *Spawner) Spawn(w *World, now time.Time, cooldown time.Duration) {
	if now.Sub(s.lastObstacle) >= cooldown {
		s.lastObstacle = now
		w.Obstacles = append(w.Obstacles, s.obstacle())
	}

	if s.rng.Float64() < s.cfg.ItemChance {
		w.Items = append(w.Items, s.item())
	}
}

func (s *Spawner) obstacle() Obstacle {
	if s.rng.Float64() < s.cfg.GroundChance {
		kind := groundObstacles[s.rng.Intn(len(groundObstacles))]
		sz := obstacleSizes[kind]
		return Obstacle{Kind: kind, X: s.worldW, Y: s.groundLevel - sz.H, W: sz.W, H: sz.H}
	}

	sz := obstacleSizes[ObstacleBird]
	return Obstacle{
		Kind: ObstacleBird,
		X:    s.worldW,
		Y:    s.between(s.cfg.AerialMinY, s.cfg.AerialMaxY),
		W:    sz.W,
		H:    sz.H,
	}
}

func (s *Spawner) item() Item {
	kind := ItemCoin
	if s.rng.Float64() < s.cfg.StarWeight {
		kind = ItemStar
	}
	sz := itemSizes[kind]
	return Item{
		Kind: kind,
		X:    s.worldW,
		Y:    s.between(s.cfg.ItemMinY, s.cfg.ItemMaxY),
		W:    sz.W,
		H:    sz.H,
	}
}

// between returns a uniform value in [lo, hi].
func (s *Spawner) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
