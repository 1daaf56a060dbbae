package runner

import (
	"math"
	"time"
)

// update advances a Running world by one tick. The order of the steps is
// fixed: scroll, spawn, physics, timers, scoring, pickups, collision, goal.
func (g *Game) update(now time.Time) []Event {
	w := &g.world
	cfg := g.cfg

	w.Tick++
	w.Speed = g.difficulty.Speed(cfg.Physics.BaseSpeed, w.Distance, w.Tick)

	w.BackgroundX = math.Mod(w.BackgroundX+w.Speed*cfg.World.ScrollRatio, cfg.World.Width)

	w.Obstacles = scrollObstacles(w.Obstacles, w.Speed)
	w.Items = scrollItems(w.Items, w.Speed)

	w.GoalX -= w.Speed
	w.Distance += w.Speed

	// No new entities once the goal is within one screen.
	if cfg.World.GoalDistance-w.Distance > cfg.World.Width {
		base := time.Duration(cfg.Spawn.CooldownMS) * time.Millisecond
		g.spawner.Spawn(w, now, g.difficulty.Cooldown(base, w.Distance, w.Tick))
	}

	var events []Event
	if w.Player.Integrate(cfg.World.GroundLevel) {
		events = append(events, Event{Kind: EventLanded, Tick: w.Tick})
	}

	if w.Invincible {
		w.InvincibleTicks--
		if w.InvincibleTicks <= 0 {
			w.InvincibleTicks = 0
			w.Invincible = false
		}
	}

	w.Score += int(math.Floor(w.Speed))

	events = append(events, collectItems(w, cfg.Items)...)

	if !w.Invincible && hitsObstacle(w) {
		g.end(OutcomeDefeat)
		return append(events, Event{Kind: EventDefeat, Tick: w.Tick})
	}

	if w.Distance >= cfg.World.GoalDistance {
		g.end(OutcomeVictory)
		events = append(events, Event{Kind: EventVictory, Tick: w.Tick})
	}
	return events
}
