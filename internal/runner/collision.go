package runner

import "github.com/vovakirdan/tui-runner/internal/config"

// collectItems removes every item touching the player and applies its
// effect. It returns one event per pickup.
func collectItems(w *World, effects config.RunnerItems) []Event {
	player := w.Player.Rect()

	var events []Event
	kept := w.Items[:0]
	for _, it := range w.Items {
		if !player.Intersects(it.Rect()) {
			kept = append(kept, it)
			continue
		}

		switch it.Kind {
		case ItemCoin:
			w.Score += effects.CoinBonus
			events = append(events, Event{Kind: EventCoin, Tick: w.Tick})
		case ItemStar:
			if effects.StarFrames > 0 {
				w.Invincible = true
				w.InvincibleTicks = effects.StarFrames
			}
			events = append(events, Event{Kind: EventStar, Tick: w.Tick})
		}
	}
	w.Items = kept
	return events
}

// hitsObstacle reports whether the player overlaps any obstacle.
func hitsObstacle(w *World) bool {
	player := w.Player.Rect()
	for _, o := range w.Obstacles {
		if player.Intersects(o.Rect()) {
			return true
		}
	}
	return false
}
