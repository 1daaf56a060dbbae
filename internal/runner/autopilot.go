package runner

// Autopilot is a simple bot used by headless simulations and demos. It
// jumps when grounded and the nearest threatening obstacle is about to
// reach the player. Birds flying above the player's head are ignored.
//
// The jump window is measured in ticks of travel so it keeps working when
// the speed scales with difficulty.
func Autopilot(s Snapshot) bool {
	if s.Phase != PhaseRunning || s.Paused || s.Player.Airborne || s.Speed <= 0 {
		return false
	}

	const (
		earliest = 10.0 // ticks before contact
		latest   = 6.0
	)

	p := s.Player.Rect()
	for _, o := range s.Obstacles {
		if o.Kind.Aerial() && o.Y+o.H <= p.Y {
			continue
		}
		gap := o.X - p.Right()
		if gap > latest*s.Speed && gap <= earliest*s.Speed {
			return true
		}
	}
	return false
}
