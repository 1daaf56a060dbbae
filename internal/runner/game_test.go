package runner

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testConfig returns the default config with item spawns disabled and a
// constant speed. Ticks that all use the same timestamp never pass the
// obstacle cooldown, so the world only contains what a test places in it.
func testConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.ItemChance = 0
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0
	return cfg
}

func runningGame(t *testing.T, cfg config.RunnerConfig) *Game {
	t.Helper()
	g := New(cfg, core.DefaultConfig())
	g.MarkReady()
	g.Start(epoch)
	if g.Phase() != PhaseRunning {
		t.Fatalf("expected running phase after Start, got %v", g.Phase())
	}
	return g
}

func TestLifecycle(t *testing.T) {
	g := New(testConfig(), core.DefaultConfig())
	if g.Phase() != PhaseLoading {
		t.Fatalf("new game should be loading, got %v", g.Phase())
	}

	g.Action()
	if g.Pending() {
		t.Error("input must be ignored while loading")
	}
	if res := g.Tick(epoch); res.Phase != PhaseLoading || len(res.Events) != 0 {
		t.Errorf("tick while loading should do nothing, got %+v", res)
	}

	g.MarkReady()
	if g.Phase() != PhaseIdle {
		t.Fatalf("expected idle after MarkReady, got %v", g.Phase())
	}

	g.Action()
	res := g.Tick(epoch)
	if res.Phase != PhaseRunning {
		t.Fatalf("start input should begin a run, got %v", res.Phase)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != EventStarted {
		t.Errorf("expected a single started event, got %v", res.Events)
	}
	if g.world.Tick != 0 || g.world.Distance != 0 {
		t.Error("the start tick must not advance the world")
	}

	g.MarkReady()
	if g.Phase() != PhaseRunning {
		t.Error("MarkReady must not change a running game")
	}
}

func TestRestartResetsRun(t *testing.T) {
	cfg := testConfig()
	g := runningGame(t, cfg)
	for i := 0; i < 20; i++ {
		g.Tick(epoch)
	}
	g.world.Obstacles = append(g.world.Obstacles, Obstacle{Kind: ObstacleRock, X: 60, Y: 320, W: 40, H: 30})
	g.Tick(epoch)
	if g.Phase() != PhaseEnded || g.Outcome() != OutcomeDefeat {
		t.Fatalf("expected defeat, got %v/%v", g.Phase(), g.Outcome())
	}

	// Ended ticks without input change nothing.
	before := g.Snapshot()
	g.Tick(epoch)
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("an ended game must be frozen")
	}

	g.Action()
	g.Tick(epoch)
	s := g.Snapshot()
	if s.Phase != PhaseRunning || s.Score != 0 || s.Distance != 0 || len(s.Obstacles) != 0 {
		t.Errorf("restart should reinitialise the run, got %+v", s)
	}
	if s.Run != 2 {
		t.Errorf("expected run 2, got %d", s.Run)
	}
	if s.GoalX != cfg.World.Width+cfg.World.GoalDistance {
		t.Errorf("goal marker not reset: %v", s.GoalX)
	}
}

func TestDistanceAdvancesBySpeed(t *testing.T) {
	g := runningGame(t, testConfig())
	startY := g.world.Player.Y

	for i := 1; i <= 10; i++ {
		before := g.world.Distance
		g.Tick(epoch)
		if d := g.world.Distance - before; d != g.world.Speed {
			t.Fatalf("tick %d: distance grew by %v, speed is %v", i, d, g.world.Speed)
		}
	}
	if g.world.Distance != 50 {
		t.Errorf("10 ticks at speed 5 should cover 50, got %v", g.world.Distance)
	}
	if g.world.Score != 50 {
		t.Errorf("score should grow by floor(speed) per tick, got %d", g.world.Score)
	}
	if want := g.cfg.World.Width + g.cfg.World.GoalDistance - 50; g.world.GoalX != want {
		t.Errorf("goal marker at %v, expected %v", g.world.GoalX, want)
	}
	if g.world.Player.Y != startY || startY != 310 {
		t.Errorf("player should stay grounded at y=310, got %v (started at %v)", g.world.Player.Y, startY)
	}
	if g.Phase() != PhaseRunning || g.Outcome() != OutcomeNone {
		t.Errorf("run should still be going, got %v/%v", g.Phase(), g.Outcome())
	}
}

func TestJumpWhileAirborneIsNoop(t *testing.T) {
	g := runningGame(t, testConfig())

	g.Action()
	res := g.Tick(epoch)
	if !hasEvent(res, EventJumped) {
		t.Fatal("grounded player should jump")
	}
	if !g.world.Player.Airborne {
		t.Fatal("player should be airborne")
	}

	p := g.world.Player
	if p.Jump() {
		t.Error("Jump while airborne must report false")
	}
	if g.world.Player.VelocityY != p.VelocityY {
		t.Error("Jump while airborne must not change the velocity")
	}

	g.Action()
	vel := g.world.Player.VelocityY
	res = g.Tick(epoch)
	if hasEvent(res, EventJumped) {
		t.Error("a second jump in the air must be ignored")
	}
	if want := vel + g.cfg.Physics.Gravity; g.world.Player.VelocityY != want {
		t.Errorf("velocity %v, expected plain gravity integration %v", g.world.Player.VelocityY, want)
	}
}

func TestLandingClampsToGround(t *testing.T) {
	cfg := testConfig()
	g := runningGame(t, cfg)

	g.Action()
	g.Tick(epoch)

	landed := false
	for i := 0; i < 200 && !landed; i++ {
		landed = hasEvent(g.Tick(epoch), EventLanded)
	}
	if !landed {
		t.Fatal("player never landed")
	}

	p := g.world.Player
	if p.Airborne || p.VelocityY != 0 {
		t.Errorf("landing should clear airborne and velocity, got %+v", p)
	}
	if want := cfg.World.GroundLevel - cfg.Player.Height; p.Y != want {
		t.Errorf("landing y = %v, expected %v", p.Y, want)
	}
}

func TestPlayerIntegrate(t *testing.T) {
	tests := []struct {
		name     string
		player   Player
		wantY    float64
		wantVel  float64
		wantLand bool
	}{
		{
			name:   "grounded player does not move",
			player: Player{Y: 310, H: 40, Gravity: 0.6},
			wantY:  310,
		},
		{
			name:    "rising",
			player:  Player{Y: 300, H: 40, Gravity: 0.5, VelocityY: -10, Airborne: true},
			wantY:   290.5,
			wantVel: -9.5,
		},
		{
			name:     "overshoot is clamped",
			player:   Player{Y: 305, H: 40, Gravity: 1, VelocityY: 10, Airborne: true},
			wantY:    310,
			wantLand: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.player
			landed := p.Integrate(350)
			if landed != tt.wantLand || p.Y != tt.wantY || p.VelocityY != tt.wantVel {
				t.Errorf("got y=%v vel=%v landed=%v, expected y=%v vel=%v landed=%v",
					p.Y, p.VelocityY, landed, tt.wantY, tt.wantVel, tt.wantLand)
			}
		})
	}
}

func TestInvincibilityClearsAfterExactlyN(t *testing.T) {
	const n = 7
	g := runningGame(t, testConfig())
	g.world.Invincible = true
	g.world.InvincibleTicks = n

	for i := 1; i < n; i++ {
		g.Tick(epoch)
		if !g.world.Invincible || g.world.InvincibleTicks != n-i {
			t.Fatalf("tick %d: invincible=%v remaining=%d", i, g.world.Invincible, g.world.InvincibleTicks)
		}
	}

	g.Tick(epoch)
	if g.world.Invincible || g.world.InvincibleTicks != 0 {
		t.Errorf("invincibility should clear on tick %d, got %v/%d", n, g.world.Invincible, g.world.InvincibleTicks)
	}
}

func TestObstacleCollisionEndsRun(t *testing.T) {
	g := runningGame(t, testConfig())
	g.world.Score = 123
	// Lands on the player after this tick's scroll.
	g.world.Obstacles = append(g.world.Obstacles, Obstacle{Kind: ObstacleCactus, X: 60, Y: 305, W: 25, H: 45})

	res := g.Tick(epoch)
	if !res.Ended || res.Outcome != OutcomeDefeat || res.Phase != PhaseEnded {
		t.Fatalf("expected defeat on this tick, got %+v", res)
	}
	if last := res.Events[len(res.Events)-1]; last.Kind != EventDefeat {
		t.Errorf("last event should be defeat, got %v", last.Kind)
	}
	if g.world.Score != 128 {
		t.Errorf("score should keep the tick's increment, got %d", g.world.Score)
	}

	res = g.Tick(epoch)
	if res.Ended {
		t.Error("Ended is reported only on the terminal tick")
	}
}

func TestInvincibleIgnoresObstacles(t *testing.T) {
	g := runningGame(t, testConfig())
	g.world.Invincible = true
	g.world.InvincibleTicks = 10
	g.world.Obstacles = append(g.world.Obstacles, Obstacle{Kind: ObstacleLog, X: 60, Y: 325, W: 55, H: 25})

	if res := g.Tick(epoch); res.Ended || g.Phase() != PhaseRunning {
		t.Fatalf("invincible player must survive, got %+v", res)
	}
	if len(g.world.Obstacles) != 1 {
		t.Error("obstacles are not consumed by an invincible player")
	}
}

func TestCoinPickup(t *testing.T) {
	cfg := testConfig()
	// Below 1 the per-tick score increment is zero.
	cfg.Physics.BaseSpeed = 0.5
	g := runningGame(t, cfg)
	g.world.Items = append(g.world.Items, Item{Kind: ItemCoin, X: 50, Y: 320, W: 20, H: 20})

	res := g.Tick(epoch)
	if g.world.Score != cfg.Items.CoinBonus {
		t.Errorf("score = %d, expected exactly the coin bonus %d", g.world.Score, cfg.Items.CoinBonus)
	}
	if len(g.world.Items) != 0 {
		t.Error("collected coin should be removed")
	}
	if !hasEvent(res, EventCoin) {
		t.Error("expected a coin event")
	}
}

func TestCoinPickupAddsToTickScore(t *testing.T) {
	cfg := testConfig()
	g := runningGame(t, cfg)
	g.world.Items = append(g.world.Items,
		Item{Kind: ItemCoin, X: 60, Y: 320, W: 20, H: 20},
		Item{Kind: ItemCoin, X: 300, Y: 320, W: 20, H: 20},
	)

	g.Tick(epoch)
	if want := int(cfg.Physics.BaseSpeed) + cfg.Items.CoinBonus; g.world.Score != want {
		t.Errorf("score = %d, expected %d", g.world.Score, want)
	}
	if len(g.world.Items) != 1 || g.world.Items[0].X != 295 {
		t.Errorf("only the touching coin should be collected, left %+v", g.world.Items)
	}
}

func TestStarPickupGrantsInvincibility(t *testing.T) {
	cfg := testConfig()
	g := runningGame(t, cfg)
	g.world.Items = append(g.world.Items, Item{Kind: ItemStar, X: 60, Y: 300, W: 25, H: 25})

	res := g.Tick(epoch)
	if !g.world.Invincible || g.world.InvincibleTicks != cfg.Items.StarFrames {
		t.Errorf("expected %d invincible ticks, got %v/%d", cfg.Items.StarFrames, g.world.Invincible, g.world.InvincibleTicks)
	}
	if !hasEvent(res, EventStar) {
		t.Error("expected a star event")
	}
}

func TestVictoryAtGoal(t *testing.T) {
	cfg := testConfig()
	g := runningGame(t, cfg)
	g.world.Distance = cfg.World.GoalDistance - 1

	res := g.Tick(epoch)
	if !res.Ended || res.Outcome != OutcomeVictory {
		t.Fatalf("expected victory, got %+v", res)
	}
	if g.world.Distance < cfg.World.GoalDistance {
		t.Errorf("distance %v below goal", g.world.Distance)
	}
}

func TestCollisionBeatsVictory(t *testing.T) {
	cfg := testConfig()
	g := runningGame(t, cfg)
	g.world.Distance = cfg.World.GoalDistance - 1
	g.world.Obstacles = append(g.world.Obstacles, Obstacle{Kind: ObstacleRock, X: 60, Y: 320, W: 40, H: 30})

	if res := g.Tick(epoch); res.Outcome != OutcomeDefeat {
		t.Errorf("a hit on the final tick is still a defeat, got %v", res.Outcome)
	}
}

func TestOffscreenEntitiesArePruned(t *testing.T) {
	g := runningGame(t, testConfig())
	g.world.Obstacles = append(g.world.Obstacles,
		Obstacle{Kind: ObstacleLog, X: -52, Y: 325, W: 55, H: 25},  // right edge 3
		Obstacle{Kind: ObstacleRock, X: -30, Y: 320, W: 40, H: 30}, // right edge 10
	)
	g.world.Items = append(g.world.Items, Item{Kind: ItemCoin, X: -15, Y: 100, W: 20, H: 20}) // right edge exactly 5

	g.Tick(epoch)

	for _, o := range g.world.Obstacles {
		if o.X+o.W <= 0 {
			t.Errorf("obstacle with right edge %v survived", o.X+o.W)
		}
	}
	if len(g.world.Obstacles) != 1 {
		t.Errorf("expected 1 obstacle left, got %d", len(g.world.Obstacles))
	}
	if len(g.world.Items) != 0 {
		t.Errorf("item touching the left edge should be dropped, got %d", len(g.world.Items))
	}
}

func TestBackgroundWraps(t *testing.T) {
	cfg := testConfig()
	g := runningGame(t, cfg)
	g.world.BackgroundX = cfg.World.Width - 1

	g.Tick(epoch)
	want := math.Mod(cfg.World.Width-1+cfg.Physics.BaseSpeed*cfg.World.ScrollRatio, cfg.World.Width)
	if g.world.BackgroundX != want {
		t.Errorf("background offset %v, expected %v", g.world.BackgroundX, want)
	}
	if g.world.BackgroundX >= cfg.World.Width {
		t.Error("background offset must wrap")
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := runningGame(t, testConfig())
	g.Tick(epoch)

	if !g.TogglePause() {
		t.Fatal("TogglePause should pause a running game")
	}
	g.Action()
	if g.Pending() {
		t.Error("input is ignored while paused")
	}

	before := g.Snapshot()
	for i := 0; i < 5; i++ {
		g.Tick(epoch)
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("paused ticks must not advance the world")
	}

	if g.TogglePause() {
		t.Fatal("second toggle should resume")
	}
	g.Tick(epoch)
	if g.world.Tick != before.Tick+1 {
		t.Error("resumed game should advance")
	}
}

func TestTogglePauseOutsideRun(t *testing.T) {
	g := New(testConfig(), core.DefaultConfig())
	g.MarkReady()
	if g.TogglePause() || g.Paused() {
		t.Error("only a running game can pause")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := runningGame(t, testConfig())
	g.world.Obstacles = append(g.world.Obstacles, Obstacle{Kind: ObstacleBird, X: 300, Y: 100, W: 40, H: 25})

	s := g.Snapshot()
	s.Obstacles[0].X = -1000
	if g.world.Obstacles[0].X == -1000 {
		t.Error("mutating a snapshot must not touch the world")
	}

	g.Tick(epoch)
	if s.Obstacles[0].X != -1000 || s.Tick != 0 {
		t.Error("ticking must not touch an existing snapshot")
	}
}

func TestSnapshotProgress(t *testing.T) {
	tests := []struct {
		distance, goal float64
		want, left     float64
	}{
		{0, 5000, 0, 5000},
		{2500, 5000, 0.5, 2500},
		{5004, 5000, 1, 0},
		{10, 0, 0, 0},
	}
	for _, tt := range tests {
		s := Snapshot{Distance: tt.distance, GoalDistance: tt.goal}
		if got := s.Progress(); got != tt.want {
			t.Errorf("Progress(%v/%v) = %v, expected %v", tt.distance, tt.goal, got, tt.want)
		}
		if got := s.Remaining(); got != tt.left {
			t.Errorf("Remaining(%v/%v) = %v, expected %v", tt.distance, tt.goal, got, tt.left)
		}
	}
}

func TestDifficultyScalesSpeed(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Progression.Type = "distance"
	cfg.Difficulty.Progression.MaxAt = 100
	cfg.Difficulty.Scaling.SpeedMultiplier = 1
	g := runningGame(t, cfg)

	g.Tick(epoch)
	first := g.world.Speed
	for i := 0; i < 30; i++ {
		g.Tick(epoch)
	}
	if g.world.Speed <= first {
		t.Errorf("speed should grow with distance, %v -> %v", first, g.world.Speed)
	}
	if g.world.Speed > 2*cfg.Physics.BaseSpeed {
		t.Errorf("speed %v exceeds the max multiplier", g.world.Speed)
	}
}

func TestDeterminism(t *testing.T) {
	rt := core.DefaultConfig()
	rt.Seed = 424242
	cfg := config.DefaultRunnerConfig()

	play := func() (Snapshot, []EventKind) {
		g := New(cfg, rt)
		g.MarkReady()
		g.Action()

		var kinds []EventKind
		for i := 0; i < 1500 && g.Phase() != PhaseEnded; i++ {
			if Autopilot(g.Snapshot()) {
				g.Action()
			}
			res := g.Tick(epoch.Add(time.Duration(i) * 16 * time.Millisecond))
			for _, e := range res.Events {
				kinds = append(kinds, e.Kind)
			}
		}
		return g.Snapshot(), kinds
	}

	s1, e1 := play()
	s2, e2 := play()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("same seed and timestamps produced different states:\n%+v\n%+v", s1, s2)
	}
	if !reflect.DeepEqual(e1, e2) {
		t.Error("same seed and timestamps produced different event streams")
	}
	if s1.Tick == 0 {
		t.Error("the run never advanced")
	}
}

func TestWithRandSource(t *testing.T) {
	g := New(testConfig(), core.DefaultConfig(), WithRandSource(fixedSource(0)))
	g.MarkReady()
	g.Start(epoch)

	// A source that always yields 0 picks a ground cactus.
	g.Tick(epoch.Add(2 * time.Second))
	if len(g.world.Obstacles) != 1 || g.world.Obstacles[0].Kind != ObstacleCactus {
		t.Fatalf("expected one cactus, got %+v", g.world.Obstacles)
	}
}

type fixedSource int64

func (s fixedSource) Int63() int64 { return int64(s) }
func (fixedSource) Seed(int64)     {}

func hasEvent(res StepResult, kind EventKind) bool {
	for _, e := range res.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
