package main

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

func TestSSHServerConfigKeepsDefaults(t *testing.T) {
	oldAddr, oldKey, oldIdle, oldFPS := flagSSHAddr, flagHostKey, flagIdleTimeout, flagFPS
	t.Cleanup(func() {
		flagSSHAddr, flagHostKey, flagIdleTimeout, flagFPS = oldAddr, oldKey, oldIdle, oldFPS
	})

	cfg := config.DefaultRunnerConfig()
	cfg.Physics.BaseSpeed = 7
	logger := log.New(io.Discard)

	flagSSHAddr, flagHostKey, flagIdleTimeout, flagFPS = ":2222", "/tmp/key", 0, 30
	got := sshServerConfig(cfg, nil, logger)

	if got.Address != ":2222" || got.HostKeyPath != "/tmp/key" {
		t.Errorf("flags not applied: %q %q", got.Address, got.HostKeyPath)
	}
	if got.IdleTimeout != 30*time.Minute {
		t.Errorf("zero --idle-timeout should keep the default, got %v", got.IdleTimeout)
	}
	if got.Runner.Physics.BaseSpeed != 7 {
		t.Errorf("runner config not applied: %+v", got.Runner.Physics)
	}
	want := core.DefaultConfig()
	if got.Runtime.TickRate != 30 || got.Runtime.ScreenW != want.ScreenW || got.Runtime.ScreenH != want.ScreenH {
		t.Errorf("runtime = %+v, expected defaults at 30 fps", got.Runtime)
	}
	if got.Recorder != nil {
		t.Error("no store means no recorder")
	}
	if got.Provider == nil || got.Logger != logger {
		t.Error("provider and logger should be set")
	}

	flagIdleTimeout = 5
	if got := sshServerConfig(cfg, nil, logger); got.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 5m", got.IdleTimeout)
	}
}
