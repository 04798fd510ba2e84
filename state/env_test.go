package state

import (
	"context"
	"testing"
	"time"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := ContextWithEnv(context.Background())

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.Cfg != nil || env.Log != nil {
		t.Error("fresh environment should have no configuration or logger")
	}

	// same instance on every lookup
	if EnvFromContext(ctx) != env {
		t.Error("EnvFromContext() returned a different instance")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for context without environment")
		}
	}()
	EnvFromContext(context.Background())
}

func TestUptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	time.Sleep(time.Millisecond)
	if env.Uptime() <= 0 {
		t.Error("Uptime() should be positive")
	}
}
