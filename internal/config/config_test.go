package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HTTPAddr != ":8080" || c.Locale != "enUS" || c.Ruleset != "default" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.LogLevel != slog.LevelInfo || c.RNGSeed != 0 || c.WatchRules {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.ShutdownTimeout != 10*time.Second || c.CrossvalMaxTrials != 20000 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATA_DIR", "/srv/arena")
	t.Setenv("RULESET", "season42")
	t.Setenv("WATCH_RULES", "true")
	t.Setenv("RNG_SEED", "7")
	t.Setenv("CROSSVAL_MAX_TRIALS", "500")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HTTPAddr != ":9090" || c.DataDir != "/srv/arena" || c.Ruleset != "season42" {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.LogLevel != slog.LevelDebug || !c.WatchRules || c.RNGSeed != 7 || c.CrossvalMaxTrials != 500 {
		t.Fatalf("env not applied: %+v", c)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		key, val, want string
	}{
		{"LOG_LEVEL", "chatty", "LOG_LEVEL"},
		{"RNG_SEED", "-1", "parse env"},
		{"CROSSVAL_MAX_TRIALS", "0", "CROSSVAL_MAX_TRIALS"},
		{"CROSSVAL_RATE", "0", "CROSSVAL_RATE"},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			t.Setenv(c.key, c.val)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err=%v, want mention of %s", err, c.want)
			}
		})
	}
}
