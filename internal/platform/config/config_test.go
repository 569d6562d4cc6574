package config

import (
	"testing"
	"time"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	gh := root.Prefix("GHSTATS_")
	if got := gh.key("HTTP_TIMEOUT"); got != "GHSTATS_HTTP_TIMEOUT" {
		t.Fatalf("key() = %q, want %q", got, "GHSTATS_HTTP_TIMEOUT")
	}
	// nested prefix
	arch := gh.Prefix("ARCHIVE_")
	if got := arch.key("BASE_URL"); got != "GHSTATS_ARCHIVE_BASE_URL" {
		t.Fatalf("nested key() = %q, want %q", got, "GHSTATS_ARCHIVE_BASE_URL")
	}
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("S_NAME", " ghstats ")
	if got := c.MayString("NAME", "x"); got != "ghstats" {
		t.Fatalf("MayString value = %q, want %q", got, "ghstats")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("DUR_OK", "150ms")
	if got := c.MayDuration("OK", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v, want %v", got, 150*time.Millisecond)
	}
	t.Setenv("DUR_BAD", "nope")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default expected")
	}
	t.Setenv("DUR_NEG", "-1s")
	if got := c.MayDuration("NEG", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration negative -> default expected")
	}
}

func TestMayURL(t *testing.T) {
	c := New().Prefix("U_")
	if got := c.MayURL("MISS", "https://data.gharchive.org"); got != "https://data.gharchive.org" {
		t.Fatalf("MayURL default = %q", got)
	}
	t.Setenv("U_BASE", "http://127.0.0.1:8080/archive/")
	if got := c.MayURL("BASE", "x"); got != "http://127.0.0.1:8080/archive" {
		t.Fatalf("MayURL trims trailing slash, got %q", got)
	}
	t.Setenv("U_REL", "/relative")
	if got := c.MayURL("REL", "https://d"); got != "https://d" {
		t.Fatalf("MayURL relative -> default, got %q", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")

	if got := c.MayEnum("MISS", "hourly", "hourly", "daily"); got != "hourly" {
		t.Fatalf("MayEnum default = %q, want %q", got, "hourly")
	}

	t.Setenv("E_GRAN", "Daily")
	if got := c.MayEnum("GRAN", "hourly", "hourly", "daily"); got != "daily" {
		t.Fatalf("MayEnum allowed value = %q, want %q", got, "daily")
	}

	t.Setenv("E_BAD", "weekly")
	if got := c.MayEnum("BAD", "hourly", "hourly", "daily"); got != "hourly" {
		t.Fatalf("MayEnum invalid -> default = %q, want %q", got, "hourly")
	}
}
