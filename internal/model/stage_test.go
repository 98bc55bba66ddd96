package model

import (
	"testing"
	"time"
)

func TestStageAtWindows(t *testing.T) {
	cases := []struct {
		name  string
		until time.Duration
		want  Stage
		hit   bool
	}{
		{"due upper bound", 0, StageDue, true},
		{"due inside", -30 * time.Second, StageDue, true},
		{"due lower bound excluded", -60 * time.Second, "", false},
		{"long overdue", -5 * time.Minute, "", false},
		{"5m upper bound", 300 * time.Second, Stage5m, true},
		{"5m inside", 270 * time.Second, Stage5m, true},
		{"5m lower bound excluded", 240 * time.Second, "", false},
		{"30m upper bound", 1800 * time.Second, Stage30m, true},
		{"30m lower bound excluded", 1740 * time.Second, "", false},
		{"1h upper bound", 3600 * time.Second, Stage1h, true},
		{"1h inside", 3570 * time.Second, Stage1h, true},
		{"1h lower bound excluded", 3540 * time.Second, "", false},
		{"24h upper bound", 86400 * time.Second, Stage24h, true},
		{"24h just inside", 86341 * time.Second, Stage24h, true},
		{"24h lower bound excluded", 86340 * time.Second, "", false},
		{"between windows", 10 * time.Minute, "", false},
		{"far out", 48 * time.Hour, "", false},
	}
	for _, tc := range cases {
		got, hit := StageAt(tc.until)
		if hit != tc.hit || got != tc.want {
			t.Fatalf("%s: StageAt(%v) = (%q, %v), want (%q, %v)", tc.name, tc.until, got, hit, tc.want, tc.hit)
		}
	}
}

func TestStageUrgencyOrdering(t *testing.T) {
	ordered := []Stage{Stage24h, Stage1h, Stage30m, Stage5m, StageDue}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i].MoreUrgentThan(ordered[i-1]) {
			t.Fatalf("expected %q more urgent than %q", ordered[i], ordered[i-1])
		}
		if ordered[i-1].MoreUrgentThan(ordered[i]) {
			t.Fatalf("expected %q not more urgent than %q", ordered[i-1], ordered[i])
		}
	}
}

func TestStageMessages(t *testing.T) {
	cases := map[Stage]string{
		StageDue: "is due now!",
		Stage5m:  "is due in 5 minutes.",
		Stage30m: "is due in 30 minutes.",
		Stage1h:  "is due in 1 hour.",
		Stage24h: "is due in 24 hours.",
	}
	for stage, want := range cases {
		if got := stage.Message(); got != want {
			t.Fatalf("Message(%q) = %q, want %q", stage, got, want)
		}
	}
}

func TestStageIsValid(t *testing.T) {
	for _, s := range []Stage{Stage24h, Stage1h, Stage30m, Stage5m, StageDue} {
		if !s.IsValid() {
			t.Fatalf("expected valid stage: %q", s)
		}
	}
	if Stage("10m").IsValid() {
		t.Fatal("expected invalid stage")
	}
}
