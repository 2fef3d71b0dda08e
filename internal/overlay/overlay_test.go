package overlay

import (
	"testing"
	"time"
)

func testTiming() Timing {
	return Timing{
		FadeInDelay:     10 * time.Millisecond,
		FadeInRate:      100 * time.Millisecond,
		FadeOutDelay:    10 * time.Millisecond,
		FadeOutRate:     100 * time.Millisecond,
		MaxAlpha:        1.0,
		InactiveAlpha:   0.3,
		InactiveTimeout: 50 * time.Millisecond,
	}
}

func TestHiddenAdvancesToFadeInWhenVisible(t *testing.T) {
	s := NewState(testTiming())
	s.Advance(1*time.Millisecond, true, true)
	if s.Phase != PhaseFadeIn {
		t.Fatalf("expected FadeIn, got %v", s.Phase)
	}
}

func TestFadeInReachesVisibleAtMaxAlpha(t *testing.T) {
	s := NewState(testTiming())
	s.Advance(1*time.Millisecond, true, true) // Hidden -> FadeIn
	s.Advance(200*time.Millisecond, true, true)
	if s.Phase != PhaseVisible {
		t.Fatalf("expected Visible after full fade-in ramp, got %v alpha=%v", s.Phase, s.Alpha)
	}
	if s.Alpha != s.Timing.MaxAlpha {
		t.Fatalf("expected alpha clamped to MaxAlpha, got %v", s.Alpha)
	}
}

func TestVisibleGoesInactiveAfterTimeout(t *testing.T) {
	s := NewState(testTiming())
	s.Phase = PhaseVisible
	s.Alpha = s.Timing.MaxAlpha
	s.Advance(60*time.Millisecond, true, false)
	if s.Phase != PhaseInactiveFadeOut {
		t.Fatalf("expected InactiveFadeOut once inactive timeout elapses, got %v", s.Phase)
	}
}

func TestActiveResetsInactiveTimer(t *testing.T) {
	s := NewState(testTiming())
	s.Phase = PhaseVisible
	s.Alpha = s.Timing.MaxAlpha
	s.Advance(40*time.Millisecond, true, false)
	s.Advance(40*time.Millisecond, true, true) // active resets the timer
	if s.Phase != PhaseVisible {
		t.Fatalf("expected still Visible after active reset the inactive timer, got %v", s.Phase)
	}
}

func TestInactiveFadeOutReachesInactiveAlpha(t *testing.T) {
	s := NewState(testTiming())
	s.Phase = PhaseInactiveFadeOut
	s.Alpha = s.Timing.MaxAlpha
	s.Advance(200*time.Millisecond, true, false)
	if s.Phase != PhaseInactive {
		t.Fatalf("expected Inactive, got %v", s.Phase)
	}
	if s.Alpha != s.Timing.InactiveAlpha {
		t.Fatalf("expected alpha clamped to InactiveAlpha, got %v", s.Alpha)
	}
}

func TestInactiveReturnsToFadeInWhenActivated(t *testing.T) {
	s := NewState(testTiming())
	s.Phase = PhaseInactive
	s.Alpha = s.Timing.InactiveAlpha
	s.Advance(1*time.Millisecond, true, true)
	if s.Phase != PhaseFadeIn {
		t.Fatalf("expected FadeIn once re-activated from Inactive, got %v", s.Phase)
	}
}

func TestVisibleFalseForcesFadeOutFromAnyPhase(t *testing.T) {
	s := NewState(testTiming())
	s.Phase = PhaseVisible
	s.Alpha = s.Timing.MaxAlpha
	s.Advance(1*time.Millisecond, false, false)
	if s.Phase != PhaseFadeOut {
		t.Fatalf("expected visible=false to force FadeOut, got %v", s.Phase)
	}
}

func TestFadeOutReachesHidden(t *testing.T) {
	s := NewState(testTiming())
	s.Phase = PhaseFadeOut
	s.Alpha = s.Timing.MaxAlpha
	s.Advance(200*time.Millisecond, false, false)
	if s.Phase != PhaseHidden {
		t.Fatalf("expected Hidden once fade-out ramp completes, got %v", s.Phase)
	}
	if s.Alpha != 0 {
		t.Fatalf("expected alpha 0 at Hidden, got %v", s.Alpha)
	}
}

func TestHiddenStaysHiddenWhenNotVisible(t *testing.T) {
	s := NewState(testTiming())
	s.Advance(100*time.Millisecond, false, false)
	if s.Phase != PhaseHidden {
		t.Fatalf("expected Hidden to stay Hidden, got %v", s.Phase)
	}
}

func TestVisibleReportsFalseOnlyWhenHidden(t *testing.T) {
	s := NewState(testTiming())
	if s.Visible() {
		t.Fatalf("expected not visible while Hidden")
	}
	s.Phase = PhaseFadeIn
	if !s.Visible() {
		t.Fatalf("expected visible once out of Hidden")
	}
}
