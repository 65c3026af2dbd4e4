package permissions

import (
	"testing"

	"mitche/backend/internal/constants"
)

func TestCalculateTrustScore_Table(t *testing.T) {
	m := NewManager(nil)

	tests := []struct {
		name   string
		role   constants.Role
		level  int
		rating float64
		want   int
	}{
		{"fresh citizen", constants.RoleCitizen, 0, 0, 75},
		{"rated citizen", constants.RoleCitizen, 0, 4.5, 165},
		{"approved ngo", constants.RoleNGO, 3, 0, 250},
		{"public worker full docs", constants.RolePublicWorker, 4, 5, 425},
		{"admin maxed inputs capped", constants.RoleAdmin, 4, 100, MaxTrustScore},
		{"unknown role gets no bonus", constants.Role("Alien"), 0, 0, 50},
		{"hostile rating floored at zero", constants.RoleCitizen, 0, -100, 0},
		{"level above range clamped", constants.RoleCitizen, 99, 0, 275},
		{"level below range clamped", constants.RoleCitizen, -3, 0, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.CalculateTrustScore(tt.role, tt.level, tt.rating)
			if got.Total != tt.want {
				t.Errorf("CalculateTrustScore(%s, %d, %v).Total = %d, want %d",
					tt.role, tt.level, tt.rating, got.Total, tt.want)
			}
		})
	}
}

func TestCalculateTrustScore_Deterministic(t *testing.T) {
	m := NewManager(nil)

	a := m.CalculateTrustScore(constants.RoleNGO, 2, 3.5)
	b := m.CalculateTrustScore(constants.RoleNGO, 2, 3.5)
	if a != b {
		t.Errorf("same inputs produced different scores: %+v vs %+v", a, b)
	}
}

func TestCalculateTrustScore_Monotonic(t *testing.T) {
	m := NewManager(nil)

	roles := []constants.Role{
		constants.RoleCitizen,
		constants.RoleNGO,
		constants.RolePublicWorker,
		constants.RoleAdmin,
	}

	// Monotonic in role hierarchy, other inputs fixed.
	prev := -1
	for _, role := range roles {
		total := m.CalculateTrustScore(role, 1, 2).Total
		if total < prev {
			t.Errorf("trust score decreased moving up hierarchy at %s: %d < %d", role, total, prev)
		}
		prev = total
	}

	// Monotonic in verification level.
	prev = -1
	for level := 0; level <= 4; level++ {
		total := m.CalculateTrustScore(constants.RoleNGO, level, 2).Total
		if total < prev {
			t.Errorf("trust score decreased with verification level %d: %d < %d", level, total, prev)
		}
		prev = total
	}

	// Monotonic in community rating.
	prev = -1
	for _, rating := range []float64{0, 1, 2.5, 4, 5} {
		total := m.CalculateTrustScore(constants.RoleNGO, 1, rating).Total
		if total < prev {
			t.Errorf("trust score decreased with rating %v: %d < %d", rating, total, prev)
		}
		prev = total
	}
}

func TestCalculateTrustScore_Cap(t *testing.T) {
	m := NewManager(nil)

	got := m.CalculateTrustScoreWithBase(constants.RoleAdmin, 4, 1e9, 500)
	if got.Total != MaxTrustScore {
		t.Errorf("cap not applied: got %d", got.Total)
	}
}

func TestVerificationLevelFor(t *testing.T) {
	if got := VerificationLevelFor(constants.VerificationApproved); got != 3 {
		t.Errorf("approved level = %d, want 3", got)
	}
	if got := VerificationLevelFor(constants.VerificationPending); got != 1 {
		t.Errorf("pending level = %d, want 1", got)
	}
	if got := VerificationLevelFor(constants.VerificationNotRequested); got != 0 {
		t.Errorf("not-requested level = %d, want 0", got)
	}
	if got := VerificationLevelFor(constants.VerificationRejected); got != 0 {
		t.Errorf("rejected level = %d, want 0", got)
	}
}
