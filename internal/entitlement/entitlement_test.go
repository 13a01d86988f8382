package entitlement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fambudgeteer/family-budget/internal/entitlement"
	"github.com/fambudgeteer/family-budget/internal/models"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func TestIsEntitled(t *testing.T) {
	future := ptrTime(now.AddDate(0, 1, 0))
	past := ptrTime(now.AddDate(0, -1, 0))

	tests := []struct {
		name string
		sub  models.Subscription
		want bool
	}{
		{
			name: "active without trial end",
			sub:  models.Subscription{Status: entitlement.StatusActive},
			want: true,
		},
		{
			name: "active with expired trial end",
			sub:  models.Subscription{Status: entitlement.StatusActive, TrialEnd: past},
			want: true,
		},
		{
			name: "trial with future end",
			sub:  models.Subscription{Status: entitlement.StatusTrial, TrialEnd: future},
			want: true,
		},
		{
			name: "trial with past end",
			sub:  models.Subscription{Status: entitlement.StatusTrial, TrialEnd: past},
			want: false,
		},
		{
			name: "trial ending exactly now",
			sub:  models.Subscription{Status: entitlement.StatusTrial, TrialEnd: ptrTime(now)},
			want: false,
		},
		{
			name: "trial without end date",
			sub:  models.Subscription{Status: entitlement.StatusTrial},
			want: false,
		},
		{
			name: "expired",
			sub:  models.Subscription{Status: entitlement.StatusExpired, TrialEnd: future},
			want: false,
		},
		{
			name: "canceled",
			sub:  models.Subscription{Status: entitlement.StatusCanceled},
			want: false,
		},
		{
			name: "unknown status",
			sub:  models.Subscription{Status: "paused"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entitlement.IsEntitled(tt.sub, now))
		})
	}
}

func TestMeetsPlan(t *testing.T) {
	tests := []struct {
		name     string
		plan     string
		required string
		want     bool
	}{
		{"free meets free", entitlement.PlanFree, entitlement.PlanFree, true},
		{"free does not meet premium", entitlement.PlanFree, entitlement.PlanPremium, false},
		{"free does not meet family", entitlement.PlanFree, entitlement.PlanFamily, false},
		{"premium meets free", entitlement.PlanPremium, entitlement.PlanFree, true},
		{"premium meets premium", entitlement.PlanPremium, entitlement.PlanPremium, true},
		{"premium does not meet family", entitlement.PlanPremium, entitlement.PlanFamily, false},
		{"family meets everything", entitlement.PlanFamily, entitlement.PlanFamily, true},
		{"unknown plan maps to lowest level", "enterprise", entitlement.PlanPremium, false},
		{"unknown required plan is free level", entitlement.PlanFree, "enterprise", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entitlement.MeetsPlan(tt.plan, tt.required))
		})
	}
}

// Монотонность: если план достаточен для required, он достаточен
// и для любого required с меньшим или равным уровнем.
func TestMeetsPlanMonotonic(t *testing.T) {
	plans := []string{entitlement.PlanFree, entitlement.PlanPremium, entitlement.PlanFamily}
	for _, p := range plans {
		for _, r := range plans {
			if !entitlement.MeetsPlan(p, r) {
				continue
			}
			for _, r2 := range plans {
				if entitlement.PlanLevel(r2) <= entitlement.PlanLevel(r) {
					assert.True(t, entitlement.MeetsPlan(p, r2),
						"plan %s meets %s but not lower plan %s", p, r, r2)
				}
			}
		}
	}
}

func TestDecide(t *testing.T) {
	future := ptrTime(now.AddDate(0, 1, 0))
	past := ptrTime(now.AddDate(0, -1, 0))

	tests := []struct {
		name       string
		sub        models.Subscription
		required   string
		wantAllow  bool
		wantReason string
	}{
		{
			name:      "active family plan allows premium requirement",
			sub:       models.Subscription{Plan: entitlement.PlanFamily, Status: entitlement.StatusActive},
			required:  entitlement.PlanPremium,
			wantAllow: true,
		},
		{
			name:       "trial free plan denied for premium requirement",
			sub:        models.Subscription{Plan: entitlement.PlanFree, Status: entitlement.StatusTrial, TrialEnd: future},
			required:   entitlement.PlanPremium,
			wantAllow:  false,
			wantReason: entitlement.ReasonInsufficientPlan,
		},
		{
			name:       "expired trial denied even with sufficient plan",
			sub:        models.Subscription{Plan: entitlement.PlanPremium, Status: entitlement.StatusTrial, TrialEnd: past},
			required:   entitlement.PlanFree,
			wantAllow:  false,
			wantReason: entitlement.ReasonExpired,
		},
		{
			name:       "expired takes precedence over insufficient plan",
			sub:        models.Subscription{Plan: entitlement.PlanFree, Status: entitlement.StatusExpired},
			required:   entitlement.PlanFamily,
			wantAllow:  false,
			wantReason: entitlement.ReasonExpired,
		},
		{
			name:      "active premium allows premium",
			sub:       models.Subscription{Plan: entitlement.PlanPremium, Status: entitlement.StatusActive},
			required:  entitlement.PlanPremium,
			wantAllow: true,
		},
		{
			name:       "unknown plan fails closed",
			sub:        models.Subscription{Plan: "vip", Status: entitlement.StatusActive},
			required:   entitlement.PlanPremium,
			wantAllow:  false,
			wantReason: entitlement.ReasonInsufficientPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entitlement.Decide(tt.sub, tt.required, now)
			assert.Equal(t, tt.wantAllow, got.Allowed)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}
