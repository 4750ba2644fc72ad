package leave

import "testing"

func TestEffectFor(t *testing.T) {
	cases := []struct {
		name string
		from LeaveRequestStatus
		to   LeaveRequestStatus
		want BalanceEffect
	}{
		{"first approval debits", LeaveRequestStatusPending, LeaveRequestStatusApproved, EffectDebit},
		{"insert directly approved debits", "", LeaveRequestStatusApproved, EffectDebit},
		{"re-saving approved does not debit again", LeaveRequestStatusApproved, LeaveRequestStatusApproved, EffectNone},
		{"rejecting an approved request credits back", LeaveRequestStatusApproved, LeaveRequestStatusRejected, EffectCredit},
		{"rejecting a pending request is a no-op", LeaveRequestStatusPending, LeaveRequestStatusRejected, EffectNone},
		{"cancelling a pending request is a no-op", LeaveRequestStatusPending, LeaveRequestStatusCancelled, EffectNone},
		{"cancelling an approved request is a no-op", LeaveRequestStatusApproved, LeaveRequestStatusCancelled, EffectNone},
		{"insert as pending is a no-op", "", LeaveRequestStatusPending, EffectNone},
		{"pending re-save is a no-op", LeaveRequestStatusPending, LeaveRequestStatusPending, EffectNone},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := EffectFor(c.from, c.to); got != c.want {
				t.Errorf("EffectFor(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
			}
		})
	}
}

func TestIsActiveStatus(t *testing.T) {
	active := []LeaveRequestStatus{LeaveRequestStatusPending, LeaveRequestStatusApproved}
	inactive := []LeaveRequestStatus{LeaveRequestStatusRejected, LeaveRequestStatusCancelled}

	for _, s := range active {
		if !IsActiveStatus(s) {
			t.Errorf("IsActiveStatus(%q) = false, want true", s)
		}
	}
	for _, s := range inactive {
		if IsActiveStatus(s) {
			t.Errorf("IsActiveStatus(%q) = true, want false", s)
		}
	}
}
