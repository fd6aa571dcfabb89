package tickets

import "testing"

func TestNext(t *testing.T) {
	cases := []struct {
		from    Status
		action  Action
		want    Status
		allowed bool
	}{
		{StatusOpen, ActionResolve, StatusResolved, true},
		{StatusOpen, ActionEscalate, StatusEscalated, true},
		{StatusOpen, ActionReopen, "", false},
		{StatusResolved, ActionReopen, StatusReopened, true},
		{StatusResolved, ActionResolve, "", false},
		{StatusResolved, ActionEscalate, "", false},
		{StatusReopened, ActionResolve, StatusResolved, true},
		{StatusReopened, ActionEscalate, StatusEscalated, true},
		{StatusReopened, ActionReopen, "", false},
		{StatusEscalated, ActionResolve, "", false},
		{StatusEscalated, ActionReopen, "", false},
		{StatusEscalated, ActionEscalate, "", false},
	}
	for _, tc := range cases {
		got, ok := Next(tc.from, tc.action)
		if ok != tc.allowed {
			t.Errorf("Next(%s, %s) allowed = %v, want %v", tc.from, tc.action, ok, tc.allowed)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("Next(%s, %s) = %s, want %s", tc.from, tc.action, got, tc.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusResolved, StatusReopened, StatusEscalated} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false", s)
		}
	}
	if ValidStatus("Closed") {
		t.Error("ValidStatus(Closed) = true, want false")
	}
}
