package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionPaint) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionPaint)
	f.AddPointer(Pointer{X: 3, Y: 4, Button: PointerErase})
	if !f.Has(ActionPaint) || f.Empty() {
		t.Error("frame should carry the paint action")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Errorf("Clear() left %+v", f)
	}
	if !clone.Has(ActionPaint) || len(clone.Pointers) != 1 || clone.Pointers[0].Button != PointerErase {
		t.Errorf("Clone() = %+v, expected an independent copy", clone)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionLeft, "Left"},
		{ActionNextMaterial, "NextMaterial"},
		{ActionSnapshot, "Snapshot"},
		{ActionPause, "Pause"},
		{Action(999), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
