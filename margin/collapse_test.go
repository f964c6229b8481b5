package margin

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want int
	}{
		{"both positive", 20, 30, 30},
		{"both negative", -10, -4, -10},
		{"mixed signs", 20, -5, 15},
		{"zero and positive", 0, 12, 12},
		{"zero and negative", 0, -3, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collapse(tt.a, tt.b); got != tt.want {
				t.Errorf("Collapse(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := New(tt.a).Collapse(New(tt.b)).Margin(); got != tt.want {
				t.Errorf("State collapse of %d and %d = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAdjoiningBlocks(t *testing.T) {
	// first block: bottom margin 20, second block: top margin 30, no borders
	out, spacing := CollapseBottom(Edge{Margin: 20}, nil)
	if spacing != 0 {
		t.Fatalf("CollapseBottom() spacing = %d, want 0", spacing)
	}
	out, spacing = CollapseTop(Edge{Margin: 30}, out)
	if spacing != 0 {
		t.Fatalf("CollapseTop() spacing = %d, want 0", spacing)
	}
	if got := out.Margin(); got != 30 {
		t.Errorf("collapsed gap = %d, want 30", got)
	}
}

func TestCollapseTop_BorderClosesEdge(t *testing.T) {
	out, spacing := CollapseTop(Edge{Margin: 10, BorderPadding: 2}, New(25))
	if out != nil {
		t.Errorf("CollapseTop() state = %s, want none", out)
	}
	if spacing != 25 {
		t.Errorf("CollapseTop() spacing = %d, want 25", spacing)
	}
}

func TestCollapseBottom(t *testing.T) {
	t.Run("no margin no state", func(t *testing.T) {
		out, spacing := CollapseBottom(Edge{}, nil)
		if out != nil || spacing != 0 {
			t.Errorf("CollapseBottom() = %s, %d, want none, 0", out, spacing)
		}
	})

	t.Run("no margin passes state through", func(t *testing.T) {
		in := New(7)
		out, _ := CollapseBottom(Edge{}, in)
		if out != in {
			t.Errorf("CollapseBottom() = %s, want incoming state", out)
		}
	})

	t.Run("padding closes edge", func(t *testing.T) {
		out, spacing := CollapseBottom(Edge{Margin: 5, BorderPadding: 1}, New(12))
		if spacing != 12 {
			t.Errorf("CollapseBottom() spacing = %d, want 12", spacing)
		}
		if got := out.Margin(); got != 5 {
			t.Errorf("CollapseBottom() state margin = %d, want 5", got)
		}
	})

	t.Run("negative margins", func(t *testing.T) {
		out, _ := CollapseBottom(Edge{Margin: -8}, New(-3))
		if got := out.Margin(); got != -8 {
			t.Errorf("CollapseBottom() margin = %d, want -8", got)
		}
	})
}

func TestState_Equal(t *testing.T) {
	var none *State
	if !none.Equal(nil) {
		t.Error("nil state is not equal to nil")
	}
	if New(3).Equal(nil) {
		t.Error("state is equal to nil")
	}
	if !New(3).Equal(New(3)) {
		t.Error("equal states compare unequal")
	}
}

func TestTracer(t *testing.T) {
	var tr *Tracer
	// must not panic
	tr.Trace("top", "p1", Edge{Margin: 1}, nil, New(1), 0)

	tr = NewTracer(zaptest.NewLogger(t))
	if !tr.IsEnabled() {
		t.Fatal("tracer with debug logger is disabled")
	}
	tr.Trace("bottom", "p2", Edge{Margin: 4}, New(2), New(4), 0)
}
