package services

import (
	"testing"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

func TestResolvePriority_Table(t *testing.T) {
	r := NewPriorityResolver(nil)

	cases := []struct {
		category  string
		escalated bool
		want      string
	}{
		{"billing", false, models.PriorityHigh},
		{"refund", false, models.PriorityHigh},
		{"complaint", false, models.PriorityHigh},
		{"technical", false, models.PriorityMedium},
		{"shipping", false, models.PriorityMedium},
		{"returns", false, models.PriorityMedium},
		{"general", false, models.PriorityLow},
		{"nonsense", false, models.PriorityLow},
		{"", false, models.PriorityLow},

		// escalation always wins
		{"billing", true, models.PriorityHigh},
		{"refund", true, models.PriorityHigh},
		{"complaint", true, models.PriorityHigh},
		{"technical", true, models.PriorityHigh},
		{"shipping", true, models.PriorityHigh},
		{"returns", true, models.PriorityHigh},
		{"general", true, models.PriorityHigh},
		{"nonsense", true, models.PriorityHigh},
		{"", true, models.PriorityHigh},
	}

	for _, tc := range cases {
		got := r.Resolve(tc.category, tc.escalated)
		if got != tc.want {
			t.Errorf("Resolve(%q, %v) = %q, want %q", tc.category, tc.escalated, got, tc.want)
		}
	}
}

func TestResolvePriority_Deterministic(t *testing.T) {
	r := NewPriorityResolver(nil)

	categories := []string{"billing", "refund", "complaint", "technical", "shipping", "returns", "general", "other", ""}
	for _, cat := range categories {
		for _, esc := range []bool{false, true} {
			first := r.Resolve(cat, esc)
			for i := 0; i < 50; i++ {
				if got := r.Resolve(cat, esc); got != first {
					t.Fatalf("Resolve(%q, %v) not deterministic: %q then %q", cat, esc, first, got)
				}
			}
		}
	}
}

func TestResolvePriority_CustomTable(t *testing.T) {
	r := NewPriorityResolver(map[string]string{"vip": models.PriorityHigh})

	if got := r.Resolve("vip", false); got != models.PriorityHigh {
		t.Errorf("custom table ignored: got %q", got)
	}
	if got := r.Resolve("billing", false); got != models.PriorityLow {
		t.Errorf("custom table should fully replace defaults: got %q", got)
	}
}
