package metrics

import "testing"

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name                   string
		booksRead, pagesRead   int
		targetBooks, targetPgs int
		want                   float64
	}{
		{"halfway by books", 6, 1800, 12, 3600, 50},
		{"overshoot clamps to 100", 15, 0, 12, 3600, 100},
		{"zero book target guards division", 6, 1800, 0, 0, 0},
		{"zero book target ignores pages", 10, 900, 0, 3600, 0},
		{"negative reads count as zero", -3, 0, 12, 0, 0},
		{"exact target", 12, 0, 12, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GoalProgress(tt.booksRead, tt.pagesRead, tt.targetBooks, tt.targetPgs)
			if got != tt.want {
				t.Errorf("GoalProgress(%d, %d, %d, %d) = %v, want %v",
					tt.booksRead, tt.pagesRead, tt.targetBooks, tt.targetPgs, got, tt.want)
			}
		})
	}
}

func TestPagesProgress(t *testing.T) {
	if got := PagesProgress(900, 3600); got != 25 {
		t.Errorf("PagesProgress(900, 3600) = %v, want 25", got)
	}
	if got := PagesProgress(5000, 3600); got != 100 {
		t.Errorf("PagesProgress(5000, 3600) = %v, want clamped 100", got)
	}
	if got := PagesProgress(10, 0); got != 0 {
		t.Errorf("PagesProgress(10, 0) = %v, want 0", got)
	}
}

func TestChallengeProgress(t *testing.T) {
	got := ChallengeProgress(
		map[string]int{"fiction": 5, "poetry": 2, "history": 4},
		map[string]int{"fiction": 7, "history": 1},
	)

	if len(got) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(got))
	}
	if got["fiction"].Percentage != 100 {
		t.Errorf("fiction over-completion = %v, want clamped 100", got["fiction"].Percentage)
	}
	if got["fiction"].Completed != 7 {
		t.Errorf("fiction completed = %d, want raw 7", got["fiction"].Completed)
	}
	if got["poetry"] != (CategoryMetric{Required: 2, Completed: 0, Percentage: 0}) {
		t.Errorf("missing category should count zero, got %+v", got["poetry"])
	}
	if got["history"].Percentage != 25 {
		t.Errorf("history percentage = %v, want 25", got["history"].Percentage)
	}
}

func TestChallengeProgress_ZeroRequiredGuards(t *testing.T) {
	got := ChallengeProgress(map[string]int{"fiction": 0}, map[string]int{"fiction": 3})
	if got["fiction"].Percentage != 0 {
		t.Errorf("zero requirement percentage = %v, want 0", got["fiction"].Percentage)
	}
}

func TestPaginationWindow(t *testing.T) {
	tests := []struct {
		name                  string
		current, last, spread int
		want                  []PageToken
	}{
		{"middle of long range", 5, 10, 2, []PageToken{1, Ellipsis, 3, 4, 5, 6, 7, Ellipsis, 10}},
		{"start of range", 1, 10, 2, []PageToken{1, 2, 3, Ellipsis, 10}},
		{"end of range", 10, 10, 2, []PageToken{1, Ellipsis, 8, 9, 10}},
		{"short range has no gaps", 2, 4, 2, []PageToken{1, 2, 3, 4}},
		{"single page", 1, 1, 2, []PageToken{1}},
		{"current clamped into range", 99, 10, 2, []PageToken{1, Ellipsis, 8, 9, 10}},
		{"zero spread", 5, 10, 0, []PageToken{1, Ellipsis, 5, Ellipsis, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaginationWindow(tt.current, tt.last, tt.spread)
			if len(got) != len(tt.want) {
				t.Fatalf("PaginationWindow(%d, %d, %d) = %v, want %v",
					tt.current, tt.last, tt.spread, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("PaginationWindow(%d, %d, %d) = %v, want %v",
						tt.current, tt.last, tt.spread, got, tt.want)
				}
			}
		})
	}
}

func TestPaginationWindow_Deterministic(t *testing.T) {
	a := PaginationWindow(5, 40, 2)
	b := PaginationWindow(5, 40, 2)
	if len(a) != len(b) {
		t.Fatalf("repeated calls differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated calls differ: %v vs %v", a, b)
		}
	}
}
