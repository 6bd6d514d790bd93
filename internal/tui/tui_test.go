package tui

import (
	"strings"
	"testing"
)

func TestRenderStars(t *testing.T) {
	cases := []struct {
		rating int
		filled int
	}{
		{0, 0}, {1, 1}, {3, 3}, {5, 5},
	}
	for _, c := range cases {
		out := renderStars(c.rating)
		if got := strings.Count(out, "★"); got != c.filled {
			t.Errorf("rating %d: want %d filled stars, got %d", c.rating, c.filled, got)
		}
		if got := strings.Count(out, "☆"); got != 5-c.filled {
			t.Errorf("rating %d: want %d empty stars, got %d", c.rating, 5-c.filled, got)
		}
	}
}

func TestFindingLines(t *testing.T) {
	lines := findingLines([]string{"indemnity clause present"}, []string{"unlimited liability"})
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "indemnity clause present") {
		t.Errorf("finding missing from %q", lines[0])
	}
	if !strings.Contains(lines[1], "unlimited liability") {
		t.Errorf("risk missing from %q", lines[1])
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("want truncated id, got %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("short ids pass through, got %q", got)
	}
}
