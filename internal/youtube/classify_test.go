package youtube

import "testing"

func TestIsShortForm(t *testing.T) {
	tests := []struct {
		name        string
		seconds     int
		known       bool
		title       string
		description string
		want        bool
	}{
		{"at threshold", 61, true, "clip", "", true},
		{"just over threshold no marker", 62, true, "clip", "", false},
		{"over threshold with tag", 75, true, "quick one #shorts", "", true},
		{"tag in description", 75, true, "quick one", "new upload #shorts today", true},
		{"tagged but too long", 91, true, "quick one #shorts", "", false},
		{"tagged at tagged threshold", 90, true, "quick one #shorts", "", true},
		{"unknown duration with tag", 0, false, "#shorts compilation", "", true},
		{"unknown duration without marker", 0, false, "studio session", "", false},
		{"bare word shorts", 70, true, "my best shorts of the year", "", true},
		{"word embedded in another word", 70, true, "T-shirt shortstop highlights", "", false},
		{"zero seconds known", 0, true, "ping", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsShortForm(tt.seconds, tt.known, tt.title, tt.description)
			if got != tt.want {
				t.Errorf("IsShortForm(%d, %v, %q, %q) = %v, want %v",
					tt.seconds, tt.known, tt.title, tt.description, got, tt.want)
			}
		})
	}
}

func TestIsLongForm(t *testing.T) {
	tests := []struct {
		name        string
		seconds     int
		known       bool
		title       string
		description string
		want        bool
	}{
		{"regular video", 300, true, "album mix", "", true},
		{"at short threshold", 61, true, "clip", "", false},
		{"just over threshold", 62, true, "clip", "", true},
		{"long but tagged", 300, true, "behind the scenes #shorts", "", false},
		{"unknown duration no marker", 0, false, "fresh upload", "", true},
		{"unknown duration with marker", 0, false, "fresh upload #shorts", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsLongForm(tt.seconds, tt.known, tt.title, tt.description)
			if got != tt.want {
				t.Errorf("IsLongForm(%d, %v, %q, %q) = %v, want %v",
					tt.seconds, tt.known, tt.title, tt.description, got, tt.want)
			}
		})
	}
}

// The two classifiers overlap on purpose in the duration-unknown case: an
// untagged item with no detail record shows up long-form only, and a tagged
// one shorts only, so nothing is double counted either way.
func TestClassifierAsymmetry(t *testing.T) {
	if IsShortForm(0, false, "fresh upload", "") {
		t.Error("untagged unknown-duration item should not be short-form")
	}
	if !IsLongForm(0, false, "fresh upload", "") {
		t.Error("untagged unknown-duration item should be long-form")
	}
	if !IsShortForm(0, false, "fresh upload #shorts", "") {
		t.Error("tagged unknown-duration item should be short-form")
	}
	if IsLongForm(0, false, "fresh upload #shorts", "") {
		t.Error("tagged unknown-duration item should not be long-form")
	}
}
