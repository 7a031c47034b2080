package youtube

import "regexp"

const (
	// Anything at or below this duration is short-form outright.
	shortDurationMax = 61
	// Marker-tagged items are still accepted as short-form up to this.
	taggedShortDurationMax = 90
)

// The marker matches the literal "#shorts" tag or the bare word as a
// standalone token, never as a substring of an unrelated word.
var (
	shortsTag  = regexp.MustCompile(`(?i)(^|\s)#shorts(\s|$)`)
	shortsWord = regexp.MustCompile(`(?i)\bshorts\b`)
)

func looksLikeShort(text string) bool {
	return shortsTag.MatchString(text) || shortsWord.MatchString(text)
}

// IsShortForm reports whether an item belongs in the shorts view. When the
// duration is unknown the marker alone is enough: for this view, missing a
// genuine short is worse than including a stray long video.
func IsShortForm(seconds int, known bool, title, description string) bool {
	if known && seconds <= shortDurationMax {
		return true
	}

	marker := looksLikeShort(title) || looksLikeShort(description)
	if marker && known && seconds <= taggedShortDurationMax {
		return true
	}
	if marker && !known {
		return true
	}

	return false
}

// IsLongForm reports whether an item belongs in the general video view.
// Unknown-duration items are kept unless the text says otherwise. This is
// deliberately not the complement of IsShortForm: each view is biased in its
// own favor when duration data lags the upload.
func IsLongForm(seconds int, known bool, title, description string) bool {
	marker := looksLikeShort(title) || looksLikeShort(description)

	if !known {
		return !marker
	}

	return seconds > shortDurationMax && !marker
}
