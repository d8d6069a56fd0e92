package pipeline

import "strings"

// guidanceMarkers are tried in order; the first one present splits the
// final stage output into letter and guidance. Matching is case-insensitive.
var guidanceMarkers = []string{
	"**Next Steps:**",
	"**Next Steps**",
	"## Next Steps",
	"### Next Steps",
	"**Final Notes:**",
	"**Final Notes**",
	"## Final Notes",
}

// SplitAppeal separates the final output into the appeal letter and the
// policyholder guidance. Splitting is best-effort: when no marker is found
// the whole text is the letter and the guidance is empty, never the other
// way round.
func SplitAppeal(text string) (letter, guidance string) {
	lower := strings.ToLower(text)
	for _, marker := range guidanceMarkers {
		idx := strings.Index(lower, strings.ToLower(marker))
		if idx < 0 {
			continue
		}
		letter = strings.TrimSpace(text[:idx])
		guidance = strings.TrimSpace(text[idx+len(marker):])
		return letter, guidance
	}
	return strings.TrimSpace(text), ""
}
