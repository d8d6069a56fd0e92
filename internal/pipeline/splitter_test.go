package pipeline

import (
	"strings"
	"testing"
)

func TestSplitAppeal(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantLetter   string
		wantGuidance string
	}{
		{
			name:         "markdown heading",
			text:         "Dear Sir,\n\nPlease reconsider.\n\n## Next Steps\nGather documents.",
			wantLetter:   "Dear Sir,\n\nPlease reconsider.",
			wantGuidance: "Gather documents.",
		},
		{
			name:         "bold marker with colon",
			text:         "Letter body here.\n\n**Next Steps:**\n1. File within 30 days.",
			wantLetter:   "Letter body here.",
			wantGuidance: "1. File within 30 days.",
		},
		{
			name:         "case insensitive",
			text:         "Body.\n\n## NEXT STEPS\nDo things.",
			wantLetter:   "Body.",
			wantGuidance: "Do things.",
		},
		{
			name:         "final notes variant",
			text:         "Body.\n\n**Final Notes**\nKeep copies.",
			wantLetter:   "Body.",
			wantGuidance: "Keep copies.",
		},
		{
			name:         "no marker keeps everything as letter",
			text:         "A letter with no guidance section at all.",
			wantLetter:   "A letter with no guidance section at all.",
			wantGuidance: "",
		},
		{
			name:         "empty input",
			text:         "",
			wantLetter:   "",
			wantGuidance: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			letter, guidance := SplitAppeal(tt.text)
			if letter != tt.wantLetter {
				t.Errorf("letter = %q, want %q", letter, tt.wantLetter)
			}
			if guidance != tt.wantGuidance {
				t.Errorf("guidance = %q, want %q", guidance, tt.wantGuidance)
			}
		})
	}
}

func TestSplitAppeal_FirstMarkerWins(t *testing.T) {
	text := "Body.\n\n## Next Steps\nGuidance start.\n\n**Final Notes**\nAlso guidance."

	letter, guidance := SplitAppeal(text)
	if letter != "Body." {
		t.Errorf("letter = %q", letter)
	}
	if !strings.Contains(guidance, "Also guidance") {
		t.Error("later markers should stay inside the guidance text")
	}
}
