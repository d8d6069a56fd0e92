package knowledge

import (
	"fmt"
	"strings"
)

// CodeFinding pairs a known code with its catalog entry
type CodeFinding struct {
	Code  string          `json:"code"`
	Entry DenialCodeEntry `json:"entry"`
}

// Analysis is the combined assessment of all codes on a claim
type Analysis struct {
	Found           []CodeFinding `json:"found"`
	Unknown         []string      `json:"unknown,omitempty"`
	PrimaryCategory string        `json:"primary_category,omitempty"`
	Strategies      []string      `json:"strategies,omitempty"`

	// Likelihood is "Good", "Moderate", "Challenging", or "Unknown"
	Likelihood string `json:"likelihood"`
	Summary    string `json:"summary,omitempty"`
}

// Analyze assesses every code on the claim against the catalog. Unknown
// codes are reported, never treated as errors.
func (c *Catalog) Analyze(codes []string) Analysis {
	analysis := Analysis{Likelihood: "Unknown"}

	categoryCounts := make(map[string]int)
	var categoryOrder []string
	var rates []string
	seenStrategy := make(map[string]bool)

	for _, code := range codes {
		entry, ok := c.Lookup(code)
		if !ok {
			analysis.Unknown = append(analysis.Unknown, normalizeCode(code))
			continue
		}

		analysis.Found = append(analysis.Found, CodeFinding{Code: entry.Code, Entry: entry})
		rates = append(rates, entry.SuccessRate)

		if cat, ok := c.CategoryFor(code); ok {
			if categoryCounts[cat.Name] == 0 {
				categoryOrder = append(categoryOrder, cat.Name)
			}
			categoryCounts[cat.Name]++
		}

		for _, s := range c.Strategies(code) {
			if !seenStrategy[s] {
				seenStrategy[s] = true
				analysis.Strategies = append(analysis.Strategies, s)
			}
		}
	}

	// Most frequent category wins; ties break on first appearance
	best := 0
	for _, name := range categoryOrder {
		if categoryCounts[name] > best {
			best = categoryCounts[name]
			analysis.PrimaryCategory = name
		}
	}

	analysis.Likelihood = overallLikelihood(rates)

	if len(analysis.Found) > 0 {
		analysis.Summary = fmt.Sprintf(
			"Primary rejection reason: %s. Appeal likelihood: %s. Found %d potential appeal strategies.",
			analysis.Found[0].Entry.Description, analysis.Likelihood, len(analysis.Strategies))
	}

	return analysis
}

// overallLikelihood maps per-code success rates to a combined label: any
// High rated code makes the appeal "Good", else any Medium makes it
// "Moderate", otherwise "Challenging".
func overallLikelihood(rates []string) string {
	if len(rates) == 0 {
		return "Unknown"
	}
	hasMedium := false
	for _, r := range rates {
		switch r {
		case "High":
			return "Good"
		case "Medium":
			hasMedium = true
		}
	}
	if hasMedium {
		return "Moderate"
	}
	return "Challenging"
}

// FormatReport renders the analysis as the plain-text report handed to the
// Rejection Reviewer stage and printed by the codes command.
func FormatReport(analysis Analysis) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("REJECTION CODE ANALYSIS\n")
	b.WriteString(rule + "\n\n")

	for _, finding := range analysis.Found {
		entry := finding.Entry
		fmt.Fprintf(&b, "Code: %s\n", finding.Code)
		fmt.Fprintf(&b, "Category: %s\n", entry.Category)
		fmt.Fprintf(&b, "Description: %s\n", entry.Description)
		if entry.SuccessRate != "" {
			fmt.Fprintf(&b, "Success Rate: %s\n", entry.SuccessRate)
		}
		if len(entry.CommonCauses) > 0 {
			fmt.Fprintf(&b, "Common Causes: %s\n", strings.Join(entry.CommonCauses, ", "))
		}
		if len(entry.RequiredDocuments) > 0 {
			fmt.Fprintf(&b, "Required Documents: %s\n", strings.Join(entry.RequiredDocuments, ", "))
		}
		b.WriteString("\n")
	}

	if len(analysis.Unknown) > 0 {
		fmt.Fprintf(&b, "Unknown Codes: %s\n\n", strings.Join(analysis.Unknown, ", "))
	}

	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Overall Appeal Likelihood: %s\n\n", analysis.Likelihood)

	if len(analysis.Strategies) > 0 {
		b.WriteString("RECOMMENDED APPEAL STRATEGIES:\n")
		for i, s := range analysis.Strategies {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}

	b.WriteString(rule + "\n")
	return b.String()
}
