package knowledge

import (
	"strings"
	"testing"
)

func TestCatalog_Lookup(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	tests := []struct {
		name         string
		code         string
		wantFound    bool
		wantCategory string
	}{
		{"known code", "PED-001", true, "Pre-Existing Disease"},
		{"lowercase", "ped-001", true, "Pre-Existing Disease"},
		{"padded", "  PED-001  ", true, "Pre-Existing Disease"},
		{"pre-auth", "PA-001", true, "Pre-Authorization"},
		{"unknown", "ZZZ-999", false, ""},
		{"empty", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, found := catalog.Lookup(tt.code)
			if found != tt.wantFound {
				t.Fatalf("Lookup(%q) found=%v, want %v", tt.code, found, tt.wantFound)
			}
			if found && entry.Category != tt.wantCategory {
				t.Errorf("Lookup(%q) category=%q, want %q", tt.code, entry.Category, tt.wantCategory)
			}
		})
	}
}

func TestCatalog_CategoryFor(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	cat, ok := catalog.CategoryFor("ped-002")
	if !ok {
		t.Fatal("Expected category for PED-002")
	}
	if cat.Name != "Pre-Existing Disease" {
		t.Errorf("Unexpected category name: %s", cat.Name)
	}
	if len(cat.CommonAppealStrategies) == 0 {
		t.Error("Expected category-level strategies")
	}

	if _, ok := catalog.CategoryFor("ZZZ-999"); ok {
		t.Error("Expected no category for unknown code")
	}
}

func TestCatalog_Strategies_Deduplicated(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	strategies := catalog.Strategies("PED-001")
	if len(strategies) == 0 {
		t.Fatal("Expected strategies for PED-001")
	}

	seen := make(map[string]bool)
	for _, s := range strategies {
		if seen[s] {
			t.Errorf("Duplicate strategy: %q", s)
		}
		seen[s] = true
	}

	if got := catalog.Strategies("ZZZ-999"); len(got) != 0 {
		t.Errorf("Expected no strategies for unknown code, got %d", len(got))
	}
}

func TestCatalog_Analyze(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	analysis := catalog.Analyze([]string{"PED-001", "wp-002", "ZZZ-999"})

	if len(analysis.Found) != 2 {
		t.Fatalf("Expected 2 found codes, got %d", len(analysis.Found))
	}
	if len(analysis.Unknown) != 1 || analysis.Unknown[0] != "ZZZ-999" {
		t.Errorf("Unexpected unknown codes: %v", analysis.Unknown)
	}
	// PED-001 is rated High, so the combined likelihood is Good
	if analysis.Likelihood != "Good" {
		t.Errorf("Expected likelihood Good, got %s", analysis.Likelihood)
	}
	if analysis.PrimaryCategory != "Pre-Existing Disease" {
		t.Errorf("Unexpected primary category: %s", analysis.PrimaryCategory)
	}
	if analysis.Summary == "" {
		t.Error("Expected a non-empty summary")
	}
}

func TestCatalog_Analyze_AllUnknown(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	analysis := catalog.Analyze([]string{"AAA-111", "BBB-222"})
	if len(analysis.Found) != 0 {
		t.Errorf("Expected no findings, got %d", len(analysis.Found))
	}
	if analysis.Likelihood != "Unknown" {
		t.Errorf("Expected likelihood Unknown, got %s", analysis.Likelihood)
	}
}

func TestOverallLikelihood(t *testing.T) {
	tests := []struct {
		name  string
		rates []string
		want  string
	}{
		{"empty", nil, "Unknown"},
		{"high wins", []string{"Low", "High"}, "Good"},
		{"medium", []string{"Low", "Medium"}, "Moderate"},
		{"all low", []string{"Low", "Low"}, "Challenging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overallLikelihood(tt.rates); got != tt.want {
				t.Errorf("overallLikelihood(%v) = %s, want %s", tt.rates, got, tt.want)
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	report := FormatReport(catalog.Analyze([]string{"PA-001", "XYZ-000"}))

	for _, want := range []string{
		"REJECTION CODE ANALYSIS",
		"Code: PA-001",
		"Category: Pre-Authorization",
		"Unknown Codes: XYZ-000",
		"Overall Appeal Likelihood: Good",
		"RECOMMENDED APPEAL STRATEGIES:",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Report missing %q:\n%s", want, report)
		}
	}
}

func TestTemplates(t *testing.T) {
	templates, err := NewTemplates()
	if err != nil {
		t.Fatalf("NewTemplates failed: %v", err)
	}

	ped := templates.ForCategory("Pre-Existing Disease")
	if !strings.Contains(ped, "first-diagnosis") {
		t.Errorf("PED template looks wrong: %q", ped)
	}

	fallback := templates.ForCategory("No Such Category")
	if !strings.Contains(fallback, "Grievance Redressal Officer") {
		t.Errorf("Fallback should be the default skeleton, got: %q", fallback)
	}
}

func TestRegulations(t *testing.T) {
	text := Regulations()
	if !strings.Contains(text, "IRDAI") {
		t.Error("Regulations summary should mention IRDAI")
	}
}
