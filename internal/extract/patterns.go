package extract

import (
	"regexp"
	"strings"

	"appealgen/internal/model"
)

// Field signatures common in Indian claim rejection letters. These are the
// fallback path only; the primary path is the LLM extraction.
var (
	claimNumberRe   = regexp.MustCompile(`(?i)claim\s*(?:number|#|no\.?|id|ref)\s*[:.]?\s*([A-Z0-9\-/]+)`)
	policyNumberRe  = regexp.MustCompile(`(?i)policy\s*(?:number|#|no\.?)\s*[:.]?\s*([A-Z0-9\-/]+)`)
	admissionDateRe = regexp.MustCompile(`(?i)(?:admission|admitted)\s*(?:date|on)?\s*[:.]?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`)
	dischargeDateRe = regexp.MustCompile(`(?i)discharge\s*(?:date|on)?\s*[:.]?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`)
	claimAmountRe   = regexp.MustCompile(`(?i)(?:claim|total)\s*amount\s*[:.]?\s*(?:Rs\.?|₹|INR)?\s*([\d,]+)`)
	denialCodeRe    = regexp.MustCompile(`(?i)\b(PED-\d+|WP-\d+|EXC-\d+|PA-\d+|DOC-\d+|MN-\d+|NW-\d+|SL-\d+)\b`)
)

// knownInsurers are matched by substring; the list covers the major Indian
// health insurers seen in rejection letters.
var knownInsurers = []string{
	"Star Health", "ICICI Lombard", "HDFC ERGO", "Bajaj Allianz", "Max Bupa",
	"Care Health", "Niva Bupa", "Aditya Birla", "Tata AIG", "SBI General",
	"New India", "United India", "Oriental", "National Insurance",
}

var knownHospitals = []string{
	"Apollo", "Fortis", "Max", "Medanta", "Narayana", "Manipal", "AIIMS",
	"Kokilaben", "Lilavati", "Hinduja", "Sir Ganga Ram", "BLK", "Artemis",
}

// scanPatterns recovers a partial ClaimRecord by pattern matching. Silent
// partial results are fine; every recovered field is tagged
// ProvenanceAIFallback and everything else stays missing.
func scanPatterns(text string) model.ClaimRecord {
	record := model.NewClaimRecord()

	scalar := map[model.Field]*regexp.Regexp{
		model.FieldClaimNumber:   claimNumberRe,
		model.FieldPolicyNumber:  policyNumberRe,
		model.FieldAdmissionDate: admissionDateRe,
		model.FieldDischargeDate: dischargeDateRe,
		model.FieldClaimAmount:   claimAmountRe,
	}
	for field, re := range scalar {
		if m := re.FindStringSubmatch(text); m != nil {
			record.Set(field, strings.TrimSpace(m[1]), model.ProvenanceAIFallback)
		}
	}

	lower := strings.ToLower(text)

	for _, insurer := range knownInsurers {
		if strings.Contains(lower, strings.ToLower(insurer)) {
			record.Set(model.FieldInsurerName, insurer, model.ProvenanceAIFallback)
			break
		}
	}

	for _, hospital := range knownHospitals {
		if !strings.Contains(lower, strings.ToLower(hospital)) {
			continue
		}
		// Widen to the surrounding phrase when it reads like a hospital name
		contextRe := regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(hospital) + `[A-Za-z\s,]+(?:Hospital|Medical|Healthcare)?[^,\n]*)`)
		name := hospital
		if m := contextRe.FindStringSubmatch(text); m != nil {
			name = strings.TrimSpace(m[1])
			if len(name) > 50 {
				name = name[:50]
			}
		}
		record.Set(model.FieldHospitalName, name, model.ProvenanceAIFallback)
		break
	}

	if codes := scanDenialCodes(text); len(codes) > 0 {
		record.SetCodes(codes, model.ProvenanceAIFallback)
	}

	return record
}

// scanDenialCodes finds rejection codes anywhere in the text, uppercased
// and deduplicated in order of first appearance.
func scanDenialCodes(text string) []string {
	matches := denialCodeRe.FindAllString(text, -1)
	seen := make(map[string]bool)
	var codes []string
	for _, m := range matches {
		code := strings.ToUpper(m)
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}
