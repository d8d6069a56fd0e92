// Package extract turns raw rejection-letter text into a structured
// ClaimRecord. The primary path asks the LLM for a fixed-key JSON object;
// any failure degrades to pattern scanning. Extraction never returns an
// error: the worst input yields an all-missing record.
package extract

import (
	"context"
	"encoding/json"
	"strings"

	"appealgen/internal/llm"
	"appealgen/internal/model"
)

// maxDocumentChars caps how much of the document goes into the extraction
// prompt; rejection letters front-load the identifiers.
const maxDocumentChars = 4000

const extractionSystem = `You are an expert at extracting structured information from Indian insurance claim rejection letters.
Extract the following fields from the document. Return ONLY a valid JSON object with these exact keys.
If a field is not found, use null. Be precise and extract exact values as they appear.

Required JSON format:
{
    "claim_number": "exact claim/reference number",
    "policy_number": "policy/certificate number",
    "patient_name": "patient/insured name without titles like Mr/Mrs",
    "insurer_name": "insurance company name only (e.g., ICICI Lombard, Star Health, HDFC ERGO)",
    "hospital_name": "hospital name only without address",
    "tpa_name": "TPA company name if mentioned (e.g., Medi Assist, Paramount)",
    "admission_date": "date of admission in DD/MM/YYYY or as found",
    "discharge_date": "date of discharge in DD/MM/YYYY or as found",
    "claim_amount": "claimed amount as number without currency symbol",
    "denial_reason": "brief reason for rejection/denial",
    "denial_codes": ["array of denial codes like PED-001, PA-001"]
}

IMPORTANT:
- Extract ONLY the actual values, not labels or surrounding text
- For patient_name, remove titles like Mr., Mrs., Shri, Smt.
- Return valid JSON only, no additional text`

// Result carries the extracted record plus how it was produced. Degraded
// means the pattern fallback ran instead of (or after) the LLM path.
type Result struct {
	Record   model.ClaimRecord
	Degraded bool
	Reason   string
}

// Extractor produces ClaimRecords from raw document text
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates an extractor. A nil provider forces the fallback
// path, which keeps the tool usable without any API key.
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract never fails: it returns a ClaimRecord, possibly empty, and flags
// whether the result came from the degraded path.
func (e *Extractor) Extract(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{
			Record:   model.NewClaimRecord(),
			Degraded: true,
			Reason:   "no document text provided",
		}
	}

	if e.provider == nil {
		return Result{
			Record:   scanPatterns(text),
			Degraded: true,
			Reason:   "no LLM provider configured",
		}
	}

	record, err := e.extractWithLLM(ctx, text)
	if err != nil {
		return Result{
			Record:   scanPatterns(text),
			Degraded: true,
			Reason:   "LLM extraction failed: " + err.Error(),
		}
	}
	if recordEmpty(record) {
		return Result{
			Record:   scanPatterns(text),
			Degraded: true,
			Reason:   "LLM extraction returned no usable fields",
		}
	}

	return Result{Record: record}
}

func (e *Extractor) extractWithLLM(ctx context.Context, text string) (model.ClaimRecord, error) {
	doc := text
	if len(doc) > maxDocumentChars {
		doc = doc[:maxDocumentChars]
	}

	prompt := "Extract information from this insurance claim document:\n\n---\n" +
		doc + "\n---\n\nReturn ONLY the JSON object with extracted values."

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      extractionSystem,
		Prompt:      prompt,
		MaxTokens:   1500,
		Temperature: 0.1, // extraction wants precision, not creativity
	})
	if err != nil {
		return model.ClaimRecord{}, err
	}

	return parseExtraction(resp.Text)
}

// parseExtraction reads the LLM's JSON reply into a record. Keys that are
// absent, null, or the wrong shape are recorded as missing rather than
// failing the whole extraction.
func parseExtraction(text string) (model.ClaimRecord, error) {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &raw); err != nil {
		return model.ClaimRecord{}, err
	}

	record := model.NewClaimRecord()

	for _, field := range model.Fields() {
		if field == model.FieldDenialCodes {
			continue
		}
		if value, ok := stringValue(raw[string(field)]); ok && value != "" {
			record.Set(field, value, model.ProvenanceAI)
		}
	}

	if codes := codesValue(raw["denial_codes"]); len(codes) > 0 {
		record.SetCodes(codes, model.ProvenanceAI)
	}

	return record, nil
}

// stripCodeFences removes a surrounding markdown code block, which chat
// models add despite instructions not to.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
	} else {
		return text
	}
	if end := strings.Index(text, "```"); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}

// stringValue accepts a JSON string or number; models sometimes emit
// claim_amount as a bare number.
func stringValue(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// codesValue accepts an array of codes or a single code string.
func codesValue(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		var codes []string
		for _, c := range list {
			if c = strings.TrimSpace(c); c != "" {
				codes = append(codes, strings.ToUpper(c))
			}
		}
		return codes
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && strings.TrimSpace(single) != "" {
		return []string{strings.ToUpper(strings.TrimSpace(single))}
	}
	return nil
}

func recordEmpty(record model.ClaimRecord) bool {
	for _, field := range model.Fields() {
		if !record.IsMissing(field) {
			return false
		}
	}
	return true
}
