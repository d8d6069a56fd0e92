package model

import "strings"

// Field identifies a single ClaimRecord field for provenance tracking
// and reconciliation.
type Field string

const (
	FieldClaimNumber   Field = "claim_number"
	FieldPolicyNumber  Field = "policy_number"
	FieldPatientName   Field = "patient_name"
	FieldInsurerName   Field = "insurer_name"
	FieldHospitalName  Field = "hospital_name"
	FieldTPAName       Field = "tpa_name"
	FieldAdmissionDate Field = "admission_date"
	FieldDischargeDate Field = "discharge_date"
	FieldClaimAmount   Field = "claim_amount"
	FieldDenialReason  Field = "denial_reason"
	FieldDenialCodes   Field = "denial_codes"
)

// Fields lists every ClaimRecord field in document order.
func Fields() []Field {
	return []Field{
		FieldClaimNumber,
		FieldPolicyNumber,
		FieldPatientName,
		FieldInsurerName,
		FieldHospitalName,
		FieldTPAName,
		FieldAdmissionDate,
		FieldDischargeDate,
		FieldClaimAmount,
		FieldDenialReason,
		FieldDenialCodes,
	}
}

// Provenance records where a field value came from
type Provenance string

const (
	// ProvenanceAI marks a field filled by the primary LLM extraction
	ProvenanceAI Provenance = "ai-extracted"

	// ProvenanceAIFallback marks a field recovered by the regex fallback
	// after the LLM path failed
	ProvenanceAIFallback Provenance = "ai-extracted-via-fallback"

	// ProvenanceUser marks a field the user explicitly set (or cleared)
	ProvenanceUser Provenance = "user-provided"

	// ProvenanceMissing marks a field no source could fill
	ProvenanceMissing Provenance = "missing"
)

// ClaimRecord holds the structured fields of a claim rejection.
// Every field is optional: extraction may fail per field, and a field with
// provenance ProvenanceMissing carries the zero value.
type ClaimRecord struct {
	ClaimNumber   string   `json:"claim_number,omitempty"`
	PolicyNumber  string   `json:"policy_number,omitempty"`
	PatientName   string   `json:"patient_name,omitempty"`
	InsurerName   string   `json:"insurer_name,omitempty"`
	HospitalName  string   `json:"hospital_name,omitempty"`
	TPAName       string   `json:"tpa_name,omitempty"`
	AdmissionDate string   `json:"admission_date,omitempty"`
	DischargeDate string   `json:"discharge_date,omitempty"`
	ClaimAmount   string   `json:"claim_amount,omitempty"`
	DenialReason  string   `json:"denial_reason,omitempty"`
	DenialCodes   []string `json:"denial_codes,omitempty"`

	// Provenance carries one tag per field (1:1 with the fields above)
	Provenance map[Field]Provenance `json:"provenance"`
}

// NewClaimRecord returns a record with every field tagged missing.
func NewClaimRecord() ClaimRecord {
	prov := make(map[Field]Provenance, len(Fields()))
	for _, f := range Fields() {
		prov[f] = ProvenanceMissing
	}
	return ClaimRecord{Provenance: prov}
}

// Get returns the value of a scalar field. DenialCodes is reported as a
// comma-joined string for display; use the slice directly for logic.
func (r ClaimRecord) Get(f Field) string {
	switch f {
	case FieldClaimNumber:
		return r.ClaimNumber
	case FieldPolicyNumber:
		return r.PolicyNumber
	case FieldPatientName:
		return r.PatientName
	case FieldInsurerName:
		return r.InsurerName
	case FieldHospitalName:
		return r.HospitalName
	case FieldTPAName:
		return r.TPAName
	case FieldAdmissionDate:
		return r.AdmissionDate
	case FieldDischargeDate:
		return r.DischargeDate
	case FieldClaimAmount:
		return r.ClaimAmount
	case FieldDenialReason:
		return r.DenialReason
	case FieldDenialCodes:
		return joinCodes(r.DenialCodes)
	}
	return ""
}

// Set assigns a scalar field value together with its provenance.
// Setting FieldDenialCodes through here parses a comma-separated list.
func (r *ClaimRecord) Set(f Field, value string, prov Provenance) {
	switch f {
	case FieldClaimNumber:
		r.ClaimNumber = value
	case FieldPolicyNumber:
		r.PolicyNumber = value
	case FieldPatientName:
		r.PatientName = value
	case FieldInsurerName:
		r.InsurerName = value
	case FieldHospitalName:
		r.HospitalName = value
	case FieldTPAName:
		r.TPAName = value
	case FieldAdmissionDate:
		r.AdmissionDate = value
	case FieldDischargeDate:
		r.DischargeDate = value
	case FieldClaimAmount:
		r.ClaimAmount = value
	case FieldDenialReason:
		r.DenialReason = value
	case FieldDenialCodes:
		r.DenialCodes = splitCodes(value)
	default:
		return
	}
	if r.Provenance == nil {
		r.Provenance = make(map[Field]Provenance)
	}
	r.Provenance[f] = prov
}

// SetCodes assigns the denial code list with its provenance.
func (r *ClaimRecord) SetCodes(codes []string, prov Provenance) {
	r.DenialCodes = codes
	if r.Provenance == nil {
		r.Provenance = make(map[Field]Provenance)
	}
	r.Provenance[FieldDenialCodes] = prov
}

// IsMissing reports whether a field is still unfilled.
func (r ClaimRecord) IsMissing(f Field) bool {
	if f == FieldDenialCodes {
		return len(r.DenialCodes) == 0
	}
	return r.Get(f) == ""
}

// Clone returns a deep copy so one run's edits never leak into another.
func (r ClaimRecord) Clone() ClaimRecord {
	out := r
	out.DenialCodes = append([]string(nil), r.DenialCodes...)
	out.Provenance = make(map[Field]Provenance, len(r.Provenance))
	for k, v := range r.Provenance {
		out.Provenance[k] = v
	}
	return out
}

func joinCodes(codes []string) string {
	return strings.Join(codes, ", ")
}

func splitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
