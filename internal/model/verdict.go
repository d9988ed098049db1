package model

// Verdict is the outcome of checking one URL.
type Verdict string

const (
	// VerdictTrusted means the URL is on the allowlist; nothing was classified.
	VerdictTrusted Verdict = "trusted"

	// VerdictPhishing and VerdictLegitimate are the classifier's labels.
	VerdictPhishing   Verdict = "phishing"
	VerdictLegitimate Verdict = "legitimate"

	// VerdictSchemaMismatch means the extracted vector did not fit the model;
	// no classification was attempted.
	VerdictSchemaMismatch Verdict = "feature_count_mismatch"
)

// Dataset labels, as they appear in the status column.
const (
	LabelLegitimate = string(VerdictLegitimate)
	LabelPhishing   = string(VerdictPhishing)
)

// IsClassLabel reports whether v is one of the two classifier labels.
func (v Verdict) IsClassLabel() bool {
	return v == VerdictPhishing || v == VerdictLegitimate
}
