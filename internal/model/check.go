package model

import "time"

// FeatureImportance is one bar of the importance chart.
type FeatureImportance struct {
	Feature     string  `json:"feature"`
	Importance  float64 `json:"importance"`
	Description string  `json:"description,omitempty"`
}

// Explanation compares one extracted value with the class-conditional means.
type Explanation struct {
	Feature string `json:"feature"`
	Value   float64 `json:"value"`

	// CloserTo is VerdictPhishing or VerdictLegitimate.
	CloserTo Verdict `json:"closer_to"`

	// Mean is the mean of the class named by CloserTo.
	Mean float64 `json:"mean"`

	// Text is the display line, values rounded to 2 decimals.
	Text string `json:"text"`
}

// CheckResult is everything the presentation layer needs for one URL.
// Example:
//
//	{
//	  "id": "5f1c...",
//	  "url": "http://paypal.com.secure-login.xyz/",
//	  "verdict": "phishing",
//	  "host": "paypal.com.secure-login.xyz",
//	  "importances": [{"feature": "nb_dots", "importance": 0.12}],
//	  "explanations": [{"feature": "length_url", "closer_to": "phishing", ...}]
//	}
type CheckResult struct {
	// ID identifies the check in the history store (empty when not recorded).
	ID string `json:"id,omitempty"`

	URL     string  `json:"url"`
	Verdict Verdict `json:"verdict"`

	// Host is the authority the extractor saw; UnicodeHost is its decoded
	// form when the host carries punycode labels.
	Host        string `json:"host,omitempty"`
	UnicodeHost string `json:"unicode_host,omitempty"`

	// Features is the named feature mapping (only for classified URLs).
	Features map[string]float64 `json:"features,omitempty"`

	// Importances is the top of the model's global importance ranking.
	Importances []FeatureImportance `json:"importances,omitempty"`

	// Explanations holds the surfaced comparison lines.
	Explanations []Explanation `json:"explanations,omitempty"`

	// Error describes a schema mismatch or other failure.
	Error string `json:"error,omitempty"`

	CheckedAt time.Time `json:"checked_at"`
}
