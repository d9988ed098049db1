package features

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	dottedQuadRe = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
	tldSuffixRe  = regexp.MustCompile(`\.[a-z]{2,}$`)
)

// Values is the named feature mapping for one URL (column -> value).
type Values map[string]float64

// Extractor computes lexical URL features. The zero value is not usable;
// build one with NewExtractor.
type Extractor struct {
	zeroIPFlag bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithZeroIPFlag makes the extractor always emit 0 for the ip column instead
// of matching the host against a dotted-quad pattern.
func WithZeroIPFlag() Option { return func(e *Extractor) { e.zeroIPFlag = true } }

// NewExtractor returns an extractor. By default the ip column is 1 when the
// host (port stripped) is a dotted quad.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, o := range opts {
		o(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// Extract runs the default extractor.
func Extract(raw string) Values {
	return defaultExtractor.Extract(raw)
}

// Extract maps a raw URL string to its named features. It never fails; parts
// of a malformed URL default to "" and the features derived from them to 0.
func (e *Extractor) Extract(raw string) Values {
	parts := SplitURL(raw)
	host := parts.Host
	path := parts.Path

	f := make(Values, len(ComputedColumns))

	// -----------------------------------------------------------------------
	// 1) Lengths & literal counts over the raw text
	// -----------------------------------------------------------------------

	urlLen := utf8.RuneCountInString(raw)
	hostLen := utf8.RuneCountInString(host)
	f[ColLengthURL] = float64(urlLen)
	f[ColLengthHostname] = float64(hostLen)

	for _, sc := range substringCounts {
		f[sc.Column] = float64(strings.Count(raw, sc.Needle))
	}

	// -----------------------------------------------------------------------
	// 2) Tokens
	// -----------------------------------------------------------------------

	f[ColHTTPInPath] = flag(strings.Contains(path, "http"))
	f[ColHTTPSToken] = flag(strings.Contains(raw, "https"))

	f[ColRatioDigitsURL] = digitRatio(raw, urlLen)
	f[ColRatioDigitsHost] = digitRatio(host, hostLen)

	// -----------------------------------------------------------------------
	// 3) Host structure
	// -----------------------------------------------------------------------

	if !e.zeroIPFlag {
		f[ColIP] = flag(dottedQuadRe.MatchString(stripPort(host)))
	} else {
		f[ColIP] = 0
	}
	f[ColPunycode] = flag(strings.Contains(host, "xn--"))
	f[ColPrefixSuffix] = flag(strings.Contains(host, "-"))

	labels := strings.Split(host, ".")
	if host != "" {
		f[ColNbSubdomains] = float64(len(labels) - 2)
		f[ColAbnormalSubdomain] = flag(len(labels) > 3)
	} else {
		f[ColNbSubdomains] = 0
		f[ColAbnormalSubdomain] = 0
	}

	// -----------------------------------------------------------------------
	// 4) TLD position
	// -----------------------------------------------------------------------

	f[ColTLDInPath] = flag(tldSuffixRe.MatchString(path))
	// labels[0] holds no dot, so this only fires if the split rule changes.
	f[ColTLDInSubdomain] = flag(tldSuffixRe.MatchString(labels[0]))

	// Unimplemented heuristics, kept for schema compatibility.
	f[ColPort] = 0
	f[ColRandomDomain] = 0

	return f
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func digitRatio(s string, n int) float64 {
	if n == 0 {
		return 0
	}
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return float64(digits) / float64(n)
}

// stripPort drops userinfo and a trailing ":port" from an authority.
func stripPort(host string) string {
	if i := strings.LastIndexByte(host, '@'); i >= 0 {
		host = host[i+1:]
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return host
}
