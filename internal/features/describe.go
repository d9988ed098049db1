package features

// CategoryForFeature returns a coarse grouping label used by the UI.
func CategoryForFeature(name string) string {
	switch name {
	case ColLengthURL, ColLengthHostname:
		return "length"

	case ColNbDots, ColNbHyphens, ColNbAt, ColNbQm, ColNbAnd, ColNbOr, ColNbEq,
		ColNbUnderscore, ColNbTilde, ColNbPercent, ColNbSlash, ColNbStar,
		ColNbColon, ColNbComma, ColNbSemicolumn, ColNbDollar, ColNbSpace,
		ColNbWWW, ColNbCom, ColNbDslash:
		return "count"

	case ColHTTPInPath, ColHTTPSToken, ColRatioDigitsURL, ColRatioDigitsHost:
		return "token"

	case ColIP, ColPunycode, ColPort, ColTLDInPath, ColTLDInSubdomain,
		ColAbnormalSubdomain, ColNbSubdomains, ColPrefixSuffix, ColRandomDomain:
		return "host"

	default:
		return "unmodeled"
	}
}

// DescribeFeature returns a short human-readable explanation of a feature.
func DescribeFeature(name string) string {
	switch name {

	// Lengths
	case ColLengthURL:
		return "Number of characters in the URL"
	case ColLengthHostname:
		return "Number of characters in the host"

	// Counts
	case ColNbDots:
		return "Number of '.' characters"
	case ColNbHyphens:
		return "Number of '-' characters"
	case ColNbAt:
		return "Number of '@' characters"
	case ColNbQm:
		return "Number of '?' characters"
	case ColNbAnd:
		return "Number of '&' characters"
	case ColNbOr:
		return "Number of '|' characters"
	case ColNbEq:
		return "Number of '=' characters"
	case ColNbUnderscore:
		return "Number of '_' characters"
	case ColNbTilde:
		return "Number of '~' characters"
	case ColNbPercent:
		return "Number of '%' characters"
	case ColNbSlash:
		return "Number of '/' characters"
	case ColNbStar:
		return "Number of '*' characters"
	case ColNbColon:
		return "Number of ':' characters"
	case ColNbComma:
		return "Number of ',' characters"
	case ColNbSemicolumn:
		return "Number of ';' characters"
	case ColNbDollar:
		return "Number of '$' characters"
	case ColNbSpace:
		return "Number of spaces"
	case ColNbWWW:
		return "Occurrences of 'www'"
	case ColNbCom:
		return "Occurrences of '.com'"
	case ColNbDslash:
		return "Occurrences of '//'"

	// Tokens
	case ColHTTPInPath:
		return "Path contains 'http'"
	case ColHTTPSToken:
		return "URL contains 'https'"
	case ColRatioDigitsURL:
		return "Share of digits in the URL"
	case ColRatioDigitsHost:
		return "Share of digits in the host"

	// Host structure
	case ColIP:
		return "Host is an IPv4 address"
	case ColPunycode:
		return "Host contains a punycode label (xn--)"
	case ColPort:
		return "Non-standard port (not computed)"
	case ColTLDInPath:
		return "Path ends in a TLD-like suffix"
	case ColTLDInSubdomain:
		return "Subdomain ends in a TLD-like suffix"
	case ColAbnormalSubdomain:
		return "Host has more than three labels"
	case ColNbSubdomains:
		return "Number of subdomain labels"
	case ColPrefixSuffix:
		return "Host contains a hyphen"
	case ColRandomDomain:
		return "Random-looking domain (not computed)"

	default:
		// Fallback: just echo the feature name
		return name
	}
}
