package features

// Column names of the computed features, in dataset order.
const (
	ColLengthURL         = "length_url"
	ColLengthHostname    = "length_hostname"
	ColIP                = "ip"
	ColNbDots            = "nb_dots"
	ColNbHyphens         = "nb_hyphens"
	ColNbAt              = "nb_at"
	ColNbQm              = "nb_qm"
	ColNbAnd             = "nb_and"
	ColNbOr              = "nb_or"
	ColNbEq              = "nb_eq"
	ColNbUnderscore      = "nb_underscore"
	ColNbTilde           = "nb_tilde"
	ColNbPercent         = "nb_percent"
	ColNbSlash           = "nb_slash"
	ColNbStar            = "nb_star"
	ColNbColon           = "nb_colon"
	ColNbComma           = "nb_comma"
	ColNbSemicolumn      = "nb_semicolumn"
	ColNbDollar          = "nb_dollar"
	ColNbSpace           = "nb_space"
	ColNbWWW             = "nb_www"
	ColNbCom             = "nb_com"
	ColNbDslash          = "nb_dslash"
	ColHTTPInPath        = "http_in_path"
	ColHTTPSToken        = "https_token"
	ColRatioDigitsURL    = "ratio_digits_url"
	ColRatioDigitsHost   = "ratio_digits_host"
	ColPunycode          = "punycode"
	ColPort              = "port"
	ColTLDInPath         = "tld_in_path"
	ColTLDInSubdomain    = "tld_in_subdomain"
	ColAbnormalSubdomain = "abnormal_subdomain"
	ColNbSubdomains      = "nb_subdomains"
	ColPrefixSuffix      = "prefix_suffix"
	ColRandomDomain      = "random_domain"
)

// Dataset meta-columns that are never features.
const (
	ColURL    = "url"
	ColStatus = "status"
)

// substringCounts maps count columns to the literal they count in the raw URL.
var substringCounts = []struct {
	Column string
	Needle string
}{
	{ColNbDots, "."},
	{ColNbHyphens, "-"},
	{ColNbAt, "@"},
	{ColNbQm, "?"},
	{ColNbAnd, "&"},
	{ColNbOr, "|"},
	{ColNbEq, "="},
	{ColNbUnderscore, "_"},
	{ColNbTilde, "~"},
	{ColNbPercent, "%"},
	{ColNbSlash, "/"},
	{ColNbStar, "*"},
	{ColNbColon, ":"},
	{ColNbComma, ","},
	{ColNbSemicolumn, ";"},
	{ColNbDollar, "$"},
	{ColNbSpace, " "},
	{ColNbWWW, "www"},
	{ColNbCom, ".com"},
	{ColNbDslash, "//"},
}

// ComputedColumns lists every column Extract produces, in dataset order.
var ComputedColumns = []string{
	ColLengthURL, ColLengthHostname, ColIP,
	ColNbDots, ColNbHyphens, ColNbAt, ColNbQm, ColNbAnd, ColNbOr, ColNbEq,
	ColNbUnderscore, ColNbTilde, ColNbPercent, ColNbSlash, ColNbStar,
	ColNbColon, ColNbComma, ColNbSemicolumn, ColNbDollar, ColNbSpace,
	ColNbWWW, ColNbCom, ColNbDslash,
	ColHTTPInPath, ColHTTPSToken,
	ColRatioDigitsURL, ColRatioDigitsHost,
	ColPunycode, ColPort,
	ColTLDInPath, ColTLDInSubdomain, ColAbnormalSubdomain,
	ColNbSubdomains, ColPrefixSuffix, ColRandomDomain,
}

// PlaceholderColumns are computed but always 0: the heuristics behind them
// are not implemented.
var PlaceholderColumns = []string{ColPort, ColRandomDomain}

// UnmodeledColumns are the remaining columns of the reference phishing
// dataset. Extract never computes them, so Schema.Align zero-fills them.
// They need page content, DNS, WHOIS or traffic data.
var UnmodeledColumns = []string{
	"shortening_service", "path_extension", "nb_redirection", "nb_external_redirection",
	"length_words_raw", "char_repeat", "shortest_words_raw", "shortest_word_host",
	"shortest_word_path", "longest_words_raw", "longest_word_host", "longest_word_path",
	"avg_words_raw", "avg_word_host", "avg_word_path", "phish_hints",
	"domain_in_brand", "brand_in_subdomain", "brand_in_path", "suspecious_tld",
	"statistical_report", "nb_hyperlinks", "ratio_intHyperlinks", "ratio_extHyperlinks",
	"ratio_nullHyperlinks", "nb_extCSS", "ratio_intRedirection", "ratio_extRedirection",
	"ratio_intErrors", "ratio_extErrors", "login_form", "external_favicon",
	"links_in_tags", "submit_email", "ratio_intMedia", "ratio_extMedia",
	"sfh", "iframe", "popup_window", "safe_anchor",
	"onmouseover", "right_clic", "empty_title", "domain_in_title",
	"domain_with_copyright", "whois_registered_domain", "domain_registration_length", "domain_age",
	"web_traffic", "dns_record", "google_index", "page_rank",
}

// DatasetColumns returns the full feature schema of the reference dataset:
// computed columns followed by the unmodeled ones.
func DatasetColumns() []string {
	out := make([]string, 0, len(ComputedColumns)+len(UnmodeledColumns))
	out = append(out, ComputedColumns...)
	return append(out, UnmodeledColumns...)
}
