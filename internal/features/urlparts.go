package features

import "strings"

// URLParts holds the components of a URL split without validation. Any part
// that cannot be identified is the empty string.
type URLParts struct {
	Scheme   string
	Host     string // full authority (userinfo and port included)
	Path     string
	Params   string
	Query    string
	Fragment string
}

// schemes whose last path segment may carry ";params"
var paramSchemes = map[string]bool{
	"": true, "ftp": true, "hdl": true, "prospero": true, "http": true, "imap": true,
	"https": true, "shttp": true, "rtsp": true, "rtspu": true, "sip": true, "sips": true,
	"mms": true, "sftp": true, "tel": true,
}

func isSchemeChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		r == '+' || r == '-' || r == '.'
}

// SplitURL splits raw into its components. It never fails: malformed input
// degrades to empty components instead. An authority with unbalanced IPv6
// brackets is treated as unparseable and yields empty parts.
func SplitURL(raw string) URLParts {
	var p URLParts

	s := strings.TrimLeftFunc(raw, func(r rune) bool { return r <= ' ' })
	s = strings.NewReplacer("\t", "", "\r", "", "\n", "").Replace(s)

	if i := strings.IndexByte(s, ':'); i > 0 {
		c := s[0]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			valid := true
			for _, r := range s[:i] {
				if !isSchemeChar(r) {
					valid = false
					break
				}
			}
			if valid {
				p.Scheme = strings.ToLower(s[:i])
				s = s[i+1:]
			}
		}
	}

	if strings.HasPrefix(s, "//") {
		rest := s[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		p.Host, s = rest[:end], rest[end:]
		if strings.Contains(p.Host, "[") != strings.Contains(p.Host, "]") {
			return URLParts{}
		}
	}

	if i := strings.IndexByte(s, '#'); i >= 0 {
		s, p.Fragment = s[:i], s[i+1:]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s, p.Query = s[:i], s[i+1:]
	}
	if paramSchemes[p.Scheme] && strings.Contains(s, ";") {
		s, p.Params = splitParams(s)
	}
	p.Path = s
	return p
}

func splitParams(s string) (string, string) {
	var i int
	if slash := strings.LastIndexByte(s, '/'); slash >= 0 {
		i = strings.IndexByte(s[slash:], ';')
		if i < 0 {
			return s, ""
		}
		i += slash
	} else {
		i = strings.IndexByte(s, ';')
	}
	return s[:i], s[i+1:]
}

// Hostname returns the host without userinfo or port.
func (p URLParts) Hostname() string { return stripPort(p.Host) }
