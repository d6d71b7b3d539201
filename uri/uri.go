// Package uri implements the absolute-URI/URN identifier model used
// throughout the engine: RFC 3986 URL-form parsing and resolution, RFC 8141
// URN-form parsing, and the percent-encoding normalization rules both
// productions rely on.
//
// Hand-rolled rather than built on net/url: net/url has no notion of the
// URN r-component/q-component/f-component grammar, and every dedicated URI
// package in the retrieval pack (fredbi/uri, ttacon/uri) hand-rolls its own
// grammar rather than wrapping net/url, so this follows the same idiom.
package uri

import "strings"

// Form distinguishes the two absolute-URI productions this package models.
type Form int

const (
	FormURL Form = iota
	FormURN
)

// schemesWithoutAuthority never carry an authority component; setting
// userinfo/port/authority on one of these always fails.
var schemesWithoutAuthority = map[string]bool{
	"urn":    true,
	"mailto": true,
	"tel":    true,
	"data":   true,
}

// Absolute is a normalized absolute URI: either URL-form (scheme, optional
// authority, path, optional query, optional fragment) or URN-form (scheme
// "urn", NID, NSS, optional r/q/f components). Two Absolutes are equal iff
// their normalized byte representations are equal.
type Absolute struct {
	form   Form
	scheme string // always lower-cased

	// URL-form.
	hasAuthority bool
	username     string
	hasUsername  bool
	password     string
	hasPassword  bool
	host         string // lower-cased
	port         string // empty means "no port / default port elided"
	path         string // normalized, dot-segments removed, percent-encoded
	query        string // percent-encoded, sans leading '?'
	hasQuery     bool
	fragment     string // percent-encoded, sans leading '#'
	hasFragment  bool

	// URN-form.
	nid          string
	nss          string
	rComponent   string
	hasR         bool
	qComponent   string
	hasQURN      bool
	fComponent   string
	hasFURN      bool
}

// Form reports whether u is a URL-form or URN-form absolute URI.
func (u Absolute) Form() Form { return u.form }

// Scheme returns the lower-cased scheme.
func (u Absolute) Scheme() string { return u.scheme }

// Host returns the lower-cased host, or "" if u has no authority.
func (u Absolute) Host() string { return u.host }

// Port returns the normalized port, or "" if absent/default.
func (u Absolute) Port() string { return u.port }

// Path returns the normalized path (URL-form only).
func (u Absolute) Path() string { return u.path }

// Query returns the raw query (without leading '?') and whether one is
// present.
func (u Absolute) Query() (string, bool) { return u.query, u.hasQuery }

// Fragment returns the raw fragment (without leading '#') and whether one is
// present.
func (u Absolute) Fragment() (string, bool) { return u.fragment, u.hasFragment }

// NID returns the URN Namespace Identifier (URN-form only).
func (u Absolute) NID() string { return u.nid }

// NSS returns the URN Namespace Specific String (URN-form only).
func (u Absolute) NSS() string { return u.nss }

// Parse parses s into an Absolute, normalizing as it goes. It fails with a
// typed *Error for malformed input.
func Parse(s string) (Absolute, error) {
	if len(s) > MaxLength {
		return Absolute{}, newErr(Overflow, "uri exceeds 2^32-1 bytes")
	}
	scheme, rest, err := splitScheme(s)
	if err != nil {
		return Absolute{}, err
	}
	if strings.EqualFold(scheme, "urn") {
		return parseURN(scheme, rest)
	}
	return parseURL(scheme, rest)
}

func splitScheme(s string) (scheme, rest string, err error) {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return "", "", newErr(InvalidScheme, "missing scheme")
	}
	scheme = s[:i]
	if !isAlpha(scheme[0]) {
		return "", "", newErr(InvalidScheme, "scheme must start with a letter")
	}
	for j := 1; j < len(scheme); j++ {
		c := scheme[j]
		if !(isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.') {
			return "", "", newErr(InvalidScheme, "invalid scheme character")
		}
	}
	return strings.ToLower(scheme), s[i+1:], nil
}

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func parseURL(scheme, rest string) (Absolute, error) {
	u := Absolute{form: FormURL, scheme: scheme}

	// Split off fragment first, then query, then the authority+path.
	if h := strings.IndexByte(rest, '#'); h != -1 {
		frag, err := normalizeEscapes(rest[h+1:], mustEscapeFragment)
		if err != nil {
			return Absolute{}, err
		}
		u.fragment = frag
		u.hasFragment = true
		rest = rest[:h]
	}
	if q := strings.IndexByte(rest, '?'); q != -1 {
		query, err := normalizeEscapes(rest[q+1:], mustEscapeQuery)
		if err != nil {
			return Absolute{}, err
		}
		u.query = query
		u.hasQuery = true
		rest = rest[:q]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := len(rest)
		for i, c := range rest {
			if c == '/' {
				end = i
				break
			}
		}
		authority := rest[:end]
		rest = rest[end:]
		if err := u.setAuthorityFrom(authority); err != nil {
			return Absolute{}, err
		}
		u.hasAuthority = true
	}

	path, err := normalizeEscapes(rest, mustEscapePath)
	if err != nil {
		return Absolute{}, err
	}
	u.path = removeDotSegments(path)
	return u, nil
}

// setAuthorityFrom parses "[userinfo@]host[:port]".
func (u *Absolute) setAuthorityFrom(authority string) error {
	host := authority
	if at := strings.LastIndexByte(authority, '@'); at != -1 {
		userinfo := authority[:at]
		host = authority[at+1:]
		info, err := normalizeEscapes(userinfo, mustEscapeUserinfo)
		if err != nil {
			return err
		}
		if colon := strings.IndexByte(info, ':'); colon != -1 {
			u.username = info[:colon]
			u.password = info[colon+1:]
			u.hasPassword = true
		} else {
			u.username = info
		}
		u.hasUsername = true
	}

	// Host:port, being careful of IPv6 literals in brackets.
	if strings.HasPrefix(host, "[") {
		end := strings.IndexByte(host, ']')
		if end == -1 {
			return newErr(InvalidAuthority, "unterminated IPv6 literal")
		}
		u.host = strings.ToLower(host[:end+1])
		remainder := host[end+1:]
		if strings.HasPrefix(remainder, ":") {
			return u.setPortFrom(remainder[1:])
		}
		if remainder != "" {
			return newErr(InvalidAuthority, "trailing data after IPv6 literal")
		}
		return nil
	}
	if colon := strings.LastIndexByte(host, ':'); colon != -1 {
		u.host = strings.ToLower(host[:colon])
		return u.setPortFrom(host[colon+1:])
	}
	u.host = strings.ToLower(host)
	return nil
}

var defaultPorts = map[string]string{
	"http": "80", "https": "443", "ws": "80", "wss": "443",
	"ftp": "21", "ssh": "22",
}

func (u *Absolute) setPortFrom(port string) error {
	if port == "" {
		return nil
	}
	for _, c := range port {
		if c < '0' || c > '9' {
			return newErr(InvalidPort, "non-numeric port")
		}
	}
	if dp, ok := defaultPorts[u.scheme]; ok && port == dp {
		return nil // default ports are elided
	}
	u.port = port
	return nil
}

// String renders u back to its normalized textual form.
func (u Absolute) String() string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteByte(':')
	if u.form == FormURN {
		b.WriteString(u.nid)
		b.WriteByte(':')
		b.WriteString(u.nss)
		if u.hasR {
			b.WriteString("?+")
			b.WriteString(u.rComponent)
		}
		if u.hasQURN {
			b.WriteString("?=")
			b.WriteString(u.qComponent)
		}
		if u.hasFURN {
			b.WriteByte('#')
			b.WriteString(u.fComponent)
		}
		return b.String()
	}
	if u.hasAuthority {
		b.WriteString("//")
		if u.hasUsername {
			b.WriteString(u.username)
			if u.hasPassword {
				b.WriteByte(':')
				b.WriteString(u.password)
			}
			b.WriteByte('@')
		}
		b.WriteString(u.host)
		if u.port != "" {
			b.WriteByte(':')
			b.WriteString(u.port)
		}
	}
	b.WriteString(u.path)
	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

// RootURI returns u with its fragment stripped, per the Link/root-uri
// definition in spec.md §3.
func (u Absolute) RootURI() Absolute {
	u.hasFragment = false
	u.fragment = ""
	return u
}

// Equal reports byte-equality of the normalized forms, the equality rule
// spec.md §3 specifies for Absolute URIs.
func (u Absolute) Equal(o Absolute) bool { return u.String() == o.String() }

// IsZero reports whether u is the zero value (no scheme parsed).
func (u Absolute) IsZero() bool { return u.scheme == "" }

// SetFragment replaces the fragment, returning the previous value. It never
// fails with FragmentedID; it fails with InvalidPercentEncoding when fragment
// holds a malformed escape. Kept symmetric with the other Set* methods per
// spec.md §4.1.
func (u *Absolute) SetFragment(fragment string, has bool) (prevValue string, prevHas bool, err error) {
	prevValue, prevHas = u.fragment, u.hasFragment
	if !has {
		u.fragment, u.hasFragment = "", false
		return prevValue, prevHas, nil
	}
	norm, err := normalizeEscapes(fragment, mustEscapeFragment)
	if err != nil {
		return prevValue, prevHas, err
	}
	u.fragment, u.hasFragment = norm, true
	return prevValue, prevHas, nil
}

// SetQuery replaces the query, returning the previous value.
func (u *Absolute) SetQuery(query string, has bool) (prevValue string, prevHas bool, err error) {
	prevValue, prevHas = u.query, u.hasQuery
	if !has {
		u.query, u.hasQuery = "", false
		return prevValue, prevHas, nil
	}
	norm, err := normalizeEscapes(query, mustEscapeQuery)
	if err != nil {
		return prevValue, prevHas, err
	}
	u.query, u.hasQuery = norm, true
	return prevValue, prevHas, nil
}

// SetPath replaces the path (URL-form only), returning the previous value.
func (u *Absolute) SetPath(path string) (prev string, err error) {
	if u.form != FormURL {
		return "", newErr(InvalidURN, "cannot set path on a URN")
	}
	prev = u.path
	norm, err := normalizeEscapes(path, mustEscapePath)
	if err != nil {
		return prev, err
	}
	u.path = removeDotSegments(norm)
	return prev, nil
}

// SetAuthority replaces host[:port], returning the previous "host[:port]".
// Fails with InvalidURN for a URN, with InvalidAuthority when the scheme has
// no authority component or the authority is malformed, and with InvalidPort
// for a non-numeric port.
func (u *Absolute) SetAuthority(authority string) (prev string, err error) {
	if u.form != FormURL {
		return "", newErr(InvalidURN, "cannot set authority on a URN")
	}
	if schemesWithoutAuthority[u.scheme] {
		return "", newErr(InvalidAuthority, "scheme "+u.scheme+" does not allow an authority")
	}
	prev = u.authorityString()
	next := Absolute{form: FormURL, scheme: u.scheme}
	if err := next.setAuthorityFrom(authority); err != nil {
		return prev, err
	}
	if next.hasUsername && schemesWithoutAuthority[u.scheme] {
		return prev, newErr(UsernameNotAllowed, "scheme "+u.scheme+" does not allow userinfo")
	}
	u.hasAuthority = true
	u.username, u.hasUsername = next.username, next.hasUsername
	u.password, u.hasPassword = next.password, next.hasPassword
	u.host, u.port = next.host, next.port
	return prev, nil
}

// SetUserinfo sets username/password, failing with UsernameNotAllowed when u
// has no authority or its scheme is authority-less.
func (u *Absolute) SetUserinfo(username string, password string, hasPassword bool) (err error) {
	if u.form != FormURL || !u.hasAuthority {
		return newErr(UsernameNotAllowed, "no authority to attach userinfo to")
	}
	if schemesWithoutAuthority[u.scheme] {
		return newErr(UsernameNotAllowed, "scheme "+u.scheme+" does not allow userinfo")
	}
	if hasPassword && schemesWithoutAuthority[u.scheme] {
		return newErr(PasswordNotAllowed, "scheme "+u.scheme+" does not allow a password")
	}
	u.username, u.hasUsername = username, username != ""
	u.password, u.hasPassword = password, hasPassword
	return nil
}

// SetPort sets the port, failing with PortNotAllowed for authority-less
// schemes.
func (u *Absolute) SetPort(port string) error {
	if u.form != FormURL || !u.hasAuthority {
		return newErr(PortNotAllowed, "no authority to attach a port to")
	}
	if schemesWithoutAuthority[u.scheme] {
		return newErr(PortNotAllowed, "scheme "+u.scheme+" does not allow a port")
	}
	return u.setPortFrom(port)
}

func (u Absolute) authorityString() string {
	if !u.hasAuthority {
		return ""
	}
	var b strings.Builder
	if u.hasUsername {
		b.WriteString(u.username)
		if u.hasPassword {
			b.WriteByte(':')
			b.WriteString(u.password)
		}
		b.WriteByte('@')
	}
	b.WriteString(u.host)
	if u.port != "" {
		b.WriteByte(':')
		b.WriteString(u.port)
	}
	return b.String()
}
