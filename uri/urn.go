package uri

import "strings"

func isNIDChar(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '-'
}

// parseURN parses the RFC 8141 namestring that follows "urn:".
//
//	namestring    = "urn" ":" NID ":" NSS [ rq-components ] [ "#" f-component ]
//	rq-components = [ "?+" r-component ] [ "?=" q-component ]
func parseURN(scheme, rest string) (Absolute, error) {
	u := Absolute{form: FormURN, scheme: scheme}

	colon := strings.IndexByte(rest, ':')
	if colon == -1 {
		return Absolute{}, newErr(InvalidURN, "missing NID:NSS separator")
	}
	nid := rest[:colon]
	if len(nid) < 2 || len(nid) > 32 {
		return Absolute{}, newErr(InvalidURN, "NID must be 2-32 characters")
	}
	for i := 0; i < len(nid); i++ {
		if !isNIDChar(nid[i]) {
			return Absolute{}, newErr(InvalidURN, "invalid NID character")
		}
	}
	u.nid = strings.ToLower(nid)
	rest = rest[colon+1:]

	if h := strings.IndexByte(rest, '#'); h != -1 {
		f, err := normalizeEscapes(rest[h+1:], mustEscapeFragment)
		if err != nil {
			return Absolute{}, err
		}
		u.fComponent = f
		u.hasFURN = true
		rest = rest[:h]
	}

	if i := strings.Index(rest, "?="); i != -1 {
		q, err := normalizeEscapes(rest[i+2:], mustEscapeQuery)
		if err != nil {
			return Absolute{}, err
		}
		u.qComponent = q
		u.hasQURN = true
		rest = rest[:i]
	}

	if i := strings.Index(rest, "?+"); i != -1 {
		r, err := normalizeEscapes(rest[i+2:], mustEscapeQuery)
		if err != nil {
			return Absolute{}, err
		}
		u.rComponent = r
		u.hasR = true
		rest = rest[:i]
	}

	if rest == "" {
		return Absolute{}, newErr(InvalidURN, "empty NSS")
	}
	nss, err := normalizeEscapes(rest, mustEscapePathSegment)
	if err != nil {
		return Absolute{}, err
	}
	u.nss = nss
	return u, nil
}
