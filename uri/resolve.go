package uri

import "strings"

// Resolve resolves ref against base per RFC 3986 §5.3 for URL-form bases,
// and the analogous rule for URN-form bases. A relative reference with an
// empty path and no query inherits both from base (this also covers the
// fragment-only case named in spec.md §4.1).
func Resolve(base Absolute, ref string) (Absolute, error) {
	if ref == "" {
		return base, nil
	}
	if scheme, _, err := splitScheme(ref); err == nil && scheme != "" {
		return Parse(ref)
	}
	if base.form == FormURN {
		return resolveURN(base, ref)
	}
	return resolveURL(base, ref)
}

func resolveURL(base Absolute, ref string) (Absolute, error) {
	r, err := parseRelativeURL(ref)
	if err != nil {
		return Absolute{}, err
	}

	target := Absolute{form: FormURL, scheme: base.scheme}

	if r.hasAuthority {
		target.hasAuthority = true
		target.username, target.hasUsername = r.username, r.hasUsername
		target.password, target.hasPassword = r.password, r.hasPassword
		target.host, target.port = r.host, r.port
		target.path = removeDotSegments(r.path)
		target.query, target.hasQuery = r.query, r.hasQuery
	} else {
		target.hasAuthority = base.hasAuthority
		target.username, target.hasUsername = base.username, base.hasUsername
		target.password, target.hasPassword = base.password, base.hasPassword
		target.host, target.port = base.host, base.port

		switch {
		case r.path == "":
			target.path = base.path
			if r.hasQuery {
				target.query, target.hasQuery = r.query, true
			} else {
				target.query, target.hasQuery = base.query, base.hasQuery
			}
		case strings.HasPrefix(r.path, "/"):
			target.path = removeDotSegments(r.path)
			target.query, target.hasQuery = r.query, r.hasQuery
		default:
			target.path = removeDotSegments(mergePaths(base, r.path))
			target.query, target.hasQuery = r.query, r.hasQuery
		}
	}

	target.fragment, target.hasFragment = r.fragment, r.hasFragment
	return target, nil
}

// mergePaths implements RFC 3986 §5.3's merge routine.
func mergePaths(base Absolute, relPath string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + relPath
	}
	if idx := strings.LastIndexByte(base.path, '/'); idx != -1 {
		return base.path[:idx+1] + relPath
	}
	return relPath
}

// parseRelativeURL parses a relative-reference (no scheme) into the same
// shape Absolute uses, so resolveURL can reuse its fields.
func parseRelativeURL(ref string) (Absolute, error) {
	var u Absolute
	rest := ref

	if h := strings.IndexByte(rest, '#'); h != -1 {
		frag, err := normalizeEscapes(rest[h+1:], mustEscapeFragment)
		if err != nil {
			return Absolute{}, err
		}
		u.fragment, u.hasFragment = frag, true
		rest = rest[:h]
	}
	if q := strings.IndexByte(rest, '?'); q != -1 {
		query, err := normalizeEscapes(rest[q+1:], mustEscapeQuery)
		if err != nil {
			return Absolute{}, err
		}
		u.query, u.hasQuery = query, true
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
	u.path = path
	return u, nil
}

// resolveURN resolves a reference against a URN base: a bare "#frag" keeps
// the NID/NSS and replaces the fragment; a bare "?=" / "?+" reference
// replaces the q-/r-component; anything else is treated as a new NSS within
// the same namespace, mirroring how the URL case treats a bare path as
// relative to the base's "directory".
func resolveURN(base Absolute, ref string) (Absolute, error) {
	target := base
	target.hasFURN, target.fComponent = false, ""

	rest := ref
	if h := strings.IndexByte(rest, '#'); h != -1 {
		f, err := normalizeEscapes(rest[h+1:], mustEscapeFragment)
		if err != nil {
			return Absolute{}, err
		}
		target.fComponent, target.hasFURN = f, true
		rest = rest[:h]
	}
	if rest == "" {
		return target, nil
	}
	if strings.HasPrefix(rest, "?=") {
		q, err := normalizeEscapes(rest[2:], mustEscapeQuery)
		if err != nil {
			return Absolute{}, err
		}
		target.qComponent, target.hasQURN = q, true
		return target, nil
	}
	if strings.HasPrefix(rest, "?+") {
		r, err := normalizeEscapes(rest[2:], mustEscapeQuery)
		if err != nil {
			return Absolute{}, err
		}
		target.rComponent, target.hasR = r, true
		return target, nil
	}
	nss, err := normalizeEscapes(rest, mustEscapePathSegment)
	if err != nil {
		return Absolute{}, err
	}
	target.nss = nss
	target.hasR, target.rComponent = false, ""
	target.hasQURN, target.qComponent = false, ""
	return target, nil
}
