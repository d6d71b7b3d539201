package uri

import "strings"

// removeDotSegments implements RFC 3986 §5.2.4.
func removeDotSegments(path string) string {
	var out []string
	in := path
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = "/" + in[4:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "." || in == "..":
			in = ""
		default:
			// Move the first path segment (including a leading "/") to out.
			start := 0
			if in[0] == '/' {
				start = 1
			}
			idx := strings.IndexByte(in[start:], '/')
			var seg string
			if idx == -1 {
				seg = in
				in = ""
			} else {
				seg = in[:start+idx]
				in = in[start+idx:]
			}
			out = append(out, seg)
		}
	}
	return strings.Join(out, "")
}
