package jsonschema

import "github.com/kaptinlin/go-i18n"

// translatorRegistry holds the process-wide i18n bundle an Engine renders
// EvaluationErrors through, per spec.md §4.8 ("translators are registered
// per process"). It wraps the teacher's GetI18n bundle rather than
// reimplementing locale loading.
type translatorRegistry struct {
	bundle *i18n.I18n
}

func newTranslatorRegistry() *translatorRegistry {
	bundle, err := GetI18n()
	if err != nil {
		return &translatorRegistry{}
	}
	return &translatorRegistry{bundle: bundle}
}

// Localizer returns a localizer for locale, or nil if no bundle loaded.
func (r *translatorRegistry) Localizer(locale string) *i18n.Localizer {
	if r == nil || r.bundle == nil {
		return nil
	}
	return r.bundle.NewLocalizer(locale)
}

// Translate renders every EvaluationError reachable from n into locale,
// returning a flat list of rendered messages in tree order - the "rendering
// callback keyed by translator locale" spec.md §4.8 describes.
func (r *translatorRegistry) Translate(n *Node, locale string) []string {
	loc := r.Localizer(locale)
	var out []string
	var walk func(*Node)
	walk = func(nn *Node) {
		if nn == nil {
			return
		}
		if nn.Error != nil {
			out = append(out, nn.Error.Localize(loc))
		}
		for _, c := range nn.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Translate renders every EvaluationError in out.Node into locale. out must
// come from Evaluate with Detailed or Verbose format, since Flag/Basic don't
// retain the tree Translate walks.
func (e *Engine) Translate(out *Output, locale string) []string {
	if out == nil || out.Node == nil {
		return nil
	}
	return e.translators.Translate(out.Node, locale)
}
