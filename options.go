package restcall

import "net/http"

// AcceptSpec controls the Accept header added by the planner. Exactly one of
// the two modes is meaningful: a literal media type, or mirroring the
// resolved Content-Type. The zero value adds no Accept header.
type AcceptSpec struct {
	// Type sets Accept to a literal media type.
	Type string
	// Mirror copies the resolved Content-Type into Accept. Ignored when
	// Type is set, or when no Content-Type was resolved.
	Mirror bool
}

// DecodeOptions holds the four independent auto-decode toggles consulted
// when classifying a response. Nil fields inherit across option layers;
// after layering, only JSON defaults to enabled. An unset XHTML toggle
// inherits the resolved HTML toggle's value.
type DecodeOptions struct {
	JSON  *bool
	XML   *bool
	HTML  *bool
	XHTML *bool
}

// Options is the layered option bag shared by registries, method calls, and
// call sites. Zero and nil fields inherit from earlier layers; resolution
// composes built-in defaults, then registry options, then call options, then
// the call-site override, later layers winning key by key (shallow merge).
type Options struct {
	// BaseURL is the origin (plus optional path prefix) that resolved
	// paths are joined to.
	BaseURL string

	// ContentType is the configured request content type. When empty the
	// planner sniffs one from the body value.
	ContentType string

	// Accept controls the Accept header.
	Accept *AcceptSpec

	// Rule overrides placeholder syntax detection for the call's path.
	// When nil, the default rules are tried in priority order.
	Rule *Rule

	// ConsumeVars controls whether keys used for placeholder substitution
	// are stripped from the shared argument bag before the query string
	// and body are derived from it. Defaults to true.
	ConsumeVars *bool

	// ObjectsAsJSON controls whether an opaque structured body with no
	// configured content type is treated as JSON. Defaults to true; when
	// disabled, such bodies are a resolution error.
	ObjectsAsJSON *bool

	// JSONIndent is the indent string applied when serializing JSON
	// bodies. Empty means compact output.
	JSONIndent string

	// Headers are default headers merged into every planned request.
	// They are distinct from a call-site header container, which replaces
	// all header and content-type defaulting outright.
	Headers http.Header

	// Decode holds the per-type response auto-decode toggles.
	Decode DecodeOptions
}

// Bool returns a pointer to v, for populating optional toggles.
func Bool(v bool) *bool { return &v }

// mergeOptions layers src over dst, field by field. Only fields set in src
// override; header maps merge key by key with src winning.
func mergeOptions(dst, src Options) Options {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.ContentType != "" {
		dst.ContentType = src.ContentType
	}
	if src.Accept != nil {
		dst.Accept = src.Accept
	}
	if src.Rule != nil {
		dst.Rule = src.Rule
	}
	if src.ConsumeVars != nil {
		dst.ConsumeVars = src.ConsumeVars
	}
	if src.ObjectsAsJSON != nil {
		dst.ObjectsAsJSON = src.ObjectsAsJSON
	}
	if src.JSONIndent != "" {
		dst.JSONIndent = src.JSONIndent
	}
	if len(src.Headers) > 0 {
		merged := make(http.Header, len(dst.Headers)+len(src.Headers))
		for k, v := range dst.Headers {
			merged[k] = v
		}
		for k, v := range src.Headers {
			merged[k] = v
		}
		dst.Headers = merged
	}
	dst.Decode = mergeDecode(dst.Decode, src.Decode)
	return dst
}

func mergeDecode(dst, src DecodeOptions) DecodeOptions {
	if src.JSON != nil {
		dst.JSON = src.JSON
	}
	if src.XML != nil {
		dst.XML = src.XML
	}
	if src.HTML != nil {
		dst.HTML = src.HTML
	}
	if src.XHTML != nil {
		dst.XHTML = src.XHTML
	}
	return dst
}

// resolveOptions composes option layers left to right, later layers
// overriding earlier ones.
func resolveOptions(layers ...Options) Options {
	var out Options
	for _, l := range layers {
		out = mergeOptions(out, l)
	}
	return out
}

func (o Options) consumeVars() bool {
	return o.ConsumeVars == nil || *o.ConsumeVars
}

func (o Options) objectsAsJSON() bool {
	return o.ObjectsAsJSON == nil || *o.ObjectsAsJSON
}
