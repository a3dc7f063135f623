package restcall

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Params is the plain argument bag supplied at call time. For the common
// case one bag serves double duty: it provides placeholder values and the
// stripped remainder becomes the query string or body, depending on the
// verb's body requirement.
type Params map[string]any

// Args carries everything a call site can supply for one invocation. The
// reserved dimensions (vars, body, query, headers) are explicit fields
// rather than magic keys, so disambiguation is a decision table instead of
// runtime probing:
//
//  1. Placeholder values come from Vars when set, otherwise from Params;
//     only the shared Params bag has its used keys stripped (by default).
//  2. The body is Body when set (an error if the verb forbids a body);
//     otherwise, when the verb requires a body, the stripped bag becomes
//     the body.
//  3. The query source is Query when set; otherwise, when the verb does not
//     require a body, the stripped bag becomes the query source.
type Args struct {
	// Params is the plain argument bag.
	Params Params

	// Vars explicitly supplies placeholder values. When set, Params is
	// never consumed for substitution and is used whole as the implicit
	// query or body source.
	Vars map[string]any

	// Query explicitly supplies the query source: a Params or
	// map[string]any, url.Values, or a struct encoded via gorilla/schema.
	Query any

	// Body explicitly supplies the request body.
	Body any

	// Headers, when non-nil, is used as the complete header set of the
	// request; no content-type, accept, or default-header composition is
	// applied on top of it.
	Headers http.Header

	// Options is the call-site option override, the last layer in option
	// resolution.
	Options *Options
}

// MethodCall is one declared endpoint: name, path template, verb, and
// per-call option overrides. Name, path, and verb are immutable after
// construction; a call attaches to at most one Registry.
type MethodCall struct {
	name         string
	verb         string
	path         string
	opts         Options
	interceptors []Interceptor
	registry     *Registry // set once at registration
}

type callDecl struct {
	Name string `validate:"required"`
	Verb string `validate:"required"`
	Path string `validate:"required"`
}

// NewCall declares a method call. The verb is normalized to upper case.
// Calls are usually declared through Registry.Declare; NewCall exists for
// building a call before attaching it with Registry.Register.
func NewCall(name, verb, path string) (*MethodCall, error) {
	if err := validate.Struct(callDecl{Name: name, Verb: verb, Path: path}); err != nil {
		return nil, Errorf(CodeInvalidCall, "invalid call declaration: %v", err)
	}
	return &MethodCall{
		name: name,
		verb: strings.ToUpper(verb),
		path: path,
	}, nil
}

func (c *MethodCall) Name() string { return c.name }
func (c *MethodCall) Verb() string { return c.verb }
func (c *MethodCall) Path() string { return c.path }

// WithOptions layers opts over the call's current options.
func (c *MethodCall) WithOptions(opts Options) *MethodCall {
	c.opts = mergeOptions(c.opts, opts)
	return c
}

// WithInterceptor adds a call-level interceptor. Call interceptors run
// after registry interceptors.
func (c *MethodCall) WithInterceptor(i Interceptor) *MethodCall {
	c.interceptors = append(c.interceptors, i)
	return c
}

// attach sets the owning registry exactly once.
func (c *MethodCall) attach(r *Registry) error {
	if c.registry != nil {
		return Errorf(CodeAlreadyRegistered, "call %q is already registered with registry %q", c.name, c.registry.id)
	}
	c.registry = r
	return nil
}

// effectiveOptions composes the option layers for one invocation:
// registry options, then call options, then the call-site override.
func (c *MethodCall) effectiveOptions(callSite *Options) Options {
	layers := make([]Options, 0, 3)
	if c.registry != nil {
		layers = append(layers, c.registry.opts)
	}
	layers = append(layers, c.opts)
	if callSite != nil {
		layers = append(layers, *callSite)
	}
	return resolveOptions(layers...)
}

func (c *MethodCall) verbRule() VerbRule {
	if c.registry != nil {
		return c.registry.verbs.Rule(c.verb)
	}
	return newVerbTable(nil).Rule(c.verb)
}

// Plan runs the resolution pipeline without sending anything: disambiguate
// the argument bag, substitute URL placeholders, compose the query string,
// negotiate the content type, and serialize the body. Planning is fail-fast;
// any error here means nothing was dispatched.
func (c *MethodCall) Plan(args Args) (*Request, error) {
	opts := c.effectiveOptions(args.Options)
	rule := c.verbRule()

	// Each plan works on its own copy of the bag, so stripping never
	// mutates the caller's map and concurrent invocations stay independent.
	var bag Params
	if args.Params != nil {
		bag = make(Params, len(args.Params))
		for k, v := range args.Params {
			bag[k] = v
		}
	}

	vars := args.Vars
	consume := false
	if vars == nil {
		if bag == nil {
			vars = Params{}
		} else {
			vars = bag
		}
		consume = opts.consumeVars()
	}

	path := c.path
	if prule := ruleForPath(c.path, opts.Rule); prule != nil {
		var missing []string
		path, missing = prule.expand(c.path, vars, consume)
		if len(missing) > 0 {
			return nil, missingParamsError(missing)
		}
	}

	var body any
	switch {
	case args.Body != nil:
		if rule.Request == BodyForbidden {
			return nil, Errorf(CodeBodyForbidden, "verb %s does not allow a request body", c.verb)
		}
		body = args.Body
	case rule.Request == BodyRequired && bag != nil:
		body = map[string]any(bag)
	}

	u, err := buildURL(opts.BaseURL, path)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	switch {
	case args.Query != nil:
		err = applyQuery(q, args.Query)
	case rule.Request != BodyRequired && bag != nil:
		err = applyQuery(q, map[string]any(bag))
	}
	if err != nil {
		return nil, err
	}
	u.RawQuery = q.Encode()

	header := http.Header{}
	var contentType string
	if args.Headers != nil {
		// A complete header container wins outright: no content-type,
		// accept, or default-header composition on top.
		for k, vs := range args.Headers {
			header[k] = append([]string(nil), vs...)
		}
		contentType = args.Headers.Get("Content-Type")
	} else {
		for k, vs := range opts.Headers {
			header[k] = append([]string(nil), vs...)
		}
		contentType = opts.ContentType
		if contentType == "" && body != nil {
			contentType, err = sniffContentType(body, opts.objectsAsJSON())
			if err != nil {
				return nil, err
			}
		}
		if contentType != "" {
			header.Set("Content-Type", contentType)
		}
		if accept := resolveAccept(opts.Accept, contentType); accept != "" {
			header.Set("Accept", accept)
		}
	}

	payload, err := serializeBody(body, contentType, opts.JSONIndent)
	if err != nil {
		return nil, err
	}

	return &Request{
		Method: c.verb,
		URL:    u,
		Header: header,
		Body:   payload,
		decode: opts.Decode,
	}, nil
}

// Invoke plans the request, sends it through the registry's transport, and
// decodes the response according to the resolved decode policy. Transport
// and decoder errors are returned unmodified.
func (c *MethodCall) Invoke(ctx context.Context, args Args) (*Result, error) {
	info := &CallInfo{Call: c.name, Verb: c.verb, Path: c.path}
	doer := Doer(http.DefaultClient)
	var regInterceptors []Interceptor
	if c.registry != nil {
		info.Registry = c.registry.id
		regInterceptors = c.registry.interceptors
		if c.registry.doer != nil {
			doer = c.registry.doer
		}
	}
	ctx = withCallInfo(ctx, info)

	exec := func(ctx context.Context, args Args) (*Result, error) {
		req, err := c.Plan(args)
		if err != nil {
			return nil, err
		}
		httpReq, err := req.HTTPRequest(ctx)
		if err != nil {
			return nil, err
		}
		resp, err := doer.Do(httpReq)
		if err != nil {
			return nil, err
		}
		return decodeResponse(resp, req.decode)
	}

	all := make([]Interceptor, 0, len(regInterceptors)+len(c.interceptors))
	all = append(all, regInterceptors...)
	all = append(all, c.interceptors...)
	if chain := chainInterceptors(all); chain != nil {
		return chain(ctx, args, exec)
	}
	return exec(ctx, args)
}

// buildURL combines a resolved path with the base origin, following URL
// reference-resolution semantics: an absolute path replaces the base's
// path, a relative one is resolved against it.
func buildURL(base, resolvedPath string) (*url.URL, error) {
	rel, err := url.Parse(resolvedPath)
	if err != nil {
		return nil, Errorf(CodeInvalidCall, "invalid resolved path %q: %v", resolvedPath, err)
	}
	if base == "" {
		return rel, nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return nil, Errorf(CodeInvalidCall, "invalid base URL %q: %v", base, err)
	}
	return b.ResolveReference(rel), nil
}
