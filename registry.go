package restcall

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Registry is a named collection of method calls sharing default options, a
// verb rule table, and a transport. Calls are declared up front; after
// declaration the registry is read-only and safe for concurrent invocation.
//
// Dispatch is a single generic Invoke by call name rather than one
// synthesized method per declared call.
type Registry struct {
	mu           sync.RWMutex
	id           string
	opts         Options
	verbs        VerbTable
	calls        map[string]*MethodCall
	doer         Doer
	logger       *slog.Logger
	interceptors []Interceptor
}

// New creates a registry. An empty id is replaced with a generated UUID, so
// unnamed services need no process-wide auto-id state.
func New(id string) *Registry {
	if id == "" {
		id = uuid.NewString()
	}
	return &Registry{
		id:    id,
		verbs: newVerbTable(nil),
		calls: make(map[string]*MethodCall),
	}
}

// ID returns the registry's identifier.
func (r *Registry) ID() string { return r.id }

// WithOptions layers opts over the registry defaults.
// It returns the registry for chaining.
func (r *Registry) WithOptions(opts Options) *Registry {
	r.opts = mergeOptions(r.opts, opts)
	return r
}

// WithVerb adds or overrides a verb rule. The name is normalized to upper
// case; explicit rules win over the defaults on collision.
func (r *Registry) WithVerb(name string, rule VerbRule) *Registry {
	r.verbs[strings.ToUpper(name)] = rule
	return r
}

// WithCustomVerb declares a custom verb with the permissive template rule
// (optional bodies, no safety guarantees).
func (r *Registry) WithCustomVerb(name string) *Registry {
	return r.WithVerb(name, verbTemplate)
}

// WithDoer sets the transport used by Invoke. The default is
// http.DefaultClient.
func (r *Registry) WithDoer(d Doer) *Registry {
	r.doer = d
	return r
}

// WithLogger sets a custom logger for the registry.
// If not set, slog.Default() will be used.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithInterceptor adds a registry-level interceptor. Registry interceptors
// run before call-level interceptors, in the order added.
func (r *Registry) WithInterceptor(i Interceptor) *Registry {
	r.interceptors = append(r.interceptors, i)
	return r
}

// Declare creates a method call, applies any option layers, and registers
// it. Declaring a duplicate name is a configuration error.
func (r *Registry) Declare(name, verb, path string, opts ...Options) (*MethodCall, error) {
	c, err := NewCall(name, verb, path)
	if err != nil {
		return nil, err
	}
	for _, o := range opts {
		c.WithOptions(o)
	}
	if err := r.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// MustDeclare is Declare that panics on configuration errors, for use in
// package-level service declarations.
func (r *Registry) MustDeclare(name, verb, path string, opts ...Options) *MethodCall {
	c, err := r.Declare(name, verb, path, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Register attaches an already-built call to the registry. The registry
// takes exclusive ownership; a call attaches at most once.
func (r *Registry) Register(c *MethodCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calls[c.name]; exists {
		return Errorf(CodeDuplicateCall, "call %q is already declared on registry %q", c.name, r.id)
	}
	if err := c.attach(r); err != nil {
		return err
	}
	r.calls[c.name] = c

	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("call declared",
		slog.String("registry", r.id),
		slog.String("call", c.name),
		slog.String("verb", c.verb),
		slog.String("path", c.path))
	return nil
}

// Call returns the declared call by name.
func (r *Registry) Call(name string) (*MethodCall, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.calls[name]
	return c, ok
}

// Plan resolves one named operation into an outbound request without
// sending it.
func (r *Registry) Plan(name string, args Args) (*Request, error) {
	c, ok := r.Call(name)
	if !ok {
		return nil, Errorf(CodeUnknownCall, "unknown call %q on registry %q", name, r.id)
	}
	return c.Plan(args)
}

// Invoke dispatches one named operation with the given argument bag.
func (r *Registry) Invoke(ctx context.Context, name string, args Args) (*Result, error) {
	c, ok := r.Call(name)
	if !ok {
		return nil, Errorf(CodeUnknownCall, "unknown call %q on registry %q", name, r.id)
	}
	return c.Invoke(ctx, args)
}
