package restcall

import "strings"

// BodyRequirement is the tri-state describing whether an HTTP message may,
// must, or must not carry a body.
type BodyRequirement int

const (
	BodyOptional BodyRequirement = iota
	BodyRequired
	BodyForbidden
)

func (b BodyRequirement) String() string {
	switch b {
	case BodyRequired:
		return "required"
	case BodyForbidden:
		return "forbidden"
	default:
		return "optional"
	}
}

// ParseBodyRequirement parses the textual form used by declaration files.
func ParseBodyRequirement(s string) (BodyRequirement, error) {
	switch strings.ToLower(s) {
	case "", "optional":
		return BodyOptional, nil
	case "required":
		return BodyRequired, nil
	case "forbidden":
		return BodyForbidden, nil
	}
	return BodyOptional, Errorf(CodeInvalidVerbRule, "unknown body requirement %q", s)
}

// VerbRule is the per-HTTP-method metadata the planner consults when
// disambiguating an argument bag.
type VerbRule struct {
	Request    BodyRequirement
	Response   BodyRequirement
	Safe       bool
	Idempotent bool
	Cacheable  bool
}

// verbTemplate is the permissive fallback applied to custom verbs declared
// without an explicit rule. The zero value is exactly that: optional bodies,
// no safety guarantees.
var verbTemplate = VerbRule{}

// defaultVerbs is the rule table for the standard HTTP methods.
var defaultVerbs = map[string]VerbRule{
	"GET":     {Request: BodyForbidden, Response: BodyRequired, Safe: true, Idempotent: true, Cacheable: true},
	"HEAD":    {Request: BodyForbidden, Response: BodyForbidden, Safe: true, Idempotent: true, Cacheable: true},
	"POST":    {Request: BodyRequired, Response: BodyOptional},
	"PUT":     {Request: BodyRequired, Response: BodyOptional, Idempotent: true},
	"PATCH":   {Request: BodyRequired, Response: BodyOptional},
	"DELETE":  {Request: BodyOptional, Response: BodyOptional, Idempotent: true},
	"OPTIONS": {Request: BodyOptional, Response: BodyOptional, Safe: true, Idempotent: true},
	"TRACE":   {Request: BodyForbidden, Response: BodyOptional, Safe: true, Idempotent: true},
}

// VerbTable maps an uppercase verb name to its rule. Registries hold a table
// unioned from the default rules and any caller-supplied custom verbs;
// custom entries win on name collision.
type VerbTable map[string]VerbRule

// newVerbTable copies the default table and layers custom entries on top.
func newVerbTable(custom VerbTable) VerbTable {
	t := make(VerbTable, len(defaultVerbs)+len(custom))
	for v, r := range defaultVerbs {
		t[v] = r
	}
	for v, r := range custom {
		t[strings.ToUpper(v)] = r
	}
	return t
}

// Rule returns the rule for verb, falling back to the permissive template
// for verbs the table does not know.
func (t VerbTable) Rule(verb string) VerbRule {
	if r, ok := t[strings.ToUpper(verb)]; ok {
		return r
	}
	return verbTemplate
}
