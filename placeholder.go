package restcall

import (
	"regexp"
)

// Rule describes one URL placeholder syntax: a pattern matched repeatedly
// over a path, and the index of the capture group holding the variable name.
//
// The built-in rules cover the two common syntaxes:
//
//	/docs/:docId   (RuleColon)
//	/docs/{docId}  (RuleBraces)
//
// Rules are immutable once constructed; use NewRule for validated custom
// syntaxes.
type Rule struct {
	Pattern    *regexp.Regexp `validate:"required"`
	ParamIndex int            `validate:"gte=1"`
}

var (
	// RuleColon matches Express-style ":name" placeholders.
	RuleColon = &Rule{Pattern: regexp.MustCompile(`:(\w+)`), ParamIndex: 1}

	// RuleBraces matches URI-template-style "{name}" placeholders.
	RuleBraces = &Rule{Pattern: regexp.MustCompile(`\{(\w+)\}`), ParamIndex: 1}

	// defaultRules are tried in priority order when no explicit rule is set.
	defaultRules = []*Rule{RuleColon, RuleBraces}
)

// NewRule creates a placeholder rule from a pattern source. The pattern must
// compile and contain a capture group at paramIndex that yields the
// placeholder's variable name.
func NewRule(pattern string, paramIndex int) (*Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, Errorf(CodeInvalidRule, "invalid placeholder pattern %q: %v", pattern, err)
	}
	r := &Rule{Pattern: re, ParamIndex: paramIndex}
	if err := validate.Struct(r); err != nil {
		return nil, Errorf(CodeInvalidRule, "invalid placeholder rule: %v", err)
	}
	if paramIndex > re.NumSubexp() {
		return nil, Errorf(CodeInvalidRule, "pattern %q has %d capture group(s), param index %d out of range",
			pattern, re.NumSubexp(), paramIndex)
	}
	return r, nil
}

// ruleForPath picks the rule used to substitute placeholders in path. An
// explicitly configured rule wins unconditionally; otherwise the first
// default rule whose pattern matches anywhere in the path is used. A nil
// return means the path has no placeholders and is used verbatim.
func ruleForPath(path string, explicit *Rule) *Rule {
	if explicit != nil {
		return explicit
	}
	for _, r := range defaultRules {
		if r.Pattern.MatchString(path) {
			return r
		}
	}
	return nil
}

// Names returns every placeholder name in path, in order of appearance.
func (r *Rule) Names(path string) []string {
	var names []string
	for _, m := range r.Pattern.FindAllStringSubmatch(path, -1) {
		if r.ParamIndex < len(m) {
			names = append(names, m[r.ParamIndex])
		}
	}
	return names
}

// expand substitutes every placeholder occurrence in path from vars.
// A missing name is substituted with an empty string and recorded, so the
// scan keeps going and the caller can report all missing names at once.
// Each missing name is recorded once even if it occurs repeatedly.
//
// When consume is true, every key used by a substitution is deleted from
// vars after the scan, so it cannot also feed the query string or body.
func (r *Rule) expand(path string, vars map[string]any, consume bool) (resolved string, missing []string) {
	seenMissing := make(map[string]bool)
	used := make(map[string]bool)

	resolved = r.Pattern.ReplaceAllStringFunc(path, func(match string) string {
		m := r.Pattern.FindStringSubmatch(match)
		if r.ParamIndex >= len(m) {
			return match
		}
		name := m[r.ParamIndex]
		v, ok := vars[name]
		if !ok {
			if !seenMissing[name] {
				seenMissing[name] = true
				missing = append(missing, name)
			}
			return ""
		}
		used[name] = true
		return stringify(v)
	})

	// Deleting after the scan keeps repeated occurrences of the same name
	// resolvable within a single path.
	if consume {
		for name := range used {
			delete(vars, name)
		}
	}
	return resolved, missing
}
