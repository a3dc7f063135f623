package restcall

import (
	"sort"

	"github.com/restkit/restcall/internal/meta"
)

// ExportCalls returns metadata for every declared call, sorted by name.
// This is used by tooling such as the restcall CLI.
func (r *Registry) ExportCalls() []meta.CallMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exported := make([]meta.CallMetadata, 0, len(r.calls))
	for _, c := range r.calls {
		opts := c.effectiveOptions(nil)
		rule := r.verbs.Rule(c.verb)

		var placeholders []string
		if prule := ruleForPath(c.path, opts.Rule); prule != nil {
			placeholders = prule.Names(c.path)
		}

		exported = append(exported, meta.CallMetadata{
			Name:         c.name,
			Verb:         c.verb,
			Path:         c.path,
			Placeholders: placeholders,
			ContentType:  opts.ContentType,
			RequestBody:  rule.Request.String(),
			ResponseBody: rule.Response.String(),
			Safe:         rule.Safe,
			Idempotent:   rule.Idempotent,
			Cacheable:    rule.Cacheable,
		})
	}
	sort.Slice(exported, func(i, j int) bool { return exported[i].Name < exported[j].Name })
	return exported
}
