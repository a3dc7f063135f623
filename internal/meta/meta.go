// Package meta holds call metadata shared between the planner and tooling.
package meta

// CallMetadata describes one declared call for introspection and tooling.
type CallMetadata struct {
	Name         string
	Verb         string
	Path         string
	Placeholders []string
	ContentType  string
	RequestBody  string
	ResponseBody string
	Safe         bool
	Idempotent   bool
	Cacheable    bool
}
