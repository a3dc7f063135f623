package restcall

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DeclFile is the YAML declaration of a service: id, base URL, default
// options, custom verbs, and the call list. It is the file-based
// counterpart of declaring a Registry in code.
type DeclFile struct {
	Service       string              `yaml:"service"`
	BaseURL       string              `yaml:"baseURL" validate:"required"`
	ContentType   string              `yaml:"contentType"`
	Accept        string              `yaml:"accept"`
	ConsumeVars   *bool               `yaml:"consumeVars"`
	ObjectsAsJSON *bool               `yaml:"objectsAsJSON"`
	Decode        DeclDecode          `yaml:"decode"`
	Verbs         map[string]DeclVerb `yaml:"verbs" validate:"omitempty,dive"`
	Calls         []DeclCall          `yaml:"calls" validate:"required,min=1,dive"`
}

// DeclDecode mirrors DecodeOptions in file form.
type DeclDecode struct {
	JSON  *bool `yaml:"json"`
	XML   *bool `yaml:"xml"`
	HTML  *bool `yaml:"html"`
	XHTML *bool `yaml:"xhtml"`
}

// DeclVerb declares a custom verb rule. Omitted tri-states mean optional.
type DeclVerb struct {
	RequestBody  string `yaml:"requestBody" validate:"omitempty,oneof=required forbidden optional"`
	ResponseBody string `yaml:"responseBody" validate:"omitempty,oneof=required forbidden optional"`
	Safe         bool   `yaml:"safe"`
	Idempotent   bool   `yaml:"idempotent"`
	Cacheable    bool   `yaml:"cacheable"`
}

// DeclCall declares one endpoint. The accept field takes a literal media
// type, or the keyword "mirror" to copy the resolved Content-Type.
type DeclCall struct {
	Name        string `yaml:"name" validate:"required"`
	Verb        string `yaml:"verb" validate:"required"`
	Path        string `yaml:"path" validate:"required"`
	ContentType string `yaml:"contentType"`
	Accept      string `yaml:"accept"`
}

// LoadDeclFile reads, parses, and validates a service declaration file.
func LoadDeclFile(path string) (*DeclFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDeclFile(data)
}

// ParseDeclFile parses and validates declaration file contents.
func ParseDeclFile(data []byte) (*DeclFile, error) {
	var f DeclFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, Errorf(CodeInvalidCall, "invalid declaration file: %v", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, Errorf(CodeInvalidCall, "invalid declaration file: %v", err)
	}
	return &f, nil
}

// Registry materializes the declaration into a ready-to-invoke registry.
func (f *DeclFile) Registry() (*Registry, error) {
	r := New(f.Service).WithOptions(Options{
		BaseURL:       f.BaseURL,
		ContentType:   f.ContentType,
		Accept:        parseAccept(f.Accept),
		ConsumeVars:   f.ConsumeVars,
		ObjectsAsJSON: f.ObjectsAsJSON,
		Decode: DecodeOptions{
			JSON:  f.Decode.JSON,
			XML:   f.Decode.XML,
			HTML:  f.Decode.HTML,
			XHTML: f.Decode.XHTML,
		},
	})

	for name, v := range f.Verbs {
		rule, err := v.rule()
		if err != nil {
			return nil, err
		}
		r.WithVerb(name, rule)
	}

	for _, c := range f.Calls {
		if _, err := r.Declare(c.Name, c.Verb, c.Path, Options{
			ContentType: c.ContentType,
			Accept:      parseAccept(c.Accept),
		}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (v DeclVerb) rule() (VerbRule, error) {
	req, err := ParseBodyRequirement(v.RequestBody)
	if err != nil {
		return VerbRule{}, err
	}
	resp, err := ParseBodyRequirement(v.ResponseBody)
	if err != nil {
		return VerbRule{}, err
	}
	return VerbRule{
		Request:    req,
		Response:   resp,
		Safe:       v.Safe,
		Idempotent: v.Idempotent,
		Cacheable:  v.Cacheable,
	}, nil
}

func parseAccept(s string) *AcceptSpec {
	switch s {
	case "":
		return nil
	case "mirror":
		return &AcceptSpec{Mirror: true}
	}
	return &AcceptSpec{Type: s}
}
