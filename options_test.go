package restcall

import (
	"net/http"
	"testing"
)

func TestResolveOptions_LaterLayersWin(t *testing.T) {
	registry := Options{BaseURL: "https://api.example.com", ContentType: TypeJSON}
	call := Options{ContentType: TypeXML}
	callSite := Options{JSONIndent: "  "}

	out := resolveOptions(registry, call, callSite)

	if out.BaseURL != "https://api.example.com" {
		t.Errorf("expected base URL to survive, got %s", out.BaseURL)
	}
	if out.ContentType != TypeXML {
		t.Errorf("expected call layer content type to win, got %s", out.ContentType)
	}
	if out.JSONIndent != "  " {
		t.Errorf("expected call-site indent, got %q", out.JSONIndent)
	}
}

func TestResolveOptions_PointerTogglesOverride(t *testing.T) {
	out := resolveOptions(
		Options{ConsumeVars: Bool(false), Decode: DecodeOptions{JSON: Bool(false)}},
		Options{ConsumeVars: Bool(true)},
	)
	if !out.consumeVars() {
		t.Error("expected later ConsumeVars layer to win")
	}
	if out.Decode.JSON == nil || *out.Decode.JSON {
		t.Error("expected earlier Decode.JSON to survive an unset later layer")
	}
}

func TestResolveOptions_Defaults(t *testing.T) {
	var out Options
	if !out.consumeVars() {
		t.Error("expected ConsumeVars to default to true")
	}
	if !out.objectsAsJSON() {
		t.Error("expected ObjectsAsJSON to default to true")
	}
}

func TestResolveOptions_HeadersMergeKeyByKey(t *testing.T) {
	base := Options{Headers: http.Header{"X-A": {"1"}, "X-B": {"1"}}}
	over := Options{Headers: http.Header{"X-B": {"2"}}}

	out := resolveOptions(base, over)

	if got := out.Headers.Get("X-A"); got != "1" {
		t.Errorf("expected X-A=1, got %s", got)
	}
	if got := out.Headers.Get("X-B"); got != "2" {
		t.Errorf("expected overriding X-B=2, got %s", got)
	}
}

func TestResolveOptions_AcceptOverridesWhole(t *testing.T) {
	out := resolveOptions(
		Options{Accept: &AcceptSpec{Mirror: true}},
		Options{Accept: &AcceptSpec{Type: TypeXML}},
	)
	if out.Accept.Type != TypeXML || out.Accept.Mirror {
		t.Errorf("expected later Accept spec to replace earlier one, got %+v", out.Accept)
	}
}
