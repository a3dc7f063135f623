package restcall

import (
	"reflect"
	"testing"

	"golang.org/x/net/html"
)

func TestDecodeResponse_JSONDefaultOn(t *testing.T) {
	res, err := decodeResponse(textResponse("application/json", `{"a":1}`), DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Decoded {
		t.Fatal("expected JSON to decode by default")
	}
	want := map[string]any{"a": float64(1)}
	if !reflect.DeepEqual(res.Data, want) {
		t.Errorf("expected %v, got %v", want, res.Data)
	}
}

func TestDecodeResponse_JSONToggleOff(t *testing.T) {
	res, err := decodeResponse(textResponse("application/json", `{"a":1}`), DecodeOptions{JSON: Bool(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Decoded {
		t.Error("expected raw response when JSON toggle is off")
	}
	if got := readAll(res.Response.Body); got != `{"a":1}` {
		t.Errorf("expected body left unread, got %q", got)
	}
}

func TestDecodeResponse_XMLDefaultOff(t *testing.T) {
	res, err := decodeResponse(textResponse("application/xml", `<a>1</a>`), DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Decoded {
		t.Error("expected XML to stay raw by default")
	}
}

func TestDecodeResponse_XML(t *testing.T) {
	res, err := decodeResponse(textResponse("application/xml", `<doc><title>hi</title></doc>`), DecodeOptions{XML: Bool(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root, ok := res.Data.(*XMLNode)
	if !ok {
		t.Fatalf("expected *XMLNode, got %T", res.Data)
	}
	if root.XMLName.Local != "doc" || len(root.Nodes) != 1 || root.Nodes[0].Text != "hi" {
		t.Errorf("unexpected XML tree %+v", root)
	}
}

func TestDecodeResponse_HTML(t *testing.T) {
	res, err := decodeResponse(textResponse("text/html", `<!DOCTYPE html><p>x</p>`), DecodeOptions{HTML: Bool(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.Data.(*html.Node); !ok {
		t.Fatalf("expected *html.Node, got %T", res.Data)
	}
}

func TestDecodeResponse_XHTMLInheritsHTMLToggle(t *testing.T) {
	// HTML on, XHTML unset: XHTML decodes as HTML.
	res, err := decodeResponse(textResponse("application/xhtml+xml", `<p>x</p>`), DecodeOptions{HTML: Bool(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.Data.(*html.Node); !ok {
		t.Fatalf("expected HTML decode, got %T", res.Data)
	}

	// Both unset: raw.
	res, err = decodeResponse(textResponse("application/xhtml+xml", `<p>x</p>`), DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Decoded {
		t.Error("expected raw response when XHTML resolves to off")
	}
}

func TestDecodeResponse_XHTMLWithoutHTMLFallsBackToXML(t *testing.T) {
	res, err := decodeResponse(textResponse("application/xhtml+xml", `<html><body/></html>`), DecodeOptions{XHTML: Bool(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.Data.(*XMLNode); !ok {
		t.Fatalf("expected XML decode, got %T", res.Data)
	}
}

func TestDecodeResponse_NoContentTypeRaw(t *testing.T) {
	res, err := decodeResponse(textResponse("", "anything"), DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Decoded {
		t.Error("expected raw response for missing content type")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	// Serializing a structured body then decoding the same bytes as a JSON
	// response returns a deep-equal value.
	in := map[string]any{"title": "hi", "tags": []any{"a", "b"}}
	out, err := serializeBody(in, TypeJSON, "")
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	res, err := decodeResponse(textResponse("application/json", string(out.([]byte))), DecodeOptions{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(res.Data, in) {
		t.Errorf("round trip mismatch: %v != %v", res.Data, in)
	}
}
