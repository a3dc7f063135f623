package restcall

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"mime"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Canonical media types the planner produces and recognizes.
const (
	TypeJSON   = "application/json"
	TypeXML    = "application/xml"
	TypeHTML   = "text/html"
	TypeXHTML  = "application/xhtml+xml"
	TypeText   = "text/plain"
	TypeForm   = "application/x-www-form-urlencoded"
	TypeBinary = "application/octet-stream"
)

// payloadKind tags the closed set of body-value shapes the planner
// distinguishes. The classifier predicates run in a fixed priority order
// rather than relying on open-ended type inspection.
type payloadKind int

const (
	kindNone     payloadKind = iota
	kindString               // passed through unmodified, sniffed textually
	kindBinary               // []byte, io.Reader
	kindForm                 // url.Values
	kindDocument             // *html.Node
	kindOpaque               // any other structured value
)

func classifyPayload(v any) payloadKind {
	if v == nil {
		return kindNone
	}
	switch v.(type) {
	case string:
		return kindString
	case []byte:
		return kindBinary
	case io.Reader:
		return kindBinary
	case url.Values:
		return kindForm
	case *html.Node:
		return kindDocument
	}
	return kindOpaque
}

// sniffContentType infers a content type for a body value that has none
// configured. String payloads are inspected textually; container types map
// to their canonical MIME; opaque structured values default to JSON unless
// that fallback is disabled, in which case sniffing fails.
func sniffContentType(v any, objectsAsJSON bool) (string, error) {
	switch classifyPayload(v) {
	case kindNone:
		return "", nil
	case kindString:
		return sniffString(v.(string)), nil
	case kindBinary:
		return TypeBinary, nil
	case kindForm:
		return TypeForm, nil
	case kindDocument:
		return TypeHTML, nil
	}
	if objectsAsJSON {
		return TypeJSON, nil
	}
	return "", Errorf(CodeUnknownPayload, "cannot determine content type for value of type %T", v)
}

func sniffString(s string) string {
	t := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}"),
		strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]"):
		return TypeJSON
	case strings.HasPrefix(t, "<") && strings.HasSuffix(t, ">"):
		if strings.HasPrefix(strings.ToLower(t), "<!doctype html") {
			return TypeHTML
		}
		return TypeXML
	}
	return TypeText
}

// mediaClass partitions a Content-Type header value into the families the
// serializer and decoder dispatch on.
type mediaClass int

const (
	mediaOther mediaClass = iota
	mediaJSON
	mediaXML
	mediaHTML
	mediaXHTML
)

func classifyMediaType(ct string) mediaClass {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(ct))
	}
	switch {
	case mt == TypeJSON || strings.HasSuffix(mt, "+json"):
		return mediaJSON
	case mt == TypeXHTML:
		return mediaXHTML
	case mt == TypeHTML:
		return mediaHTML
	case mt == TypeXML || mt == "text/xml" || strings.HasSuffix(mt, "+xml"):
		return mediaXML
	}
	return mediaOther
}

// serializeBody transforms a body value according to the resolved content
// type. String bodies are always passed through unmodified; unknown content
// types pass the value through as-is, so it must already be a
// transport-acceptable shape.
func serializeBody(v any, contentType, jsonIndent string) (any, error) {
	if v == nil {
		return nil, nil
	}
	if _, ok := v.(string); ok {
		return v, nil
	}
	switch classifyMediaType(contentType) {
	case mediaJSON:
		var (
			b   []byte
			err error
		)
		if jsonIndent != "" {
			b, err = json.MarshalIndent(v, "", jsonIndent)
		} else {
			b, err = json.Marshal(v)
		}
		if err != nil {
			return nil, Errorf(CodeUnknownPayload, "failed to serialize JSON body: %v", err)
		}
		return b, nil
	case mediaXML:
		if n, ok := v.(*html.Node); ok {
			return renderNode(n)
		}
		b, err := xml.Marshal(v)
		if err != nil {
			return nil, Errorf(CodeUnknownPayload, "failed to serialize XML body: %v", err)
		}
		return b, nil
	case mediaHTML, mediaXHTML:
		n, ok := v.(*html.Node)
		if !ok {
			return nil, Errorf(CodeBadDocument, "HTML content type requires a document or element, got %T", v)
		}
		return renderNode(n)
	}
	return v, nil
}

// renderNode serializes a parsed document or a single element to its markup.
// Other node types cannot stand alone as a request body.
func renderNode(n *html.Node) (string, error) {
	switch n.Type {
	case html.DocumentNode, html.ElementNode:
		var buf bytes.Buffer
		if err := html.Render(&buf, n); err != nil {
			return "", Errorf(CodeBadDocument, "failed to render markup: %v", err)
		}
		return buf.String(), nil
	}
	return "", NewError(CodeBadDocument, "markup serialization requires a document or element node")
}

// resolveAccept yields the Accept header value for the layered accept spec:
// a literal type verbatim, or the already-resolved Content-Type when
// mirroring. Empty means this layer adds no Accept header.
func resolveAccept(accept *AcceptSpec, contentType string) string {
	if accept == nil {
		return ""
	}
	if accept.Type != "" {
		return accept.Type
	}
	if accept.Mirror {
		return contentType
	}
	return ""
}
