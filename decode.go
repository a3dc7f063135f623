package restcall

import (
	"encoding/json"
	"encoding/xml"
	"net/http"

	"golang.org/x/net/html"
)

// XMLNode is the generic element tree that XML responses decode into.
type XMLNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []XMLNode  `xml:",any"`
}

// Result is the outcome of one invocation: the transport response plus the
// decoded body when an auto-decode rule matched.
type Result struct {
	// Response is the raw transport response. When Decoded is true its
	// body has been consumed and closed.
	Response *http.Response

	// Data holds the decoded body: a JSON value (map/slice/scalar), an
	// *XMLNode tree, or an *html.Node document.
	Data any

	// Decoded reports whether an auto-decode rule matched. When false the
	// response body is left unread for the caller.
	Decoded bool
}

// decodeResponse classifies the response Content-Type against the four
// auto-decode toggles and decodes accordingly. Only JSON is enabled by
// default; an unset XHTML toggle inherits the HTML toggle's value, and an
// XHTML response with HTML decoding disabled falls back to the XML decoder.
// No match, including a missing Content-Type, returns the raw response.
//
// Decoder failures are propagated unmodified; they are not planner errors.
func decodeResponse(resp *http.Response, opts DecodeOptions) (*Result, error) {
	res := &Result{Response: resp}

	jsonOn := opts.JSON == nil || *opts.JSON
	xmlOn := opts.XML != nil && *opts.XML
	htmlOn := opts.HTML != nil && *opts.HTML
	xhtmlOn := htmlOn
	if opts.XHTML != nil {
		xhtmlOn = *opts.XHTML
	}

	switch classifyMediaType(resp.Header.Get("Content-Type")) {
	case mediaJSON:
		if jsonOn {
			return decodeJSON(res)
		}
	case mediaXML:
		if xmlOn {
			return decodeXML(res)
		}
	case mediaHTML:
		if htmlOn {
			return decodeHTML(res)
		}
	case mediaXHTML:
		if xhtmlOn {
			if htmlOn {
				return decodeHTML(res)
			}
			return decodeXML(res)
		}
	}
	return res, nil
}

func decodeJSON(res *Result) (*Result, error) {
	defer res.Response.Body.Close()
	var v any
	if err := json.NewDecoder(res.Response.Body).Decode(&v); err != nil {
		return nil, err
	}
	res.Data = v
	res.Decoded = true
	return res, nil
}

func decodeXML(res *Result) (*Result, error) {
	defer res.Response.Body.Close()
	var root XMLNode
	if err := xml.NewDecoder(res.Response.Body).Decode(&root); err != nil {
		return nil, err
	}
	res.Data = &root
	res.Decoded = true
	return res, nil
}

func decodeHTML(res *Result) (*Result, error) {
	defer res.Response.Body.Close()
	doc, err := html.Parse(res.Response.Body)
	if err != nil {
		return nil, err
	}
	res.Data = doc
	res.Decoded = true
	return res, nil
}
