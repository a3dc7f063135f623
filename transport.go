package restcall

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Doer executes a planned request. *http.Client satisfies it; custom
// implementations can supply auth, instrumentation, or test doubles.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is a fully planned outbound request: the planner's output, ready
// to be converted into an *http.Request or inspected without sending.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header

	// Body is the serialized payload: nil, a string, []byte, url.Values,
	// or an io.Reader.
	Body any

	// decode is the response-decoding policy resolved for this call.
	decode DecodeOptions
}

// HTTPRequest converts the plan into an *http.Request bound to ctx.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	body, err := bodyReader(r.Body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range r.Header {
		req.Header[k] = append([]string(nil), vs...)
	}
	return req, nil
}

func bodyReader(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	case url.Values:
		return strings.NewReader(b.Encode()), nil
	case io.Reader:
		return b, nil
	}
	return nil, Errorf(CodeUnknownPayload, "unsupported body payload type %T", v)
}
