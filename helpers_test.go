package restcall

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

func asError(err error, target **Error) bool {
	return errors.As(err, target)
}

// fakeDoer records the outbound request and returns a canned response.
type fakeDoer struct {
	req  *http.Request
	resp *http.Response
	err  error
}

func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	d.req = req
	if d.err != nil {
		return nil, d.err
	}
	return d.resp, nil
}

func textResponse(contentType, body string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func readAll(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(r)
	return string(b)
}
