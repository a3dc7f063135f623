package restcall

import (
	"context"
	"testing"
)

func TestNew_GeneratesIDWhenUnnamed(t *testing.T) {
	a := New("")
	b := New("")
	if a.ID() == "" {
		t.Fatal("expected generated id")
	}
	if a.ID() == b.ID() {
		t.Error("expected distinct generated ids")
	}
	if got := New("docs").ID(); got != "docs" {
		t.Errorf("expected explicit id to be kept, got %s", got)
	}
}

func TestDeclare_DuplicateNameFails(t *testing.T) {
	r := New("docs")
	r.MustDeclare("getDoc", "GET", "/docs/{docId}")

	_, err := r.Declare("getDoc", "PUT", "/docs/{docId}")
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeDuplicateCall {
		t.Errorf("expected %s error, got %v", CodeDuplicateCall, err)
	}
}

func TestRegister_AttachesOnce(t *testing.T) {
	c, err := NewCall("getDoc", "GET", "/docs/{docId}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := New("a").Register(c); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	err = New("b").Register(c)
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeAlreadyRegistered {
		t.Errorf("expected %s error, got %v", CodeAlreadyRegistered, err)
	}
}

func TestInvoke_UnknownCall(t *testing.T) {
	_, err := New("docs").Invoke(context.Background(), "nope", Args{})
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeUnknownCall {
		t.Errorf("expected %s error, got %v", CodeUnknownCall, err)
	}
}

func TestMustDeclare_PanicsOnConfigError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate declaration")
		}
	}()
	r := New("docs")
	r.MustDeclare("getDoc", "GET", "/docs/{docId}")
	r.MustDeclare("getDoc", "GET", "/docs/{docId}")
}

func TestWithVerb_CustomRuleDrivesDisambiguation(t *testing.T) {
	r := New("docs").
		WithOptions(Options{BaseURL: "https://api.example.com"}).
		WithVerb("REPORT", VerbRule{Request: BodyRequired})
	r.MustDeclare("report", "REPORT", "/docs/{docId}")

	req, err := r.Plan("report", Args{Params: Params{"docId": "1", "depth": 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The custom verb requires a body, so the stripped bag becomes the
	// body instead of the query.
	if req.URL.RawQuery != "" {
		t.Errorf("expected no query, got %s", req.URL.RawQuery)
	}
	if got := string(req.Body.([]byte)); got != `{"depth":2}` {
		t.Errorf("expected bag as JSON body, got %s", got)
	}
}

func TestWithCustomVerb_TemplateBagBecomesQuery(t *testing.T) {
	r := New("docs").
		WithOptions(Options{BaseURL: "https://api.example.com"}).
		WithCustomVerb("PURGE")
	r.MustDeclare("purge", "PURGE", "/docs/{docId}")

	req, err := r.Plan("purge", Args{Params: Params{"docId": "1", "force": true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Template verbs have optional bodies, so the stripped bag feeds the
	// query string.
	if req.URL.RawQuery != "force=true" {
		t.Errorf("expected force=true query, got %s", req.URL.RawQuery)
	}
	if req.Body != nil {
		t.Errorf("expected no implicit body, got %v", req.Body)
	}
}

func TestExportCalls(t *testing.T) {
	r := New("docs").WithOptions(Options{ContentType: TypeJSON})
	r.MustDeclare("putDoc", "PUT", "/docs/{docId}")
	r.MustDeclare("getDoc", "GET", "/docs/{docId}")

	calls := r.ExportCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].Name != "getDoc" || calls[1].Name != "putDoc" {
		t.Errorf("expected calls sorted by name, got %s %s", calls[0].Name, calls[1].Name)
	}
	get := calls[0]
	if get.Verb != "GET" || get.RequestBody != "forbidden" || !get.Safe {
		t.Errorf("unexpected GET metadata %+v", get)
	}
	if len(get.Placeholders) != 1 || get.Placeholders[0] != "docId" {
		t.Errorf("expected placeholder docId, got %v", get.Placeholders)
	}
	if get.ContentType != TypeJSON {
		t.Errorf("expected registry content type in metadata, got %s", get.ContentType)
	}
}
