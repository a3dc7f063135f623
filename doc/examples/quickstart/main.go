// Package quickstart provides simple example code for documentation.
package quickstart

import (
	"context"
	"log"

	"github.com/restkit/restcall"
)

func exampleDeclaration() *restcall.Registry {
	docs := restcall.New("docs").WithOptions(restcall.Options{
		BaseURL:     "https://api.example.com",
		ContentType: restcall.TypeJSON,
		Accept:      &restcall.AcceptSpec{Mirror: true},
	})

	docs.MustDeclare("getDoc", "GET", "/docs/{docId}")
	docs.MustDeclare("putDoc", "PUT", "/docs/{docId}")
	docs.MustDeclare("listDocs", "GET", "/docs")

	return docs
}

func exampleInvocation() {
	docs := exampleDeclaration()
	ctx := context.Background()

	// One plain bag serves double duty: docId fills the placeholder, the
	// remainder becomes the query string.
	res, err := docs.Invoke(ctx, "getDoc", restcall.Args{
		Params: restcall.Params{"docId": "123", "fields": "title"},
	})
	if err != nil {
		log.Fatal(err)
	}
	log.Println(res.Data)

	// For PUT the stripped bag becomes the JSON body instead.
	if _, err := docs.Invoke(ctx, "putDoc", restcall.Args{
		Params: restcall.Params{"docId": "123", "title": "hello"},
	}); err != nil {
		log.Fatal(err)
	}
}

// Keep imports used.
var _ = exampleInvocation
