package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/restkit/restcall"
)

type CLI struct {
	Plan    PlanCmd    `cmd:"" help:"Plan a declared call and print the request without sending it."`
	List    ListCmd    `cmd:"" help:"List the calls declared in a service file."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type PlanCmd struct {
	File string   `help:"Service declaration file." short:"f" required:"" type:"existingfile"`
	Call string   `arg:"" help:"Name of the declared call."`
	Args []string `arg:"" optional:"" help:"Argument bag entries as key=value pairs."`
}

func (c *PlanCmd) Run() error {
	reg, err := loadRegistry(c.File)
	if err != nil {
		return err
	}

	params := restcall.Params{}
	for _, kv := range c.Args {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("argument %q is not key=value", kv)
		}
		params[k] = v
	}

	req, err := reg.Plan(c.Call, restcall.Args{Params: params})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", req.Method, req.URL)
	headers := make([]string, 0, len(req.Header))
	for k := range req.Header {
		headers = append(headers, k)
	}
	sort.Strings(headers)
	for _, k := range headers {
		for _, v := range req.Header[k] {
			fmt.Printf("%s: %s\n", k, v)
		}
	}
	if body := formatBody(req.Body); body != "" {
		fmt.Printf("\n%s\n", body)
	}
	return nil
}

type ListCmd struct {
	File string `help:"Service declaration file." short:"f" required:"" type:"existingfile"`
}

func (c *ListCmd) Run() error {
	reg, err := loadRegistry(c.File)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Call", "Verb", "Path", "Placeholders", "Request Body"})
	for _, m := range reg.ExportCalls() {
		t.AppendRow(table.Row{m.Name, m.Verb, m.Path, strings.Join(m.Placeholders, ", "), m.RequestBody})
	}
	t.Render()
	return nil
}

func loadRegistry(file string) (*restcall.Registry, error) {
	decl, err := restcall.LoadDeclFile(file)
	if err != nil {
		return nil, err
	}
	return decl.Registry()
}

func formatBody(body any) string {
	switch b := body.(type) {
	case nil:
		return ""
	case string:
		return b
	case []byte:
		return string(b)
	case url.Values:
		return b.Encode()
	case io.Reader:
		return "<stream>"
	}
	return fmt.Sprintf("%v", body)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("restcall"),
		kong.Description("Plan and inspect declared API calls."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "restcall:", err)
		os.Exit(1)
	}
}
