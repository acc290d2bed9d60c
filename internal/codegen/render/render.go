// Package render evaluates generator templates against a shared-memory
// schema using text/template.
//
// A template sees a single Context value. Everything a template may
// reference is listed on Context and on the schema types it exposes, all of
// them structs: text/template fails on a field or method a struct does not
// have, and .Schema.Field fails on an unknown schema field, so a bad
// reference aborts the render instead of producing empty text.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/intfrr/jankdrone/internal/codegen/common"
	"github.com/intfrr/jankdrone/internal/codegen/generator/cpp"
	"github.com/intfrr/jankdrone/internal/codegen/generator/golang"
	"github.com/intfrr/jankdrone/internal/codegen/schema"
)

// GeneratorName is written into generated file banners.
const GeneratorName = "shmgen"

// Context is the value bound to every template.
type Context struct {
	// Schema is the layout being rendered. It is shared across targets and
	// must not be modified.
	Schema *schema.Schema
	// Output is the slash-separated output path relative to the output root.
	Output string
	// Package is the Go package name for the output, derived from its
	// directory ("client/shmdef.go" -> "client").
	Package string
	// Generator names the tool for "Code generated by" banners.
	Generator string
}

// NewContext builds the context for rendering s into output.
func NewContext(s *schema.Schema, output string) Context {
	return Context{
		Schema:    s,
		Output:    output,
		Package:   packageName(output),
		Generator: GeneratorName,
	}
}

func packageName(output string) string {
	dir := output
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i]
	} else {
		dir = ""
	}
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[i+1:]
	}
	name := strings.ToLower(strings.Join(common.Words(dir), ""))
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return "main"
	}
	return name
}

// Renderer parses and executes templates. It holds no per-render state and
// may be reused for every target of a run.
type Renderer struct {
	funcs template.FuncMap
}

// New returns a Renderer with the shared, C++ and Go helpers installed.
func New() *Renderer {
	funcs := baseFuncs()
	for _, extra := range []template.FuncMap{cpp.Funcs(), golang.Funcs()} {
		for k, v := range extra {
			funcs[k] = v
		}
	}
	return &Renderer{funcs: funcs}
}

// Render parses src as a template called name and executes it with ctx.
func (r *Renderer) Render(name string, src []byte, ctx Context) ([]byte, error) {
	t, err := template.New(name).Funcs(r.funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"snakecase":  common.ToSnakeCase,
		"pascalcase": common.ToPascalCase,
		"camelcase":  common.ToCamelCase,
		"indent":     common.Indent,
		"guard":      common.ToMacroName,
		"join":       strings.Join,
		"comment":    comment,
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"padname":    func(offset int) string { return "_pad" + strconv.Itoa(offset) },
	}
}

// comment prefixes each line of text with marker and a space. Empty text
// renders as nothing.
func comment(marker, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(marker+" "+strings.TrimSpace(l), " ")
	}
	return strings.Join(lines, "\n")
}
