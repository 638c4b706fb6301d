package cue

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// ValidationError is one schema violation in an essay's frontmatter.
type ValidationError struct {
	File    string
	Field   string
	Message string
}

func (e ValidationError) String() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas compiles every embedded .cue file, keyed by base name.
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("reading embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}
		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if err := inst.Err(); err != nil {
			return fmt.Errorf("compiling schema %s: %w", entry.Name(), err)
		}
		v.schemas[strings.TrimSuffix(entry.Name(), ".cue")] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas found")
	}
	return nil
}

// Schemas returns the names of the loaded schemas.
func (v *Validator) Schemas() []string {
	names := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateEssay checks frontmatter data against #Essay. A nil result means
// the data conforms.
func (v *Validator) ValidateEssay(file string, data map[string]any) ([]ValidationError, error) {
	schema, ok := v.schemas["essay"]
	if !ok {
		return nil, fmt.Errorf("essay schema not loaded")
	}
	def := schema.LookupPath(cue.ParsePath("#Essay"))
	if !def.Exists() {
		return nil, fmt.Errorf("essay schema has no #Essay definition")
	}

	if data == nil {
		data = map[string]any{}
	}
	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	unified := def.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toValidationErrors(file, err), nil
	}
	return nil, nil
}

// toValidationErrors flattens a CUE error list, one entry per failing path.
func toValidationErrors(file string, err error) []ValidationError {
	var out []ValidationError
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		p := e.Path()
		for len(p) > 0 && strings.HasPrefix(p[0], "#") {
			p = p[1:]
		}
		field := strings.Join(p, ".")
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		key := field + "\x00" + msg
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ValidationError{File: file, Field: field, Message: msg})
	}
	if len(out) == 0 {
		out = append(out, ValidationError{File: file, Message: err.Error()})
	}
	return out
}
