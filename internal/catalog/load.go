package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Error codes reported by Load.
const (
	ErrCodeRead        = "E201" // File could not be read
	ErrCodeParse       = "E202" // YAML/JSON/CUE syntax error
	ErrCodeDuplicateID = "E203" // Same id twice in one collection
	ErrCodeSchema      = "E204" // Value does not satisfy #Catalog
	ErrCodeFormat      = "E205" // Unsupported file extension
	ErrCodeSchemaBuild = "E206" // Embedded schema failed to compile
)

// LoadError describes why a catalog file was rejected.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads a catalog file, validates it against the embedded schema and
// decodes it. Supported extensions: .yaml, .yml, .json, .cue.
func Load(path string) (Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, &LoadError{Code: ErrCodeRead, Message: err.Error()}
	}
	return Parse(path, src)
}

// Parse validates and decodes catalog source. The filename selects the
// format and is used in error positions.
func Parse(filename string, src []byte) (Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Catalog{}, &LoadError{Code: ErrCodeSchemaBuild, Message: err.Error()}
	}
	def := schema.LookupPath(cue.ParsePath("#Catalog"))

	var data cue.Value
	switch ext := filepath.Ext(filename); ext {
	case ".cue":
		data = ctx.CompileBytes(src, cue.Filename(filename))
		if err := data.Err(); err != nil {
			return Catalog{}, cueLoadError(ErrCodeParse, err)
		}
	case ".yaml", ".yml", ".json":
		// yaml.v3 also accepts JSON documents.
		var raw any
		if err := yaml.Unmarshal(src, &raw); err != nil {
			return Catalog{}, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("%s: %v", filename, err)}
		}
		if raw == nil {
			raw = map[string]any{}
		}
		data = ctx.Encode(raw)
		if err := data.Err(); err != nil {
			return Catalog{}, cueLoadError(ErrCodeParse, err)
		}
	default:
		return Catalog{}, &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unsupported catalog format %q", ext)}
	}

	v := def.Unify(data)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Catalog{}, cueLoadError(ErrCodeSchema, err)
	}

	var cat Catalog
	if err := v.Decode(&cat); err != nil {
		return Catalog{}, cueLoadError(ErrCodeSchema, err)
	}
	if err := checkUniqueIDs(cat); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// cueLoadError converts a CUE error into a LoadError, keeping the first
// position CUE reports.
func cueLoadError(code string, err error) *LoadError {
	le := &LoadError{Code: code, Message: cueerrors.Details(err, nil)}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		le.Pos = errs[0].Position()
	}
	return le
}

func checkUniqueIDs(cat Catalog) error {
	if id, ok := firstDuplicate(cat.Routes, func(r Route) string { return r.ID }); ok {
		return &LoadError{Code: ErrCodeDuplicateID, Message: fmt.Sprintf("duplicate route id %q", id)}
	}
	if id, ok := firstDuplicate(cat.Suppliers, func(s Supplier) string { return s.ID }); ok {
		return &LoadError{Code: ErrCodeDuplicateID, Message: fmt.Sprintf("duplicate supplier id %q", id)}
	}
	if id, ok := firstDuplicate(cat.Alerts, func(a Alert) string { return a.ID }); ok {
		return &LoadError{Code: ErrCodeDuplicateID, Message: fmt.Sprintf("duplicate alert id %q", id)}
	}
	return nil
}

func firstDuplicate[T any](items []T, key func(T) string) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := key(it)
		if _, dup := seen[k]; dup {
			return k, true
		}
		seen[k] = struct{}{}
	}
	return "", false
}
