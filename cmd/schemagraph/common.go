package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kaptinlin/jsonschema"
	"github.com/kaptinlin/jsonschema/uri"
)

// logID returns the CLI's correlation id for this invocation: the
// --request-id flag value if set, otherwise a fresh random one, so every run
// can be traced through log output even when the caller didn't supply one.
func logID() string {
	if requestID != "" {
		return requestID
	}
	return uuid.NewString()
}

// fileURI turns a filesystem path into the absolute URI the engine indexes
// documents by, so schema files can $ref each other by relative path the
// same way a compiled-in test fixture set does.
func fileURI(path string) (uri.Absolute, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return uri.Absolute{}, err
	}
	return uri.Parse("file://" + filepath.ToSlash(abs))
}

func buildEngine(assertFormat bool) (*jsonschema.Engine, error) {
	return jsonschema.NewBuilder().
		WithDefaultDialect(jsonschema.Draft2020_12()).
		WithResolver(jsonschema.ResolverFunc(func(u uri.Absolute) ([]byte, error) {
			if u.Scheme() != "file" {
				return nil, nil
			}
			return os.ReadFile(u.Path())
		})).
		WithAssertFormat(assertFormat).
		Build()
}

func compileSchemaFile(e *jsonschema.Engine, path string, validate bool) (jsonschema.SchemaKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return jsonschema.SchemaKey{}, fmt.Errorf("reading %s: %w", path, err)
	}
	u, err := fileURI(path)
	if err != nil {
		return jsonschema.SchemaKey{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	return e.CompileBytes(u, data, validate)
}
