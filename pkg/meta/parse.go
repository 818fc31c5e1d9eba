package meta

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaName = "version.schema.json"

//go:embed version.schema.json
var versionSchema []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	comp := jsonschema.NewCompiler()
	if err := comp.AddResource(schemaName, bytes.NewReader(versionSchema)); err != nil {
		return nil, fmt.Errorf("loading schema %q: %w", schemaName, err)
	}
	sch, err := comp.Compile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %q: %w", schemaName, err)
	}
	return sch, nil
})

// Validate checks a raw version document against the embedded schema.
func Validate(data []byte) error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}

	// numbers are kept as json.Number so integer checks see the literal value
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid version JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("version descriptor failed validation: %w", err)
	}
	return nil
}

// Parse validates and decodes a version document.
func Parse(data []byte) (*VersionDescriptor, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var desc VersionDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("decoding version descriptor: %w", err)
	}
	if desc.ID == "" {
		return nil, ErrMissingID
	}
	return &desc, nil
}
