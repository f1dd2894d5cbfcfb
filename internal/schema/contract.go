// Package schema holds the structured-output contract shared by generation and
// validation. The same document constrains the model request and validates the
// parsed response.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed job_extraction.json
var jobExtractionDoc []byte

// JobExtractionName is the schema name sent with structured-output requests.
const JobExtractionName = "JobExtraction"

// Contract is a compiled JSON Schema plus its raw document.
// It is immutable and safe for concurrent use.
type Contract struct {
	name     string
	raw      json.RawMessage
	compiled *jsonschema.Schema
}

// JobExtraction compiles the job extraction contract.
func JobExtraction() (*Contract, error) {
	return New(JobExtractionName, jobExtractionDoc)
}

// MustJobExtraction is like JobExtraction but panics on a malformed embedded schema.
func MustJobExtraction() *Contract {
	c, err := JobExtraction()
	if err != nil {
		panic(err)
	}
	return c
}

// New compiles raw as a JSON Schema document named name.
func New(name string, raw []byte) (*Contract, error) {
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("load %s schema: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Contract{name: name, raw: append(json.RawMessage(nil), raw...), compiled: compiled}, nil
}

// Name is the schema name sent to providers alongside the document.
func (c *Contract) Name() string { return c.name }

// Raw returns a copy of the schema document bytes.
func (c *Contract) Raw() json.RawMessage {
	return append(json.RawMessage(nil), c.raw...)
}

// Document returns a fresh decoded copy of the schema, safe for callers to mutate.
func (c *Contract) Document() map[string]any {
	var doc map[string]any
	// The document compiled in New, so it decodes.
	_ = json.Unmarshal(c.raw, &doc)
	return doc
}

// Validate checks a decoded JSON value (as produced by json.Unmarshal into any)
// against the contract.
func (c *Contract) Validate(doc any) error {
	if err := c.compiled.Validate(doc); err != nil {
		return fmt.Errorf("%s does not match schema: %w", c.name, err)
	}
	return nil
}

// ValidateJSON decodes data and validates it against the contract.
func (c *Contract) ValidateJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", c.name, err)
	}
	return c.Validate(doc)
}
