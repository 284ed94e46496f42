package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const projectSchemaTemplate = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "tasks"],
    "properties": {
      "title": {"type": "string"},
      "tasks": {
        "type": "array",
        "items": {
          "type": "object",
          "required": %s,
          "properties": {
            "title": {"type": "string"}%s
          }
        }
      }
    }
  }
}`

const (
	statusProperty   = `, "status": {"enum": ["0", "25", "50", "75", "100"]}`
	priorityProperty = `, "priority": {"enum": [0, 1, 2, 3]}`
)

var schemaSources = map[Version]string{
	"1": fmt.Sprintf(projectSchemaTemplate, `["title", "done"]`, `, "done": {"type": "boolean"}`),
	"2": fmt.Sprintf(projectSchemaTemplate, `["title", "status"]`, statusProperty),
	"3": fmt.Sprintf(projectSchemaTemplate, `["title", "status", "priority"]`, statusProperty+priorityProperty),
}

var (
	compiledMu sync.Mutex
	compiled   = map[Version]*jsonschema.Schema{}
)

func compile(v Version) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s := compiled[v]; s != nil {
		return s, nil
	}
	src, ok := schemaSources[v]
	if !ok {
		return nil, fmt.Errorf("no schema for version %q", v)
	}
	url := "store-v" + v.FileName()
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(url, strings.NewReader(src)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", v, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", v, err)
	}
	compiled[v] = s
	return s, nil
}

// ValidationError points at the first offending location in a document.
type ValidationError struct {
	Version Version
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid v%s document: %s", e.Version, e.Message)
	}
	return fmt.Sprintf("invalid v%s document at %s: %s", e.Version, e.Path, e.Message)
}

// Validate checks doc against the schema of version v.
func Validate(v Version, doc Document) error {
	s, err := compile(v)
	if err != nil {
		return err
	}

	// Normalize through encoding/json so numbers and nested values have the
	// decoded shapes the validator expects.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var obj any
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}

	if err := s.Validate(obj); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return err
		}
		leaf := firstLeaf(ve)
		return ValidationError{Version: v, Path: leaf.InstanceLocation, Message: leaf.Message}
	}
	return nil
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}
