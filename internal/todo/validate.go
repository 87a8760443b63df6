package todo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todo-go/internal/utils"
)

//go:embed items.schema.json
var itemsSchema string

const itemsSchemaURL = "https://github.com/nibzard/todo-go/items.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(itemsSchemaURL, strings.NewReader(itemsSchema)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(itemsSchemaURL)
	})
	return compiledSchema, compileErr
}

// Schema returns the JSON Schema the persisted blob must satisfy.
func Schema() string {
	return itemsSchema
}

// Validate parses a persisted blob and checks it against the item schema.
// Stored indices that disagree with positions produce warnings, not errors,
// since Load re-derives them.
func Validate(data []byte) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("parse items: %w", err),
		})
		return result
	}

	sch, err := schema()
	if err != nil {
		// The schema is embedded; failing to compile it is a build defect.
		panic(err)
	}
	if err := sch.Validate(raw); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
		return result
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("decode items: %w", err),
		})
		return result
	}
	for i, item := range items {
		if item.Index != i {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("[%d].index: stored %d, position %d", i, item.Index, i))
		}
	}
	result.Items = items
	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
