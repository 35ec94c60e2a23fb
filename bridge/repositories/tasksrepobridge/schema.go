package tasksrepobridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Payload schemas only check the shape of the body. Field values are cast
// by the marshal functions, so a number title or a "true" status is accepted.
const (
	objectSchema = `{"type": "object"}`

	updateStatusSchema = `{
		"type": "object",
		"required": ["completed"]
	}`
)

const schemaBase = "https://tasktracker.local/schemas/"

var (
	objectPayload       = mustCompile(schemaBase+"object.json", objectSchema)
	updateStatusPayload = mustCompile(schemaBase+"update_status.json", updateStatusSchema)
)

func mustCompile(name string, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// validatePayload checks data against schema and flattens the schema errors
// into one message, "/: missing properties: 'completed'".
func validatePayload(schema *jsonschema.Schema, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}

	err := schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var msgs []string
	collectSchemaErrors(ve, &msgs)
	return errors.New(strings.Join(msgs, "; "))
}

func collectSchemaErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, msgs)
	}
}
