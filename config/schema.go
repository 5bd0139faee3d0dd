package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID is the $id written into the generated schema.
const SchemaID = "https://github.com/randalmurphal/promptkit/config/formatter.schema.json"

// Schema returns the JSON Schema of File, for editor completion and
// validation of configuration files.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := r.Reflect(&File{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "promptkit formatter configuration"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
