package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top-level section of the config must be known to the schema
	if err := checkSections(schema, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkSections verifies config sections against the properties of the schema's Config definition
func checkSections(schema, configMap map[string]interface{}) error {
	defs, ok := schema["$defs"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema has no definitions")
	}
	root, ok := defs["Config"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema has no Config definition")
	}
	props, ok := root["properties"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema Config has no properties")
	}
	for key := range configMap {
		if _, found := props[key]; !found {
			return fmt.Errorf("section %q is not described by schema", key)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check server config
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	if cfg.Remote.Mode == ModeScraper && cfg.Remote.Endpoint == "" {
		return fmt.Errorf("remote.endpoint is required in scraper mode")
	}
	if cfg.Remote.Mode == ModeDirect && cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required in direct mode")
	}
	if cfg.Download.Dir == "" {
		return fmt.Errorf("download.dir is required")
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
