// Command schema writes the JSON schema of the newsread configuration.
// With --check it compares the generated schema with an existing file instead.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsread/pkg/config"
)

var opts struct {
	Check bool `long:"check" description:"verify the schema file is up to date instead of writing it"`
}

func main() {
	args, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	outputPath := "schema.json"
	if len(args) > 0 {
		outputPath = args[0]
	}

	data, err := generate()
	if err != nil {
		log.Fatalf("failed to generate schema: %v", err)
	}

	if opts.Check {
		if err := compare(outputPath, data); err != nil {
			log.Fatalf("schema check failed: %v", err)
		}
		fmt.Printf("Schema at %s is up to date\n", outputPath)
		return
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema file: %v", err)
	}
	fmt.Printf("Schema generated successfully at %s\n", outputPath)
}

// generate reflects the config struct into an indented schema document
func generate() ([]byte, error) {
	schema, err := config.GenerateSchema()
	if err != nil {
		return nil, fmt.Errorf("reflect config: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

func compare(path string, expected []byte) error {
	current, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !bytes.Equal(bytes.TrimSpace(current), bytes.TrimSpace(expected)) {
		return fmt.Errorf("%s is stale, regenerate it with go generate ./pkg/config", path)
	}
	return nil
}
