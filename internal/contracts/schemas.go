package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"listing-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ключи зарегистрированных контрактов.
const (
	SearchPerformedEventType    = "SearchPerformedEvent"
	SearchPerformedEventVersion = "1.0.0"

	SeedContract = "Seed/1.0.0"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

var schemaRoots = []string{"events", "seed"}

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Сначала добавляем все схемы как ресурсы, чтобы работали $ref между ними.
	for _, root := range schemaRoots {
		err := fs.WalkDir(schemas.SchemasFS, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".json") {
				return nil
			}
			file, err := schemas.SchemasFS.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := compiler.AddResource(path, file); err != nil {
				return fmt.Errorf("failed to add schema resource %s: %w", path, err)
			}
			return nil
		})
		if err != nil {
			log.Fatalf("error walking and adding schema resources: %v", err)
		}
	}

	for _, root := range schemaRoots {
		err := fs.WalkDir(schemas.SchemasFS, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".json") {
				return nil
			}
			schema, err := compiler.Compile(path)
			if err != nil {
				return fmt.Errorf("could not compile schema %s: %w", path, err)
			}
			if key := generateKeyFromPath(path); key != "" {
				compiledSchemas[key] = schema
			}
			return nil
		})
		if err != nil {
			log.Fatalf("error walking and compiling schemas: %v", err)
		}
	}
}

// generateKeyFromPath преобразует путь в ключ контракта:
// "events/search-performed/v1.json" -> "SearchPerformedEvent/1.0.0",
// "seed/v1.json" -> "Seed/1.0.0".
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")

	var name, version string
	switch {
	case len(parts) == 3 && parts[0] == "events":
		name = camel(parts[1]) + "Event"
		version = parts[2]
	case len(parts) == 2:
		name = camel(parts[0])
		version = parts[1]
	default:
		return ""
	}

	return fmt.Sprintf("%s/%s.0.0", name, strings.TrimPrefix(version, "v"))
}

func camel(kebab string) string {
	caser := cases.Title(language.English)
	var b strings.Builder
	for _, p := range strings.Split(kebab, "-") {
		b.WriteString(caser.String(p))
	}
	return b.String()
}

func validate(key string, body []byte) error {
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' not found", key)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidateEvent проверяет тело сообщения по схеме события.
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	return validate(fmt.Sprintf("%s/%s", eventType, eventVersion), body)
}

// ValidateSeed проверяет одну запись сида.
func ValidateSeed(raw []byte) error {
	return validate(SeedContract, raw)
}
