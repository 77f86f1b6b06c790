package seo

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// ErrUnknownType is returned for documents whose @type has no schema.
var ErrUnknownType = errors.New("seo: no schema for @type")

// SchemaError lists every violation of one document.
type SchemaError struct {
	Type    string
	Details []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, strings.Join(e.Details, "; "))
}

var (
	schemasOnce sync.Once
	schemas     map[string]*gojsonschema.Schema
	schemasErr  error
)

var schemaByType = map[string]string{
	"Organization":      "schemas/organization.json",
	"WebSite":           "schemas/website.json",
	"GeneralContractor": "schemas/generalcontractor.json",
	"Service":           "schemas/service.json",
	"Article":           "schemas/article.json",
	"FAQPage":           "schemas/faqpage.json",
	"BreadcrumbList":    "schemas/breadcrumblist.json",
}

func loadSchemas() (map[string]*gojsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas = make(map[string]*gojsonschema.Schema, len(schemaByType))
		for typ, name := range schemaByType {
			raw, err := schemaFiles.ReadFile(name)
			if err != nil {
				schemasErr = err
				return
			}
			s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				schemasErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			schemas[typ] = s
		}
	})
	return schemas, schemasErr
}

// Validate checks an emitted document against the schema registered for its @type.
func Validate(doc map[string]any) error {
	all, err := loadSchemas()
	if err != nil {
		return err
	}
	typ, _ := doc["@type"].(string)
	schema, ok := all[typ]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownType, typ)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate %s: %w", typ, err)
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		details[i] = desc.String()
	}
	return &SchemaError{Type: typ, Details: details}
}

// ValidateScript parses the body of a JSON-LD script element and validates it.
func ValidateScript(body string) error {
	doc, err := decodeDocument(body)
	if err != nil {
		return err
	}
	return Validate(doc)
}

func decodeDocument(body string) (map[string]any, error) {
	var doc map[string]any
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json-ld: %w", err)
	}
	return doc, nil
}
