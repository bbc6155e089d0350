// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"fmt"
	"iter"
	"reflect"
	"strings"

	"google.golang.org/genai"
)

// SchemaFor derives the parameter schema of a function tool from the struct type A.
//
// Field names come from the json tag, descriptions from the description tag.
// Fields are required unless they are pointers or tagged omitempty/omitzero.
func SchemaFor[A any]() (*genai.Schema, error) {
	return typeToSchema(reflect.TypeFor[A]())
}

func typeToSchema(t reflect.Type) (*genai.Schema, error) {
	if t.Kind() == reflect.Pointer {
		return typeToSchema(t.Elem())
	}

	switch t.Kind() {
	case reflect.String:
		return &genai.Schema{Type: genai.TypeString}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &genai.Schema{Type: genai.TypeInteger}, nil

	case reflect.Float32, reflect.Float64:
		return &genai.Schema{Type: genai.TypeNumber}, nil

	case reflect.Bool:
		return &genai.Schema{Type: genai.TypeBoolean}, nil

	case reflect.Slice, reflect.Array:
		items, err := typeToSchema(t.Elem())
		if err != nil {
			return nil, err
		}
		return &genai.Schema{
			Type:  genai.TypeArray,
			Items: items,
		}, nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map keys must be strings, got %v", t.Key().Kind())
		}
		return &genai.Schema{Type: genai.TypeObject}, nil

	case reflect.Struct:
		return structToSchema(t)

	case reflect.Interface:
		return &genai.Schema{}, nil

	default:
		return nil, fmt.Errorf("unsupported type: %v", t.Kind())
	}
}

func structToSchema(t reflect.Type) (*genai.Schema, error) {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema),
	}

	for field := range fields(t) {
		name, opts := jsonFieldName(field)
		if name == "-" {
			continue
		}

		fieldSchema, err := typeToSchema(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		fieldSchema.Description = field.Tag.Get("description")
		schema.Properties[name] = fieldSchema
		schema.PropertyOrdering = append(schema.PropertyOrdering, name)

		if field.Type.Kind() != reflect.Pointer && !strings.Contains(opts, "omitempty") && !strings.Contains(opts, "omitzero") {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema, nil
}

func fields(t reflect.Type) iter.Seq[reflect.StructField] {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			if field := t.Field(i); field.IsExported() && !yield(field) {
				return
			}
		}
	}
}

// jsonFieldName returns the encoded name of field and the remaining tag options.
func jsonFieldName(field reflect.StructField) (string, string) {
	name, opts, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" {
		name = field.Name
	}
	return name, opts
}
