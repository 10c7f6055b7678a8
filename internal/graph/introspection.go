package graph

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
)

// The introspection types come from gqlgen; these objects only expose their
// fields to the executor.

type schemaObject struct {
	schema *introspection.Schema
}

func (o *schemaObject) typeName() string { return "__Schema" }

func (o *schemaObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	switch field.Name {
	case "description":
		return ptrValue(o.schema.Description()), nil
	case "types":
		return objectList(o.schema.Types(), typeValue), nil
	case "queryType":
		return typeValue(o.schema.QueryType()), nil
	case "mutationType":
		return typeValue(o.schema.MutationType()), nil
	case "subscriptionType":
		return typeValue(o.schema.SubscriptionType()), nil
	case "directives":
		return objectList(o.schema.Directives(), func(d *introspection.Directive) any {
			return &directiveObject{d}
		}), nil
	}
	return nil, fmt.Errorf("unknown field __Schema.%s", field.Name)
}

type typeObject struct {
	typ *introspection.Type
}

// typeValue keeps a nil *introspection.Type from turning into a non-nil any.
func typeValue(t *introspection.Type) any {
	if t == nil {
		return nil
	}
	return &typeObject{t}
}

func (o *typeObject) typeName() string { return "__Type" }

func (o *typeObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	args := graphql.GetFieldContext(ctx).Args

	switch field.Name {
	case "kind":
		return o.typ.Kind(), nil
	case "name":
		return ptrValue(o.typ.Name()), nil
	case "description":
		return ptrValue(o.typ.Description()), nil
	case "specifiedByURL":
		return ptrValue(o.typ.SpecifiedByURL()), nil
	case "isOneOf":
		return o.typ.IsOneOf(), nil
	case "fields":
		return objectList(o.typ.Fields(boolArg(args, "includeDeprecated")), func(f *introspection.Field) any {
			return &fieldObject{f}
		}), nil
	case "inputFields":
		return objectList(o.typ.InputFields(), inputValue), nil
	case "interfaces":
		return objectList(o.typ.Interfaces(), typeValue), nil
	case "possibleTypes":
		return objectList(o.typ.PossibleTypes(), typeValue), nil
	case "enumValues":
		return objectList(o.typ.EnumValues(boolArg(args, "includeDeprecated")), func(v *introspection.EnumValue) any {
			return &enumValueObject{v}
		}), nil
	case "ofType":
		return typeValue(o.typ.OfType()), nil
	}
	return nil, fmt.Errorf("unknown field __Type.%s", field.Name)
}

type fieldObject struct {
	field *introspection.Field
}

func (o *fieldObject) typeName() string { return "__Field" }

func (o *fieldObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	switch field.Name {
	case "name":
		return o.field.Name, nil
	case "description":
		return ptrValue(o.field.Description()), nil
	case "args":
		return objectList(o.field.Args, inputValue), nil
	case "type":
		return typeValue(o.field.Type), nil
	case "isDeprecated":
		return o.field.IsDeprecated(), nil
	case "deprecationReason":
		return ptrValue(o.field.DeprecationReason()), nil
	}
	return nil, fmt.Errorf("unknown field __Field.%s", field.Name)
}

type inputValueObject struct {
	value *introspection.InputValue
}

func inputValue(v *introspection.InputValue) any {
	return &inputValueObject{v}
}

func (o *inputValueObject) typeName() string { return "__InputValue" }

func (o *inputValueObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	switch field.Name {
	case "name":
		return o.value.Name, nil
	case "description":
		return ptrValue(o.value.Description()), nil
	case "type":
		return typeValue(o.value.Type), nil
	case "defaultValue":
		return ptrValue(o.value.DefaultValue), nil
	case "isDeprecated":
		return o.value.IsDeprecated(), nil
	case "deprecationReason":
		return ptrValue(o.value.DeprecationReason()), nil
	}
	return nil, fmt.Errorf("unknown field __InputValue.%s", field.Name)
}

type enumValueObject struct {
	value *introspection.EnumValue
}

func (o *enumValueObject) typeName() string { return "__EnumValue" }

func (o *enumValueObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	switch field.Name {
	case "name":
		return o.value.Name, nil
	case "description":
		return ptrValue(o.value.Description()), nil
	case "isDeprecated":
		return o.value.IsDeprecated(), nil
	case "deprecationReason":
		return ptrValue(o.value.DeprecationReason()), nil
	}
	return nil, fmt.Errorf("unknown field __EnumValue.%s", field.Name)
}

type directiveObject struct {
	directive *introspection.Directive
}

func (o *directiveObject) typeName() string { return "__Directive" }

func (o *directiveObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	switch field.Name {
	case "name":
		return o.directive.Name, nil
	case "description":
		return ptrValue(o.directive.Description()), nil
	case "locations":
		return objectList(o.directive.Locations, func(l *string) any { return *l }), nil
	case "args":
		return objectList(o.directive.Args, inputValue), nil
	case "isRepeatable":
		return o.directive.IsRepeatable, nil
	}
	return nil, fmt.Errorf("unknown field __Directive.%s", field.Name)
}

// objectList converts a slice into the []any the executor completes lists
// from. A nil slice becomes an empty list.
func objectList[T any](items []T, wrap func(*T) any) any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = wrap(&items[i])
	}
	return out
}

func boolArg(args map[string]any, name string) bool {
	b, ok := args[name].(bool)
	return ok && b
}
