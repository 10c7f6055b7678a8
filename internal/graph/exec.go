package graph

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hmans/bookshelf/internal/model"
)

//go:embed schema.graphqls
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})

// NewExecutableSchema creates an ExecutableSchema from the ResolverRoot interface.
func NewExecutableSchema(cfg Config) graphql.ExecutableSchema {
	return &executableSchema{
		schema:    parsedSchema,
		resolvers: cfg.Resolvers,
	}
}

type Config struct {
	Resolvers ResolverRoot
}

type ResolverRoot interface {
	Author() AuthorResolver
	Book() BookResolver
	Mutation() MutationResolver
	Query() QueryResolver
}

type AuthorResolver interface {
	Books(ctx context.Context, obj *model.Author) ([]*model.Book, error)
}
type BookResolver interface {
	Author(ctx context.Context, obj *model.Book) (*model.Author, error)
}
type MutationResolver interface {
	AddBook(ctx context.Context, name string, authorID int) (*model.Book, error)
	UpdateBook(ctx context.Context, id int, name *string, authorID *int) (*model.Book, error)
	DeleteBook(ctx context.Context, id int) (*model.Book, error)
	AddAuthor(ctx context.Context, name string) (*model.Author, error)
	DeleteAuthor(ctx context.Context, id int) (*model.Author, error)
	UpdateAuthor(ctx context.Context, id int, name *string) (*model.Author, error)
}
type QueryResolver interface {
	Authors(ctx context.Context) ([]*model.Author, error)
	Books(ctx context.Context) ([]*model.Book, error)
	Book(ctx context.Context, id *int) (*model.Book, error)
	Author(ctx context.Context, id *int) (*model.Author, error)
	SearchBooks(ctx context.Context, query string, limit *int) ([]*model.Book, error)
	SearchAuthors(ctx context.Context, query string, limit *int) ([]*model.Author, error)
}

type executableSchema struct {
	schema    *ast.Schema
	resolvers ResolverRoot
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, rawArgs map[string]any) (int, bool) {
	return 0, false
}

// Exec runs query and mutation operations and always produces a single,
// complete response. @defer and @stream are resolved inline. Any other
// operation kind gets an explicit error response.
func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	ec := &executionContext{OperationContext: opCtx, executableSchema: e}

	var root object
	switch opCtx.Operation.Operation {
	case ast.Query:
		root = &queryObject{resolver: e.resolvers.Query()}
	case ast.Mutation:
		root = &mutationObject{resolver: e.resolvers.Mutation()}
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation: %s", opCtx.Operation.Operation))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		data, ok := ec.executeSelectionSet(ctx, root, opCtx.Operation.SelectionSet)
		if !ok {
			data = graphql.Null
		}

		var buf bytes.Buffer
		data.MarshalGQL(&buf)

		return &graphql.Response{Data: buf.Bytes()}
	}
}

// object is a value whose fields can be selected.
//
// resolve returns one of: nil, int, string, bool, []any, or another object.
type object interface {
	typeName() string
	resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error)
}

type executionContext struct {
	*graphql.OperationContext
	*executableSchema
}

// executeSelectionSet resolves the selected fields of obj in document order.
// ok is false when a non-null field resolved to null, in which case the
// whole object must be replaced by null in its parent.
func (ec *executionContext) executeSelectionSet(ctx context.Context, obj object, sel ast.SelectionSet) (graphql.Marshaler, bool) {
	typeName := obj.typeName()
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{typeName})

	out := graphql.NewFieldSet(fields)
	invalid := false
	for i, field := range fields {
		if field.Name == "__typename" {
			out.Values[i] = graphql.MarshalString(typeName)
			continue
		}

		def := field.Definition
		if def == nil {
			def = ec.schema.Types[typeName].Fields.ForName(field.Name)
		}
		if def == nil {
			graphql.AddErrorf(ctx, "unknown field %s.%s", typeName, field.Name)
			out.Values[i] = graphql.Null
			continue
		}

		fctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{
			Object:     typeName,
			Field:      field,
			Args:       field.ArgumentMap(ec.Variables),
			IsMethod:   true,
			IsResolver: true,
		})

		m, ok := ec.resolveField(fctx, obj, field, def)
		if !ok {
			invalid = true
			continue
		}
		out.Values[i] = m
	}

	if invalid {
		return nil, false
	}
	return out, true
}

func (ec *executionContext) resolveField(ctx context.Context, obj object, field graphql.CollectedField, def *ast.FieldDefinition) (ret graphql.Marshaler, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			graphql.AddError(ctx, ec.Recover(ctx, r))
			ret, ok = graphql.Null, !def.Type.NonNull
		}
	}()

	v, err := obj.resolve(ctx, ec, field)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null, !def.Type.NonNull
	}

	return ec.completeValue(ctx, def.Type, field.Selections, v)
}

// completeValue turns a resolved value into its response representation
// according to typ. A false ok means null has to propagate to the parent.
func (ec *executionContext) completeValue(ctx context.Context, typ *ast.Type, sel ast.SelectionSet, v any) (graphql.Marshaler, bool) {
	if !typ.NonNull {
		m, ok := ec.completeNullable(ctx, typ, sel, v)
		if !ok {
			return graphql.Null, true
		}
		return m, true
	}

	m, ok := ec.completeNullable(ctx, typ, sel, v)
	if !ok {
		return nil, false
	}
	if m == graphql.Null {
		if !graphql.HasFieldError(ctx, graphql.GetFieldContext(ctx)) {
			graphql.AddErrorf(ctx, "must not be null")
		}
		return nil, false
	}
	return m, true
}

func (ec *executionContext) completeNullable(ctx context.Context, typ *ast.Type, sel ast.SelectionSet, v any) (graphql.Marshaler, bool) {
	if v == nil {
		return graphql.Null, true
	}

	if typ.Elem != nil {
		items, isList := v.([]any)
		if !isList {
			graphql.AddErrorf(ctx, "expected a list, got %T", v)
			return nil, false
		}

		arr := make(graphql.Array, 0, len(items))
		for i, item := range items {
			idx := i
			ictx := graphql.WithFieldContext(ctx, &graphql.FieldContext{Index: &idx, Result: item})
			m, ok := ec.completeValue(ictx, typ.Elem, sel, item)
			if !ok {
				return nil, false
			}
			arr = append(arr, m)
		}
		return arr, true
	}

	def := ec.schema.Types[typ.NamedType]
	if def == nil {
		graphql.AddErrorf(ctx, "unknown type %s", typ.NamedType)
		return nil, false
	}

	switch def.Kind {
	case ast.Object, ast.Interface, ast.Union:
		obj, isObject := v.(object)
		if !isObject {
			graphql.AddErrorf(ctx, "cannot complete %T as %s", v, def.Name)
			return nil, false
		}
		return ec.executeSelectionSet(ctx, obj, sel)
	default:
		m, err := marshalLeaf(def, v)
		if err != nil {
			graphql.AddError(ctx, err)
			return nil, false
		}
		return m, true
	}
}

func marshalLeaf(def *ast.Definition, v any) (graphql.Marshaler, error) {
	if def.Kind == ast.Enum {
		if s, ok := v.(string); ok {
			return graphql.MarshalString(s), nil
		}
		return nil, fmt.Errorf("enum %s: unexpected value %T", def.Name, v)
	}

	switch def.Name {
	case "Int":
		if i, ok := v.(int); ok {
			return graphql.MarshalInt(i), nil
		}
	case "String", "ID":
		if s, ok := v.(string); ok {
			return graphql.MarshalString(s), nil
		}
	case "Boolean":
		if b, ok := v.(bool); ok {
			return graphql.MarshalBoolean(b), nil
		}
	}
	return nil, fmt.Errorf("cannot marshal %T as %s", v, def.Name)
}

// Arguments arrive as int64 (literals) or json.Number (variables); they are
// parsed once here into the Go types the resolvers take.

func intArg(args map[string]any, name string) (*int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	i, err := graphql.UnmarshalInt(v)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", name, err)
	}
	return &i, nil
}

func stringArg(args map[string]any, name string) (*string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	s, err := graphql.UnmarshalString(v)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", name, err)
	}
	return &s, nil
}

var errMissingArgument = errors.New("missing required argument")

func requiredIntArg(args map[string]any, name string) (int, error) {
	i, err := intArg(args, name)
	if err != nil {
		return 0, err
	}
	if i == nil {
		return 0, fmt.Errorf("%w %s", errMissingArgument, name)
	}
	return *i, nil
}

func requiredStringArg(args map[string]any, name string) (string, error) {
	s, err := stringArg(args, name)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("%w %s", errMissingArgument, name)
	}
	return *s, nil
}

// ptrValue unwraps an optional field. A nil pointer resolves to null.
func ptrValue[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
