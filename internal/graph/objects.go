package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"

	"github.com/hmans/bookshelf/internal/model"
)

type queryObject struct {
	resolver QueryResolver
}

func (o *queryObject) typeName() string { return "Query" }

func (o *queryObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	args := graphql.GetFieldContext(ctx).Args

	switch field.Name {
	case "authors":
		authors, err := o.resolver.Authors(ctx)
		return ec.authorList(authors), err
	case "books":
		books, err := o.resolver.Books(ctx)
		return ec.bookList(books), err
	case "book":
		id, err := intArg(args, "id")
		if err != nil {
			return nil, err
		}
		b, err := o.resolver.Book(ctx, id)
		return ec.bookValue(b), err
	case "author":
		id, err := intArg(args, "id")
		if err != nil {
			return nil, err
		}
		a, err := o.resolver.Author(ctx, id)
		return ec.authorValue(a), err
	case "searchBooks":
		query, err := requiredStringArg(args, "query")
		if err != nil {
			return nil, err
		}
		limit, err := intArg(args, "limit")
		if err != nil {
			return nil, err
		}
		books, err := o.resolver.SearchBooks(ctx, query, limit)
		return ec.bookList(books), err
	case "searchAuthors":
		query, err := requiredStringArg(args, "query")
		if err != nil {
			return nil, err
		}
		limit, err := intArg(args, "limit")
		if err != nil {
			return nil, err
		}
		authors, err := o.resolver.SearchAuthors(ctx, query, limit)
		return ec.authorList(authors), err
	case "__schema":
		if ec.DisableIntrospection {
			return nil, errors.New("introspection disabled")
		}
		return &schemaObject{schema: introspection.WrapSchema(ec.schema)}, nil
	case "__type":
		if ec.DisableIntrospection {
			return nil, errors.New("introspection disabled")
		}
		name, err := requiredStringArg(args, "name")
		if err != nil {
			return nil, err
		}
		return typeValue(introspection.WrapTypeFromDef(ec.schema, ec.schema.Types[name])), nil
	}
	return nil, fmt.Errorf("unknown field Query.%s", field.Name)
}

type mutationObject struct {
	resolver MutationResolver
}

func (o *mutationObject) typeName() string { return "Mutation" }

func (o *mutationObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	args := graphql.GetFieldContext(ctx).Args

	switch field.Name {
	case "addBook":
		name, err := requiredStringArg(args, "name")
		if err != nil {
			return nil, err
		}
		authorID, err := requiredIntArg(args, "authorId")
		if err != nil {
			return nil, err
		}
		b, err := o.resolver.AddBook(ctx, name, authorID)
		return ec.bookValue(b), err
	case "updateBook":
		id, err := requiredIntArg(args, "id")
		if err != nil {
			return nil, err
		}
		name, err := stringArg(args, "name")
		if err != nil {
			return nil, err
		}
		authorID, err := intArg(args, "authorId")
		if err != nil {
			return nil, err
		}
		b, err := o.resolver.UpdateBook(ctx, id, name, authorID)
		return ec.bookValue(b), err
	case "deleteBook":
		id, err := requiredIntArg(args, "id")
		if err != nil {
			return nil, err
		}
		b, err := o.resolver.DeleteBook(ctx, id)
		return ec.bookValue(b), err
	case "addAuthor":
		name, err := requiredStringArg(args, "name")
		if err != nil {
			return nil, err
		}
		a, err := o.resolver.AddAuthor(ctx, name)
		return ec.authorValue(a), err
	case "deleteAuthor":
		id, err := requiredIntArg(args, "id")
		if err != nil {
			return nil, err
		}
		a, err := o.resolver.DeleteAuthor(ctx, id)
		return ec.authorValue(a), err
	case "updateAuthor":
		id, err := requiredIntArg(args, "id")
		if err != nil {
			return nil, err
		}
		name, err := stringArg(args, "name")
		if err != nil {
			return nil, err
		}
		a, err := o.resolver.UpdateAuthor(ctx, id, name)
		return ec.authorValue(a), err
	}
	return nil, fmt.Errorf("unknown field Mutation.%s", field.Name)
}

type authorObject struct {
	author   *model.Author
	resolver AuthorResolver
}

func (o *authorObject) typeName() string { return "Author" }

func (o *authorObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	switch field.Name {
	case "id":
		return o.author.ID, nil
	case "name":
		return ptrValue(o.author.Name), nil
	case "books":
		books, err := o.resolver.Books(ctx, o.author)
		return ec.bookList(books), err
	}
	return nil, fmt.Errorf("unknown field Author.%s", field.Name)
}

type bookObject struct {
	book     *model.Book
	resolver BookResolver
}

func (o *bookObject) typeName() string { return "Book" }

func (o *bookObject) resolve(ctx context.Context, ec *executionContext, field graphql.CollectedField) (any, error) {
	switch field.Name {
	case "id":
		return o.book.ID, nil
	case "name":
		return ptrValue(o.book.Name), nil
	case "authorId":
		return ptrValue(o.book.AuthorID), nil
	case "author":
		a, err := o.resolver.Author(ctx, o.book)
		return ec.authorValue(a), err
	}
	return nil, fmt.Errorf("unknown field Book.%s", field.Name)
}

func (ec *executionContext) authorValue(a *model.Author) any {
	if a == nil {
		return nil
	}
	return &authorObject{author: a, resolver: ec.resolvers.Author()}
}

func (ec *executionContext) bookValue(b *model.Book) any {
	if b == nil {
		return nil
	}
	return &bookObject{book: b, resolver: ec.resolvers.Book()}
}

// authorList keeps a nil slice as null; an empty slice is an empty list.
func (ec *executionContext) authorList(authors []*model.Author) any {
	if authors == nil {
		return nil
	}
	out := make([]any, len(authors))
	for i, a := range authors {
		out[i] = ec.authorValue(a)
	}
	return out
}

func (ec *executionContext) bookList(books []*model.Book) any {
	if books == nil {
		return nil
	}
	out := make([]any, len(books))
	for i, b := range books {
		out[i] = ec.bookValue(b)
	}
	return out
}
