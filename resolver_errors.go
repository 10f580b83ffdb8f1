package at

import (
	"errors"
	"fmt"
	"strings"
)

// ResolveError captures resolver metadata alongside the originating error.
type ResolveError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *ResolveError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("at: %s resolver %s: %v", e.Engine, describeExpression(e.Expr), e.Err)
}

func (e *ResolveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapResolverError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var resolveErr *ResolveError
	if errors.As(err, &resolveErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "at:") {
		return err
	}
	return fmt.Errorf("at: %s resolver: %w", engine, err)
}

func wrapResolveError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}

	var resolveErr *ResolveError
	if errors.As(err, &resolveErr) {
		if resolveErr.Engine == "" {
			resolveErr.Engine = engine
		}
		if resolveErr.Expr == "" {
			resolveErr.Expr = expr
		}
		return resolveErr
	}

	return &ResolveError{
		Engine: engine,
		Expr:   expr,
		Err:    err,
	}
}
