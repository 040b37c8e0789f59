// Package registry maps stable tool names to their argument schemas and
// executors. A Registry is built once at startup and read-only thereafter;
// both front ends resolve and dispatch tools through it, so default-filling
// and validation cannot drift between surfaces.
package registry

import (
	"context"
	"sort"

	"shopify-mcp/internal/errs"
	"shopify-mcp/internal/schema"
)

// ExecuteFunc runs a tool with validated, default-filled arguments.
type ExecuteFunc func(ctx context.Context, args map[string]any) (any, error)

// Tool is a named capability with a declared argument schema and an executor.
type Tool struct {
	// Name is the unique key for this tool, stable across both front ends.
	Name string

	// Description is a one-line summary shown in tool listings.
	Description string

	// InputSchema declares the accepted arguments, their defaults, and
	// their constraints.
	InputSchema schema.JSON

	// ReadOnly marks tools that do not modify store state; their responses
	// may be cached by the HTTP front end.
	ReadOnly bool

	// Execute runs the tool. It receives arguments that have already been
	// default-filled and validated against InputSchema.
	Execute ExecuteFunc
}

// Registry holds the registered tools. Immutable after construction.
type Registry struct {
	tools map[string]Tool
	names []string
}

// New builds a Registry from the given tools. Registering two tools under
// the same name is a bug, so it is rejected at construction time rather
// than silently shadowed.
func New(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if t.Name == "" {
			return nil, errs.New("registry.New", errs.KindConfiguration, "tool with empty name")
		}
		if t.Execute == nil {
			return nil, errs.New("registry.New", errs.KindConfiguration, "tool %q has no executor", t.Name)
		}
		if _, exists := r.tools[t.Name]; exists {
			return nil, errs.New("registry.New", errs.KindConfiguration, "tool %q registered twice", t.Name)
		}
		r.tools[t.Name] = t
		r.names = append(r.names, t.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// MustNew builds a Registry and panics on a duplicate or malformed tool.
// For use at process start where a bad tool set is unrecoverable.
func MustNew(tools ...Tool) *Registry {
	r, err := New(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tools in name order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.tools[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.names) }

// Dispatch looks up the tool, default-fills and validates args against its
// schema, and invokes the executor. Unknown names yield a not-found error;
// schema failures yield a validation error; executor failures are wrapped
// as execution errors. args may be nil.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, errs.New("registry.Dispatch", errs.KindNotFound, "Tool '%s' not found", name)
	}
	filled := t.InputSchema.ApplyDefaults(args)
	if err := t.InputSchema.Validate(filled); err != nil {
		return nil, err
	}
	result, err := t.Execute(ctx, filled)
	if err != nil {
		if errs.IsKind(err, errs.KindValidation) {
			return nil, err
		}
		return nil, errs.Wrap("tool "+name, errs.KindExecution, err)
	}
	return result, nil
}
