package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library resolves a function call from the model into a function response.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

type Function interface {
	// Declare this function
	Declaration() *genai.FunctionDeclaration
	// Call this function
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary dispatches calls by name over the given functions.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, e := range functions {
			d := e.Declaration()
			if d.Name == call.Name {
				return e.Call(ctx, call.ID, call.Args)
			}
		}
		return errorResponse(call.ID, call.Name, fmt.Errorf("unknown function %s", call.Name))
	}
}

// NewDeclaration collects the declarations of the given functions.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, e := range functions {
		result = append(result, e.Declaration())
	}
	return result
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// errorResponse wraps an error into a function response the model can read.
func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// outputResponse wraps a successful output into a function response.
func outputResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}
