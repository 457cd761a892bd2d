package completion

import "context"

type Request struct {
	Prompt      string
	MaxTokens   int
	N           int
	Temperature float32
	Stop        []string
}

type Generator interface {
	Complete(ctx context.Context, req Request) ([]string, error)
}
