package credentials

import "os"

const OpenAiApiKey = "OPENAI_API_KEY"

// Source resolves a secret by name. Implementations are queried on every call
// so a rotated secret is picked up without a restart.
type Source interface {
	Lookup(name string) (string, bool)
}

type Env struct{}

var _ Source = Env{}

func (Env) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

type Static map[string]string

var _ Source = Static(nil)

func (s Static) Lookup(name string) (string, bool) {
	value, ok := s[name]
	return value, ok
}

// Chain returns the first value found, in order.
type Chain []Source

var _ Source = Chain(nil)

func (c Chain) Lookup(name string) (string, bool) {
	for _, source := range c {
		if source == nil {
			continue
		}
		if value, ok := source.Lookup(name); ok && value != "" {
			return value, true
		}
	}

	return "", false
}
