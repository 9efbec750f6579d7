// ABOUTME: Provider enumerates the supported text-generation backends
// ABOUTME: Selects which LLM client the session loop talks to
package models

import "fmt"

// Provider identifies a text-generation backend.
type Provider int

const (
	ProviderOpenAI Provider = iota
	ProviderGemini
	ProviderOllama
)

var providerNames = [...]string{
	ProviderOpenAI: "OpenAI",
	ProviderGemini: "Gemini",
	ProviderOllama: "Ollama",
}

// Providers returns all backends in display order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderGemini, ProviderOllama}
}

// String returns the serialized name of the provider.
func (p Provider) String() string {
	if p < 0 || int(p) >= len(providerNames) {
		return fmt.Sprintf("Provider(%d)", int(p))
	}
	return providerNames[p]
}

// RequiresAPIKey reports whether the provider needs an API key.
// Ollama talks to a local server and needs none.
func (p Provider) RequiresAPIKey() bool {
	return p != ProviderOllama
}

// ParseProvider converts a serialized provider name back to its enum value.
func ParseProvider(s string) (Provider, error) {
	for i, name := range providerNames {
		if name == s {
			return Provider(i), nil
		}
	}
	return 0, fmt.Errorf("unknown provider %q", s)
}
