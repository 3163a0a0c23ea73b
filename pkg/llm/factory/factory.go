package factory

import (
	"fmt"

	"chapchap-be/pkg/llm"
	"chapchap-be/pkg/llm/gemini"
	"chapchap-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured completion backend.
func NewLLMProvider(provider, model, ollamaBaseURL, geminiAPIKey string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
