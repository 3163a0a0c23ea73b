package embedding

import "fmt"

// NewEmbeddingProvider builds the configured embedding backend. A positive
// dim wraps the backend with a dimension check matching the vector columns.
func NewEmbeddingProvider(provider, model string, dim int, ollamaBaseURL, geminiAPIKey string) (EmbeddingProvider, error) {
	var inner EmbeddingProvider
	switch provider {
	case "ollama":
		inner = NewOllamaProvider(ollamaBaseURL, model)
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini embedding provider requires GOOGLE_GEMINI_API_KEY")
		}
		inner = NewGeminiProvider(geminiAPIKey, model)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", provider)
	}

	if dim > 0 {
		return newDimensionChecked(inner, dim), nil
	}
	return inner, nil
}
