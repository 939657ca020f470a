package analyzer_fx

import (
	"log"

	"go.uber.org/fx"

	"corso/internal/infra"
	"corso/internal/repositories"
	"corso/internal/services"
	"corso/pkg/utils"
)

var Module = fx.Provide(provideClassifier, provideAnalyzerService)

// provideClassifier picks the LLM provider from config, keeping the
// rule-based classifier as the no-key default.
func provideClassifier(cfg infra.Config) utils.PlaceClassifierInterface {
	switch cfg.LLMProvider {
	case "openai":
		client, err := utils.NewOpenAIClassifier(cfg.OpenAIAPIKey, "")
		if err != nil {
			log.Printf("OpenAI classifier unavailable, using rule-based: %v", err)
			return utils.NewRuleBasedClassifier()
		}
		return client
	case "gemini":
		client, err := utils.NewGeminiClassifier(cfg.GeminiAPIKey, "")
		if err != nil {
			log.Printf("Gemini classifier unavailable, using rule-based: %v", err)
			return utils.NewRuleBasedClassifier()
		}
		return client
	default:
		return utils.NewRuleBasedClassifier()
	}
}

func provideAnalyzerService(
	placeRepo repositories.PlaceRepository,
	embeddingRepo repositories.IPlaceEmbeddingRepository,
	classifier utils.PlaceClassifierInterface,
) services.AnalyzerServiceInterface {
	return services.NewAnalyzerService(placeRepo, embeddingRepo, classifier)
}
