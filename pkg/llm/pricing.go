package llm

// modelPricing is USD per 1K tokens.
type modelPricing struct {
	Input  float64
	Output float64
}

var openAIPricing = map[string]modelPricing{
	"gpt-4o-mini": {Input: 0.00015, Output: 0.0006},
	"gpt-4o":      {Input: 0.0025, Output: 0.010},
	"gpt-4-turbo": {Input: 0.01, Output: 0.03},
	"gpt-4":       {Input: 0.03, Output: 0.06},
}

const defaultPricingModel = "gpt-4o-mini"

func pricingFor(model string) modelPricing {
	if p, ok := openAIPricing[model]; ok {
		return p
	}
	return openAIPricing[defaultPricingModel]
}

// estimateTokens is a rough count: ~4 chars per token in English, ~6 in
// Spanish, so 5 splits the difference for the suites we see.
func estimateTokens(text string) int {
	return len(text) / 5
}
