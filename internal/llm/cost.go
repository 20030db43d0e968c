package llm

// modelPrice is USD per 1K tokens.
type modelPrice struct {
	input  float64
	output float64
}

var modelPrices = map[string]modelPrice{
	"gpt-4o":      {input: 0.005, output: 0.015},
	"gpt-4o-mini": {input: 0.00015, output: 0.0006},

	"claude-3-haiku-20240307":  {input: 0.00025, output: 0.00125},
	"claude-3-5-haiku-latest":  {input: 0.0008, output: 0.004},
	"claude-sonnet-4-20250514": {input: 0.003, output: 0.015},
	"claude-opus-4-20250514":   {input: 0.015, output: 0.075},
}

// CalculateCost estimates the USD cost of a call. Unknown models cost 0.
func CalculateCost(model string, inputTokens, outputTokens int) float64 {
	p, ok := modelPrices[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1000.0*p.input + float64(outputTokens)/1000.0*p.output
}
