package duet

// =============================================================================
// OpenAI Models
// https://platform.openai.com/docs/models/
// =============================================================================

const (
	// GPT-4.1 Series
	ModelOpenAIGPT41     = "gpt-4.1"
	ModelOpenAIGPT41Mini = "gpt-4.1-mini"
	ModelOpenAIGPT41Nano = "gpt-4.1-nano"

	// GPT-4o Series
	ModelOpenAIGPT4o     = "gpt-4o"
	ModelOpenAIGPT4oMini = "gpt-4o-mini"

	// O-Series (Reasoning Models)
	ModelOpenAIO3     = "o3"
	ModelOpenAIO4Mini = "o4-mini"
)

// =============================================================================
// Anthropic Claude Models
// https://docs.anthropic.com/en/docs/about-claude/models/overview
// =============================================================================

const (
	// Claude 4.5 Series (Latest)
	ModelAnthropicClaude45Sonnet = "claude-sonnet-4-5-20250929"
	ModelAnthropicClaude45Haiku  = "claude-haiku-4-5-20251001"

	// Claude 4.x Series
	ModelAnthropicClaude41Opus  = "claude-opus-4-1-20250805"
	ModelAnthropicClaude4Sonnet = "claude-sonnet-4-20250522"

	// Claude 3.5 Series (Legacy)
	ModelAnthropicClaude35Sonnet = "claude-3-5-sonnet-20241022"
	ModelAnthropicClaude35Haiku  = "claude-3-5-haiku-20241022"
)

// =============================================================================
// GitHub Models
// https://docs.github.com/en/github-models
//
// GitHub Models exposes hosted models behind an OpenAI-compatible API; ids
// are prefixed with the publisher.
// =============================================================================

const (
	ModelGitHubGPT4o        = "openai/gpt-4o"
	ModelGitHubGPT4oMini    = "openai/gpt-4o-mini"
	ModelGitHubGPT41        = "openai/gpt-4.1"
	ModelGitHubLlama33_70B  = "meta/llama-3.3-70b-instruct"
	ModelGitHubMistralSmall = "mistral-ai/mistral-small-2503"
)

// =============================================================================
// Convergence defaults
// =============================================================================

const (
	// DefaultMaxRounds bounds feedback/revision rounds when neither the
	// session inputs nor the template policy set a budget.
	DefaultMaxRounds = 4

	// DefaultScoreThreshold is the score the Collaborator must award, with
	// ready=true, for the loop to stop with StopThresholdMet. Scores use a
	// 1-10 scale by convention.
	DefaultScoreThreshold = 8.5

	// DefaultSchemaRetries is how many times a malformed Collaborator
	// response is regenerated before the session fails. Total attempts are
	// DefaultSchemaRetries + 1.
	DefaultSchemaRetries = 2
)
