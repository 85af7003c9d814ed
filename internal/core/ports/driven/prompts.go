package driven

// PromptStore provides access to LLM prompt templates. Implementations may
// load prompts from files or fall back to embedded defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name. If the prompt
	// is not customised, implementations should return a sensible default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptAnswerSystem frames the grounded answering task. It has no
	// format placeholders.
	PromptAnswerSystem = "answer_system"

	// PromptGroundingHeader precedes the grounding bundle and instructs
	// the model that knowledge-source content takes precedence over web
	// results. It has no format placeholders.
	PromptGroundingHeader = "grounding_header"
)
