package generation

import "context"

// InstructionMode selects how the passage prompt frames the target words.
type InstructionMode string

// Possible instruction modes. Introduction passages weave new target words
// into otherwise-known text; reinforcement passages lean on the review list.
const (
	ModeIntroduction  InstructionMode = "introduction"
	ModeReinforcement InstructionMode = "reinforcement"
)

// PromptParams carries everything the prompt template needs. It is a plain
// value so prompt construction stays a pure function.
type PromptParams struct {
	// Language is the target language of the passage.
	Language string

	// Level is the learner's proficiency level (e.g. CEFR "B1").
	Level string

	// Mode selects the instruction framing.
	Mode InstructionMode

	// ReviewWords are due words the passage should reinforce.
	ReviewWords []string

	// TargetWords are deliberately introduced words the passage should
	// gloss for the learner.
	TargetWords []string

	// NativeLanguage is the language glossary translations are written in.
	NativeLanguage string
}

// GlossaryEntry is one glossed target word in a generated passage.
type GlossaryEntry struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// PassageResult is a successfully generated passage with its glossary.
type PassageResult struct {
	Passage  string         `json:"passage"`
	Glossary []GlossaryEntry `json:"glossary"`
}

// Generator defines the interface for generating reading passages from word
// selections. This interface serves as a boundary between the application
// core and external AI/LLM services.
type Generator interface {
	// GeneratePassage creates a passage exercising the given word selection.
	// It returns the passage with its glossary or a typed error (see
	// errors.go) classifying why generation failed.
	GeneratePassage(ctx context.Context, params PromptParams) (*PassageResult, error)
}
