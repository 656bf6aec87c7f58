package generation

import (
	"bytes"
	"fmt"
	"text/template"
)

// defaultPromptTemplate is the compiled-in passage prompt. Deployments can
// override it via llm.prompt_template_path; the override is parsed with the
// same template name and data shape.
const defaultPromptTemplate = `You are a language tutor writing a short reading passage in {{.Language}} for a learner at level {{.Level}}.

{{if eq .Mode "introduction" -}}
Write a passage that naturally introduces the new vocabulary listed below while keeping the rest of the text within the learner's known vocabulary.
{{- else -}}
Write a passage that reinforces the review vocabulary listed below through varied, natural usage.
{{- end}}

{{if .ReviewWords -}}
Review words (use as many as fit naturally):
{{range .ReviewWords}}- {{.}}
{{end}}
{{- end}}
{{if .TargetWords -}}
New target words (each must appear at least once):
{{range .TargetWords}}- {{.}}
{{end}}
{{- end}}

Respond with a single JSON object and nothing else:
{"passage": "<the passage text>", "glossary": [{"word": "<target word>", "translation": "<translation in {{.NativeLanguage}}>"}]}

The glossary must contain exactly one entry per target word listed above.`

// NewPromptTemplate parses a prompt template from source, falling back to the
// compiled-in default when source is empty.
func NewPromptTemplate(source string) (*template.Template, error) {
	if source == "" {
		source = defaultPromptTemplate
	}

	tmpl, err := template.New("passage").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	return tmpl, nil
}

// BuildPrompt renders the template with the given parameters. It is a pure
// function from params to prompt text; no provider specifics leak in here.
func BuildPrompt(tmpl *template.Template, params PromptParams) (string, error) {
	if params.Language == "" {
		return "", fmt.Errorf("%w: language cannot be empty", ErrInvalidConfig)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}
