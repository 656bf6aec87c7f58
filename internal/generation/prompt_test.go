package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromptTemplateDefault(t *testing.T) {
	t.Parallel()

	tmpl, err := NewPromptTemplate("")
	require.NoError(t, err)
	require.NotNil(t, tmpl)
}

func TestNewPromptTemplateInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewPromptTemplate("{{.Unclosed")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuildPromptIntroduction(t *testing.T) {
	t.Parallel()

	tmpl, err := NewPromptTemplate("")
	require.NoError(t, err)

	prompt, err := BuildPrompt(tmpl, PromptParams{
		Language:       "Spanish",
		Level:          "beginner",
		Mode:           ModeIntroduction,
		ReviewWords:    []string{"gato", "perro"},
		TargetWords:    []string{"nube"},
		NativeLanguage: "English",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Spanish")
	assert.Contains(t, prompt, "beginner")
	assert.Contains(t, prompt, "naturally introduces")
	assert.Contains(t, prompt, "- gato")
	assert.Contains(t, prompt, "- perro")
	assert.Contains(t, prompt, "- nube")
	assert.Contains(t, prompt, `"translation in English"`)
	assert.Contains(t, prompt, `"passage"`, "the prompt must pin the JSON response shape")
}

func TestBuildPromptReinforcement(t *testing.T) {
	t.Parallel()

	tmpl, err := NewPromptTemplate("")
	require.NoError(t, err)

	prompt, err := BuildPrompt(tmpl, PromptParams{
		Language:       "Spanish",
		Level:          "advanced",
		Mode:           ModeReinforcement,
		ReviewWords:    []string{"gato"},
		NativeLanguage: "English",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "reinforces")
	assert.NotContains(t, prompt, "New target words",
		"an empty target list leaves no target section")
}

func TestBuildPromptCustomTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := NewPromptTemplate("Write in {{.Language}} about: {{range .TargetWords}}{{.}} {{end}}")
	require.NoError(t, err)

	prompt, err := BuildPrompt(tmpl, PromptParams{
		Language:    "French",
		TargetWords: []string{"chat", "chien"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Write in French about: chat chien ", prompt)
}

func TestBuildPromptRequiresLanguage(t *testing.T) {
	t.Parallel()

	tmpl, err := NewPromptTemplate("")
	require.NoError(t, err)

	_, err = BuildPrompt(tmpl, PromptParams{Level: "beginner"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCauseDescription(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err      error
		expected string
	}{
		{ErrInvalidCredential, "invalid credential"},
		{ErrModelNotFound, "model not found"},
		{ErrQuotaExceeded, "quota exceeded"},
		{ErrInvalidResponse, "malformed response"},
		{ErrContentBlocked, "content blocked"},
		{ErrTransientFailure, "temporary failure"},
		{ErrGenerationFailed, "generation failed"},
	}

	for _, tc := range testCases {
		if got := CauseDescription(tc.err); got != tc.expected {
			t.Errorf("CauseDescription(%v): expected %q, got %q", tc.err, tc.expected, got)
		}
	}

	assert.Equal(t, "generation failed", CauseDescription(errors.New("anything else")))
}
