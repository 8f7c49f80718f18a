package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	for _, key := range []string{"evaluate-dimension-system", "evaluate-dimension-user"} {
		prompt, err := Get("scoring.json", key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, prompt)
	}

	_, err := Get("scoring.json", "does-not-exist")
	assert.Error(t, err)

	_, err = Get("missing.json", "anything")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Evaluate {{.Dimension}} against {{.JobText}}", map[string]string{
		"Dimension": "Technical Proficiency",
		"JobText":   "backend role",
	})
	assert.Equal(t, "Evaluate Technical Proficiency against backend role", out)
}

func TestPromptsContainPlaceholders(t *testing.T) {
	user := MustGet("skills.json", "match-skills-user")
	assert.True(t, strings.Contains(user, "{{.ResumeText}}"))
	assert.True(t, strings.Contains(user, "{{.JobText}}"))

	system := MustGet("summary.json", "executive-summary-system")
	assert.True(t, strings.Contains(system, "{{.MaxChars}}"))

	rewrite := MustGet("rewrite.json", "optimize-resume-user")
	assert.True(t, strings.Contains(rewrite, "{{.ResumeText}}"))
	assert.True(t, strings.Contains(rewrite, "{{.JobText}}"))
}
