package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	jd := "We need AWS and Kubernetes experience, strong Java, and great communication. AWS preferred."

	keywords := ExtractKeywords(jd)
	assert.Contains(t, keywords, "AWS")
	assert.Contains(t, keywords, "Kubernetes")
	assert.Contains(t, keywords, "Java")
	assert.Contains(t, keywords, "communication")

	// Duplicates collapse
	count := 0
	for _, k := range keywords {
		if k == "AWS" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractKeywordsEmptyDescription(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
}

func TestExtractRequirements(t *testing.T) {
	req := ExtractRequirements("Candidates must have 5+ years of experience and a Bachelor degree in Computer Science.")
	assert.Equal(t, "5+ years of experience", req.Experience)
	assert.Equal(t, "Relevant degree preferred", req.Education)

	none := ExtractRequirements("Just be nice.")
	assert.Empty(t, none.Experience)
	assert.Empty(t, none.Education)
}

func TestMatchKeywordsAgainstTemplate(t *testing.T) {
	base := BaseTemplate()

	matched, missing, score := MatchKeywords(base, []string{"AWS", "Kubernetes", "COBOL"})
	assert.Contains(t, matched, "AWS")
	assert.Contains(t, matched, "Kubernetes")
	assert.Equal(t, []string{"COBOL"}, missing)
	assert.Equal(t, 67, score)
}

func TestMatchKeywordsNoKeywords(t *testing.T) {
	base := BaseTemplate()

	matched, missing, score := MatchKeywords(base, nil)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
	assert.Zero(t, score)
}

func TestFallbackCustomization(t *testing.T) {
	base := BaseTemplate()

	result := FallbackCustomization(base, "Senior role using AWS, Docker and PostgreSQL.", "Acme", "Senior Engineer")

	assert.Equal(t, "Acme", result.ExtractedInfo.CompanyName)
	assert.Equal(t, "Senior Engineer", result.ExtractedInfo.JobTitle)
	assert.Equal(t, base.Summary, result.CustomizedData.Summary)
	assert.Contains(t, result.KeywordsMatched, "AWS")
	require.NotEmpty(t, result.CustomizationLog)
	assert.Equal(t, "fallback", result.CustomizationLog[0].Section)
	assert.Equal(t, result.ATSScore, result.MatchPercentage)
}

func TestFallbackCustomizationDefaultsExtractedInfo(t *testing.T) {
	base := BaseTemplate()

	result := FallbackCustomization(base, "any role", "", "")
	assert.Equal(t, "Target Company", result.ExtractedInfo.CompanyName)
	assert.Equal(t, "Applied Position", result.ExtractedInfo.JobTitle)
}

func TestMergeKeywords(t *testing.T) {
	merged := MergeKeywords([]string{"Go", "AWS"}, []string{"aws", "Terraform"})
	assert.Equal(t, []string{"Go", "AWS", "Terraform"}, merged)
}

func TestHistoryWindow(t *testing.T) {
	history := []ChatMessage{
		{Type: "user", Content: "one"},
		{Type: "assistant", Content: "two"},
		{Type: "user", Content: "three"},
	}

	assert.Len(t, HistoryWindow(history, 2), 2)
	assert.Equal(t, "two", HistoryWindow(history, 2)[0].Content)
	assert.Len(t, HistoryWindow(history, 10), 3)
}

func TestRenderResumeHTML(t *testing.T) {
	base := BaseTemplate()

	html, err := RenderResumeHTML(base)
	require.NoError(t, err)
	assert.Contains(t, html, base.Name)
	assert.Contains(t, html, "Wayfair")
	assert.Contains(t, html, "Summary")
}
