package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

func TestPickModel_PrefersOrderedList(t *testing.T) {
	available := []string{
		"models/gemini-1.5-pro",
		"models/gemini-1.5-flash",
		"models/some-experimental",
	}

	chosen, err := pickModel(available)
	require.NoError(t, err)
	assert.Equal(t, "models/gemini-1.5-flash", chosen)
}

func TestPickModel_SecondPreferenceWhenFlashMissing(t *testing.T) {
	chosen, err := pickModel([]string{"models/gemini-1.5-pro", "models/gemini-pro"})
	require.NoError(t, err)
	assert.Equal(t, "models/gemini-pro", chosen)
}

func TestPickModel_FallbackToAnyCapable(t *testing.T) {
	chosen, err := pickModel([]string{"models/some-other-model"})
	require.NoError(t, err)
	assert.Equal(t, "models/some-other-model", chosen)
}

func TestPickModel_NoneAvailable(t *testing.T) {
	_, err := pickModel(nil)
	assert.ErrorContains(t, err, "no suitable Gemini model")
}

func TestDecodeStructured_Valid(t *testing.T) {
	raw := `{"nodes":[{"id":"t.a","label":"a","group":"column"},{"id":"t.b","label":"b","group":"column"}],
		"edges":[{"source":"t.a","target":"t.b","label":"FLOWS_TO","confidence_score":5}]}`

	resp := DecodeStructured(raw)
	require.Empty(t, resp.Error)
	require.Len(t, resp.Nodes, 2)
	require.Len(t, resp.Edges, 1)
	assert.Equal(t, "FLOWS_TO", resp.Edges[0].Label)
	assert.Equal(t, 5, resp.Edges[0].ConfidenceScore)
}

func TestDecodeStructured_ErrorField(t *testing.T) {
	resp := DecodeStructured(`{"nodes":[],"edges":[],"error":"Could not extract lineage."}`)
	assert.Equal(t, "Could not extract lineage.", resp.Error)
	assert.Empty(t, resp.Nodes)
}

func TestDecodeStructured_MalformedJSON(t *testing.T) {
	resp := DecodeStructured(`{"nodes": [oops`)
	require.NotEmpty(t, resp.Error)
	assert.True(t, lineage.IsErrorText(resp.Error))
	assert.Contains(t, resp.Error, "malformed JSON")
	assert.Contains(t, resp.Error, "oops")
}

func TestDecodeStructured_TruncatesLongRawPayload(t *testing.T) {
	raw := "not json " + strings.Repeat("x", 500)
	resp := DecodeStructured(raw)
	require.NotEmpty(t, resp.Error)
	assert.Contains(t, resp.Error, "...")
	assert.Less(t, len(resp.Error), 400)
}

func TestCheckCredentials_Gemini(t *testing.T) {
	t.Setenv("LINEAGE_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	assert.Error(t, CheckCredentials())

	t.Setenv("GEMINI_API_KEY", geminiKeyPlaceholder)
	assert.Error(t, CheckCredentials())

	t.Setenv("GEMINI_API_KEY", "some-real-key")
	assert.NoError(t, CheckCredentials())
}

func TestCheckCredentials_OpenAI(t *testing.T) {
	t.Setenv("LINEAGE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	assert.Error(t, CheckCredentials())

	t.Setenv("OPENAI_API_KEY", "sk-test")
	assert.NoError(t, CheckCredentials())
}
