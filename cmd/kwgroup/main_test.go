package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kwtaxonomy/internal/keywords"
	"kwtaxonomy/internal/models"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LEXICON_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGroupCmd_File(t *testing.T) {
	path := writeFile(t, "records.json", `[
		{"keyword":"petlas 205/55 r16 fiyat","search_volume":500},
		{"keyword":"koltuk takımları","search_volume":300},
		{"keyword":"koltuk takimlari","search_volume":100}
	]`)

	out, err := runCLI(t, "", "group", "--file", path)
	require.NoError(t, err)

	var result keywords.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3, result.InputCount)
	assert.Equal(t, 2, result.UniqueCount)
	assert.Equal(t, models.GroupBrands, result.Groups[0].ID)
	assert.Equal(t, models.GroupOther, result.Groups[len(result.Groups)-1].ID)
}

func TestGroupCmd_StdinSummary(t *testing.T) {
	out, err := runCLI(t, `{"records":[{"keyword":"lastik nedir","search_volume":70}]}`,
		"group", "--file", "-", "--summary", "--compact")
	require.NoError(t, err)

	var summary models.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.TotalKeywords)
	assert.Equal(t, int64(70), summary.TotalVolume)
	require.Len(t, summary.Groups, 1)
	assert.Equal(t, models.GroupQuestion, summary.Groups[0].ID)
}

func TestGroupCmd_CustomLexicons(t *testing.T) {
	lex := writeFile(t, "lexicons.yaml", "mode: replace\nbrands:\n  - name: koltuk\n")
	records := writeFile(t, "records.json", `[{"keyword":"koltuk takımı","search_volume":5}]`)

	out, err := runCLI(t, "", "--lexicons", lex, "group", "-f", records)
	require.NoError(t, err)

	var result keywords.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Groups, 1)
	assert.Equal(t, "Koltuk", result.Groups[0].Subgroups[0].Name)
}

func TestGroupCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		in   string
	}{
		{"missing file flag", []string{"group"}, ""},
		{"invalid record", []string{"group", "-f", "-"}, `[{"keyword":""}]`},
		{"malformed json", []string{"group", "-f", "-"}, `[{"keyword":`},
		{"import needs project or name", []string{"import", "-f", "-"}, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.in, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestReadRecords_Empty(t *testing.T) {
	records, err := readRecords("-", strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
