package formatter

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences for stripping before golden comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes from a string so golden files
// are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// goldenTest compares got against a golden file in testdata/<name>.golden.
// Set GOLDEN_UPDATE=1 to regenerate golden files.
func goldenTest(t *testing.T, name, got string) {
	t.Helper()

	goldenDir := filepath.Join("testdata")
	goldenPath := filepath.Join(goldenDir, name+".golden")

	stripped := stripANSI(got)

	if os.Getenv("GOLDEN_UPDATE") == "1" {
		require.NoError(t, os.MkdirAll(goldenDir, 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(stripped), 0644))
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Fatalf("golden file %s does not exist; run with GOLDEN_UPDATE=1 to create it", goldenPath)
	}
	require.NoError(t, err)

	assert.Equal(t, string(expected), stripped,
		"output does not match golden file %s; run with GOLDEN_UPDATE=1 to update", goldenPath)
}

func TestRenderTree_Golden(t *testing.T) {
	items := []TreeItem{
		{Title: "Design Phase", Seq: 1, Level: 1, IsLast: false, Status: "mixed", Detail: "45,000"},
		{Title: "Survey", Seq: 3, Level: 2, IsLast: false, Status: "completed", Detail: "15,000"},
		{Title: "Detailed Drawings", Seq: 4, Level: 2, IsLast: false, Status: "in_progress", Detail: "30,000"},
		{Title: "Structural Review", Seq: 7, Level: 3, IsLast: true, Status: "not_started"},
		{Title: "Construction Phase", Seq: 2, Level: 1, IsLast: true, Status: "delayed", Detail: "120,000"},
	}

	goldenTest(t, "wbs_tree", RenderTree(items))
}

func TestRenderAlignedTable_Golden(t *testing.T) {
	headers := []string{"DESCRIPTION", "CATEGORY", "PLANNED", "ACTUAL", "VARIANCE"}
	rows := [][]string{
		{"Asphalt supply", "materials", "82,000", "85,400", "-3,400"},
		{"Roller hire", "equipment", "12,000", "11,250", "+750"},
		{"Site crew", "labour", "45,000", "45,000", "0"},
	}

	goldenTest(t, "cost_table", RenderAlignedTable(headers, rows, 2, 3, 4))
}
