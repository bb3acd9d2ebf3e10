package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicle-cli/chronicle/internal/storage"
)

// runChronicle executes the root command against an isolated config dir,
// resetting flag state first so tests stay independent.
func runChronicle(t *testing.T, dir, stdinText string, args ...string) (string, error) {
	t.Helper()

	addUseEditor = false
	addTags = ""
	addPeople = ""
	weekFrom, weekTo = "", ""
	exportAll, exportSplit = false, false
	exportFrom, exportTo = "", ""
	statsCategory, statsFrom, statsTo = "", "", ""
	aiFrom, aiTo = "", ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	stdin = strings.NewReader(stdinText)
	rootCmd.SetArgs(append([]string{"--config-dir", dir}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestInitCreatesDirLogAndConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")

	out, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Chronicle initialized at "+dir)

	assert.FileExists(t, filepath.Join(dir, "chronicle.log"))
	assert.FileExists(t, filepath.Join(dir, "config.toml"))
}

func TestAddWithoutInitFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")

	_, err := runChronicle(t, dir, "Hello.\n", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chronicle init")
}

func TestAddAppendsEntryWithTagsAndPeople(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)

	out, err := runChronicle(t, dir, "Paired with Alice on the parser.\n",
		"add", "--tags", "work, go", "--people", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "What's on your mind?")
	assert.Contains(t, out, "added.")

	entries, err := storage.ReadAll(filepath.Join(dir, "chronicle.log"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Paired with Alice on the parser.", entries[0].Body)
	assert.Equal(t, []string{"work", "go"}, entries[0].Tags)
	assert.Equal(t, []string{"Alice"}, entries[0].People)
	assert.Equal(t, "entry", entries[0].Type)
}

func TestValidateCleanAndBrokenLogs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)
	_, err = runChronicle(t, dir, "All good.\n", "add")
	require.NoError(t, err)

	out, err := runChronicle(t, dir, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Chronicle log is valid.")

	logPath := filepath.Join(dir, "chronicle.log")
	require.NoError(t, os.WriteFile(logPath,
		[]byte("@entry e1 2026-01-01T10:00 entry\nnever closed\n"), 0o600))

	out, err = runChronicle(t, dir, "", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "Found 1 error(s):")
	assert.Contains(t, out, "unclosed @entry at end of file")

	require.NoError(t, os.WriteFile(logPath,
		[]byte("@entry e1 2026-01-01T10:00 entry\nfirst\n@entry e2 2026-01-02T10:00 entry\nsecond\n@end\n"), 0o600))

	out, err = runChronicle(t, dir, "", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "without closing @end")
}

func TestWeekWritesBriefFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)
	_, err = runChronicle(t, dir, "Quiet week.\n", "add")
	require.NoError(t, err)

	out, err := runChronicle(t, dir, "", "week", "--from", "2026-01-05", "--to", "2026-01-11")
	require.NoError(t, err)
	assert.Contains(t, out, "# Weekly Brief: 2026-01-05 to 2026-01-11")

	wantPath := filepath.Join(dir, "exports", "weekly", "weekly-2026-02.md")
	assert.FileExists(t, wantPath)
	assert.Contains(t, out, "Saved to "+wantPath)
}

func TestExportMdAllAndSplit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)
	_, err = runChronicle(t, dir, "Something worth keeping.\n", "add")
	require.NoError(t, err)

	out, err := runChronicle(t, dir, "", "export", "md", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "---\n")
	assert.Contains(t, out, "Something worth keeping.")

	out, err = runChronicle(t, dir, "", "export", "md", "--all", "--split")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 files to ")

	files, err := os.ReadDir(filepath.Join(dir, "exports", "md"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestExportStory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)
	_, err = runChronicle(t, dir, "A memorable day.\n", "add")
	require.NoError(t, err)

	out, err := runChronicle(t, dir, "", "export", "story")
	require.NoError(t, err)
	assert.Contains(t, out, "# My Chronicle")
	assert.Contains(t, out, "A memorable day.")
	assert.Contains(t, out, "## Appendix: Entry Index")
}

func TestStatsWithoutProcessedIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)
	_, err = runChronicle(t, dir, "Unprocessed.\n", "add")
	require.NoError(t, err)

	out, err := runChronicle(t, dir, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No processed entries found. Run 'chronicle process' first.")
}

func TestAddKeySavesToConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	t.Setenv("GEMINI_API_KEY", "")

	orig := readPassword
	readPassword = func() ([]byte, error) { return []byte("gm-test-key"), nil }
	defer func() { readPassword = orig }()

	out, err := runChronicle(t, dir, "", "add-key")
	require.NoError(t, err)
	assert.Contains(t, out, "API key saved to ")
	assert.Contains(t, out, "currently disabled")

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `api_key = "gm-test-key"`)
}

func TestAIDisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)

	_, err = runChronicle(t, dir, "", "process")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI features are disabled")

	_, err = runChronicle(t, dir, "", "ai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI features are disabled")
}

func TestSyncSetupSavesSaltForNonGistBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	t.Setenv("CHRONICLE_SYNC_SALT", "")
	t.Setenv("CHRONICLE_GIST_ID", "")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)

	configPath := filepath.Join(dir, "config.toml")
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	text := strings.Replace(string(data), `# backend = "gist"            # gist, s3 or redis`,
		`backend = "redis"`, 1)
	require.NoError(t, os.WriteFile(configPath, []byte(text), 0o600))

	out, err := runChronicle(t, dir, "", "sync", "setup")
	require.NoError(t, err)
	assert.Contains(t, out, "Sync settings saved to "+configPath)

	data, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Regexp(t, `salt = "[0-9a-f]{32}"`, string(data))
}

func TestSyncPullWithoutSetupFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chronicle")
	t.Setenv("CHRONICLE_SYNC_SALT", "")
	t.Setenv("CHRONICLE_GIST_ID", "")
	t.Setenv("GITHUB_TOKEN", "")
	_, err := runChronicle(t, dir, "", "init")
	require.NoError(t, err)

	_, err = runChronicle(t, dir, "", "sync", "pull")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync setup")
}

func TestGuidePrints(t *testing.T) {
	out, err := runChronicle(t, t.TempDir(), "", "guide")
	require.NoError(t, err)
	assert.Contains(t, out, "Chronicle CLI - Quick Guide")
	assert.Contains(t, out, "chronicle sync push")
}
