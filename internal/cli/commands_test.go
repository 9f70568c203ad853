package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
	"github.com/RichardEWillis/pi-label-inventory/internal/testutil"
)

// runCLI executes the root command with args and returns stdout.
// The user config directory is pointed at an empty temp dir so a real
// linv.yaml never leaks into a test.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func sampleInventory(t *testing.T) string {
	t.Helper()
	return testutil.WriteInventory(t, "inv.csv", testutil.SampleRecords())
}

func readRecords(t *testing.T, path string) []inventory.Record {
	t.Helper()
	s := inventory.New()
	_, err := s.Load(path)
	require.NoError(t, err)
	return s.Records()
}

func TestListGolden(t *testing.T) {
	out, err := runCLI(t, "list", "-f", sampleInventory(t))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_text", []byte(out))
}

func TestListJSON(t *testing.T) {
	path := sampleInventory(t)
	out, err := runCLI(t, "list", "-f", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ListResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, path, resp.Data.File)
	assert.Equal(t, 3, resp.Data.Count)
	assert.InDelta(t, 50.5, resp.Data.TotalWeight, 1e-9)
	assert.Equal(t, testutil.SampleRecords(), resp.Data.Records)
}

func TestListEmpty(t *testing.T) {
	path := testutil.WriteFile(t, "empty.csv", "")
	out, err := runCLI(t, "list", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "No Records\n", out)
}

func TestListMissingFile(t *testing.T) {
	out, err := runCLI(t, "list", "-f", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeNotFound+"]")
}

func TestListMalformed(t *testing.T) {
	path := testutil.WriteFile(t, "bad.csv", "1, A, 10\ngarbage\n")
	out, err := runCLI(t, "list", "-f", path, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, ErrCodeMalformed, resp.Error.Code)
	assert.Equal(t, map[string]any{"path": path, "line": float64(2)}, resp.Error.Details)
}

func TestListFileFromConfig(t *testing.T) {
	path := sampleInventory(t)
	cfgPath := testutil.WriteFile(t, "linv.yaml", "inventory: "+path+"\n")

	out, err := runCLI(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "desc: Winter coats")
}

func TestBadConfig(t *testing.T) {
	cfgPath := testutil.WriteFile(t, "linv.yaml", "labels:\n  sheet:\n    rows: 0\n")
	out, err := runCLI(t, "list", "--config", cfgPath, "-f", sampleInventory(t))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeConfig)
}

func TestShow(t *testing.T) {
	out, err := runCLI(t, "show", "2", "-f", sampleInventory(t))
	require.NoError(t, err)
	assert.Equal(t, "[001] sn = 002 weight = 30 desc: Books\n", out)
}

func TestShowUnknown(t *testing.T) {
	_, err := runCLI(t, "show", "9", "-f", sampleInventory(t))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestShowInvalidSerial(t *testing.T) {
	out, err := runCLI(t, "show", "two", "-f", sampleInventory(t))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeInvalidSerial)
}

func TestAdd(t *testing.T) {
	path := sampleInventory(t)
	out, err := runCLI(t, "add", "-f", path, "--weight", "4", "--desc", "Desk lamp")
	require.NoError(t, err)
	assert.Equal(t, "Added sn[004] weight[4] [Desk lamp]\n", out)

	records := readRecords(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, inventory.Record{Serial: 4, Description: "Desk lamp", Weight: "4"}, records[3])
}

func TestAdd_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.csv")
	_, err := runCLI(t, "add", "-f", path, "--weight", "1", "--desc", "First box")
	require.NoError(t, err)
	assert.Equal(t, "1, First box, 1\n", testutil.ReadFile(t, path))
}

func TestAdd_ExplicitSerial(t *testing.T) {
	path := sampleInventory(t)
	_, err := runCLI(t, "add", "-f", path, "--serial", "40", "--weight", "1", "--desc", "Rug")
	require.NoError(t, err)
	assert.Equal(t, 40, readRecords(t, path)[3].Serial)
}

func TestAdd_DuplicateSerial(t *testing.T) {
	path := sampleInventory(t)
	before := testutil.ReadFile(t, path)

	out, err := runCLI(t, "add", "-f", path, "--serial", "2", "--weight", "1", "--desc", "Rug")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeDuplicate)
	assert.Equal(t, before, testutil.ReadFile(t, path))
}

func TestAdd_RequiresFlags(t *testing.T) {
	_, err := runCLI(t, "add", "-f", sampleInventory(t), "--weight", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "desc")
}

func TestAdd_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.db")
	_, err := runCLI(t, "add", "-f", path, "--weight", "2", "--desc", "Box")
	require.NoError(t, err)
	_, err = runCLI(t, "add", "-f", path, "--weight", "3", "--desc", "Crate")
	require.NoError(t, err)

	out, err := runCLI(t, "list", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[001] sn = 002 weight = 3 desc: Crate")
}

func TestEdit(t *testing.T) {
	path := sampleInventory(t)
	out, err := runCLI(t, "edit", "2", "-f", path, "--desc", "Paperbacks")
	require.NoError(t, err)
	assert.Equal(t, "Updated sn[002] weight[30] [Paperbacks]\n", out)
	assert.Equal(t, inventory.Record{Serial: 2, Description: "Paperbacks", Weight: "30"}, readRecords(t, path)[1])
}

func TestEditUnknown(t *testing.T) {
	_, err := runCLI(t, "edit", "7", "-f", sampleInventory(t), "--weight", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLabels(t *testing.T) {
	path := sampleInventory(t)
	out, err := runCLI(t, "labels", "-f", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Path   string `json:"path"`
			Labels int    `json:"labels"`
			Pages  int    `json:"pages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, filepath.Join(filepath.Dir(path), "inv.pdf"), resp.Data.Path)
	assert.Equal(t, 3, resp.Data.Labels)
	assert.Equal(t, 1, resp.Data.Pages)
	assert.FileExists(t, resp.Data.Path)
}

func TestLabels_BySerialRange(t *testing.T) {
	out := filepath.Join(t.TempDir(), "two.pdf")
	text, err := runCLI(t, "labels", "-f", sampleInventory(t), "--by", "serial", "--from", "2", "--to", "3", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, text, "2 label(s) on 1 page(s)")
	assert.FileExists(t, out)
}

func TestLabels_OutOfRange(t *testing.T) {
	out, err := runCLI(t, "labels", "-f", sampleInventory(t), "--from", "1", "--to", "5")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeOutOfRange)
}

func TestLabels_KeepExisting(t *testing.T) {
	path := sampleInventory(t)
	pdf := filepath.Join(filepath.Dir(path), "inv.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("old"), 0644))
	cfgPath := testutil.WriteFile(t, "linv.yaml", "labels:\n  overwrite_existing: false\n")

	_, err := runCLI(t, "labels", "-f", path, "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, "old", testutil.ReadFile(t, pdf))
}

func TestExport(t *testing.T) {
	path := sampleInventory(t)
	out, err := runCLI(t, "export", "-f", path)
	require.NoError(t, err)
	xlsx := filepath.Join(filepath.Dir(path), "inv.xlsx")
	assert.Equal(t, "Exported 3 record(s) to "+xlsx+"\n", out)
	assert.FileExists(t, xlsx)
}

func TestConvertRoundTrip(t *testing.T) {
	src := sampleInventory(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "inv.db")
	back := filepath.Join(dir, "back.csv")

	_, err := runCLI(t, "convert", src, db)
	require.NoError(t, err)
	out, err := runCLI(t, "convert", db, back)
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 3 record(s)")
	assert.Equal(t, testutil.ReadFile(t, src), testutil.ReadFile(t, back))
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "linv.yaml")
	out, err := runCLI(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)
	assert.Contains(t, testutil.ReadFile(t, path), "unique_serials: true")

	_, err = runCLI(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runCLI(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	cfgPath := testutil.WriteFile(t, "linv.yaml", "labels:\n  prefix: BOX\n")
	out, err := runCLI(t, "config", "show", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "prefix: BOX")
	assert.Contains(t, out, "inventory: inventory.csv")
}
