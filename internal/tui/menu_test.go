package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
	"github.com/RichardEWillis/pi-label-inventory/internal/session"
	"github.com/RichardEWillis/pi-label-inventory/internal/testutil"
)

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	path := testutil.WriteInventory(t, "inv.csv", testutil.SampleRecords())
	s := session.New(nil, nil)
	_, err := s.Open(path)
	require.NoError(t, err)
	return New(s), s
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// answer types text into the current prompt and submits it.
func answer(t *testing.T, m Model, text string) Model {
	t.Helper()
	require.Equal(t, statePrompt, m.state, "expected a prompt, view:\n%s", m.View())
	if text != "" {
		m = press(t, m, text)
	}
	return press(t, m, "enter")
}

func TestMenuView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, Title)
	assert.Contains(t, view, "[o] Open Inventory File")
	assert.Contains(t, view, "[p] Generate Labels")
	assert.Contains(t, view, "Record Count: 3")
}

func TestMenuEmptyStatus(t *testing.T) {
	m := New(session.New(nil, nil))
	assert.Contains(t, m.View(), "No Records")
}

func TestList(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "l")
	require.Equal(t, stateMessage, m.state)
	assert.Contains(t, m.View(), "[001] sn = 002 weight = 30 desc: Books")

	m = press(t, m, "enter")
	assert.Equal(t, stateMenu, m.state)
}

func TestListEmpty(t *testing.T) {
	m := press(t, New(session.New(nil, nil)), "l")
	assert.Contains(t, m.View(), "No Records")
}

func TestEnterSelectsHighlightedItem(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter")
	require.Equal(t, statePrompt, m.state)
	assert.Equal(t, "Open Inventory File", m.flow.title)
}

func TestExit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAddParcel(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "a")
	assert.Contains(t, m.View(), "Serial: 004")

	m = answer(t, m, "5")
	m = answer(t, m, "Desk lamp")
	assert.Contains(t, m.View(), "sn[004] weight[5] [Desk lamp] - Accept? (Y/N) [Y]")
	m = answer(t, m, "")

	require.Equal(t, stateMessage, m.state)
	assert.False(t, m.failed)
	assert.Equal(t, 4, s.Inventory.Size())
	r, err := s.Inventory.Read(3)
	require.NoError(t, err)
	assert.Equal(t, inventory.Record{Serial: 4, Description: "Desk lamp", Weight: "5"}, r)
}

func TestAddParcel_DeclineRestarts(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "a")
	m = answer(t, m, "5")
	m = answer(t, m, "Desk lamp")
	m = answer(t, m, "n")

	require.Equal(t, statePrompt, m.state)
	assert.Empty(t, m.flow.answers)
	assert.Equal(t, 3, s.Inventory.Size())
}

func TestEditParcel_KeepsDefaults(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "e")
	m = answer(t, m, "2")
	assert.Contains(t, m.View(), "Weight [30]")
	m = answer(t, m, "")
	assert.Contains(t, m.View(), "Description [Books]")
	m = answer(t, m, "Paperbacks")
	m = answer(t, m, "y")

	require.Equal(t, stateMessage, m.state)
	r, err := s.Inventory.Read(1)
	require.NoError(t, err)
	assert.Equal(t, inventory.Record{Serial: 2, Description: "Paperbacks", Weight: "30"}, r)
}

func TestEditParcel_UnknownSerial(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "e")
	m = answer(t, m, "42")

	require.Equal(t, stateMessage, m.state)
	assert.True(t, m.failed)
	assert.Contains(t, m.View(), "serial number 42 not found")
}

func TestOpen_NotFound(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "o")
	m = answer(t, m, filepath.Join(t.TempDir(), "missing.csv"))

	require.Equal(t, stateMessage, m.state)
	assert.True(t, m.failed)
	assert.Contains(t, m.View(), "File not found, nothing loaded.")
	assert.Equal(t, 0, s.Inventory.Size())
}

func TestOpen_EmptyFilename(t *testing.T) {
	m, s := newTestModel(t)
	loaded := s.Filename
	m = press(t, m, "o")
	m = answer(t, m, "")

	require.Equal(t, stateMessage, m.state)
	assert.True(t, m.failed)
	assert.Contains(t, m.View(), "No filename entered, nothing loaded.")
	assert.NotContains(t, m.View(), "save to")
	assert.Equal(t, 3, s.Inventory.Size())
	assert.Equal(t, loaded, s.Filename)
}

func TestSave_DefaultOverwritesLoaded(t *testing.T) {
	m, s := newTestModel(t)
	_, err := s.Add("2", "Rug")
	require.NoError(t, err)

	m = press(t, m, "s")
	assert.Contains(t, m.View(), "Loaded File: {"+s.Filename+"}")
	m = answer(t, m, "")

	require.Equal(t, stateMessage, m.state)
	assert.False(t, m.failed)
	assert.Contains(t, testutil.ReadFile(t, s.Filename), "4, Rug, 2\n")
}

func TestSave_NoLoadedFile(t *testing.T) {
	m := New(session.New(nil, nil))
	m = press(t, m, "s")
	m = answer(t, m, "")
	assert.True(t, m.failed)
	assert.Contains(t, m.View(), "No loaded file")
}

func TestGenerateLabels_ByIndexDefaults(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "p")
	m = answer(t, m, "")
	assert.Contains(t, m.View(), "Select Start Index for print [0]")
	m = answer(t, m, "")
	assert.Contains(t, m.View(), "Select Last Index to print [2]")
	m = answer(t, m, "")

	require.Equal(t, stateMessage, m.state, m.View())
	assert.False(t, m.failed)
	pdf := session.ReplaceExt(s.Filename, ".pdf")
	assert.Contains(t, m.View(), pdf)
	assert.FileExists(t, pdf)
}

func TestGenerateLabels_BySerial(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "p")
	m = answer(t, m, "s")
	assert.Contains(t, m.View(), "Select Starting SerialNum for print [1]")
	m = answer(t, m, "2")
	assert.Contains(t, m.View(), "Select Last SerialNum to print [3]")
	m = answer(t, m, "")

	require.Equal(t, stateMessage, m.state)
	assert.Contains(t, m.View(), "2 label(s) on 1 page(s)")
}

func TestGenerateLabels_SerialTooHigh(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "p")
	m = answer(t, m, "s")
	m = answer(t, m, "")
	m = answer(t, m, "9")

	assert.True(t, m.failed)
	assert.Contains(t, m.View(), "out of range")
}

func TestGenerateLabels_Empty(t *testing.T) {
	m := press(t, New(session.New(nil, nil)), "p")
	require.Equal(t, stateMessage, m.state)
	assert.Contains(t, m.View(), "No inventory in memory")
}

func TestGenerateLabels_AsksForFilename(t *testing.T) {
	s := session.New(nil, nil)
	_, err := s.Add("1", "Box")
	require.NoError(t, err)
	m := New(s)

	out := filepath.Join(t.TempDir(), "sheet.anything")
	m = press(t, m, "p")
	m = answer(t, m, "")
	m = answer(t, m, "")
	m = answer(t, m, "")
	assert.Contains(t, m.View(), "(PDF)")
	m = answer(t, m, out)

	require.Equal(t, stateMessage, m.state, m.View())
	assert.FileExists(t, strings.TrimSuffix(out, ".anything")+".pdf")
}

func TestEscCancelsPrompt(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "a")
	m = answer(t, m, "5")
	m = press(t, m, "esc")
	assert.Equal(t, stateMenu, m.state)
	assert.Equal(t, 3, s.Inventory.Size())
}
