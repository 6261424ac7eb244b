package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyshelf/internal/config"
	"studyshelf/internal/domain"
	"studyshelf/internal/services"
	"studyshelf/internal/state"
)

type memoryStore struct {
	folders []string
}

func (store *memoryStore) SaveFolder(folder string) error {
	store.folders = append(store.folders, folder)
	return nil
}

func sampleCatalog() domain.Catalog {
	return domain.Catalog{Courses: []domain.Course{
		{Name: "EconA", RootPath: "/study/EconA", Resources: []domain.Resource{
			{Kind: domain.KindDocument, Name: "intro.pdf", Address: "/study/EconA/intro.pdf", SourcePath: "/study/EconA/intro.pdf"},
			{Kind: domain.KindVideo, Name: "lecture", Address: "https://video.example/1", SourcePath: "/study/EconA/lecture.url"},
		}},
	}}
}

func keyRunes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func update(t *testing.T, model Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := model.Update(msg)
	typed, ok := next.(Model)
	require.True(t, ok)
	return typed, cmd
}

// scanNow runs the model's scanner synchronously and delivers the result.
func scanNow(t *testing.T, model Model, persist bool) (Model, tea.Cmd) {
	t.Helper()
	result, err := model.scanner.Scan(context.Background(), services.ScanRequest{RootPath: model.session.RootPath})
	require.NoError(t, err)
	return update(t, model, scanResultMsg{seq: model.scanSeq, persist: persist, result: result})
}

func TestModel_BrowseAndDispatch(t *testing.T) {
	session := state.NewSession(config.Config{FolderPath: "/study"})
	viewer := services.NewMockViewer()
	model := NewModel(session, services.NewMockScanner(sampleCatalog()), viewer)

	initCmd := model.Init()
	require.NotNil(t, initCmd)
	model, _ = update(t, model, initCmd())
	assert.True(t, model.scanning)
	assert.Equal(t, 1, model.scanSeq)

	model, _ = scanNow(t, model, false)
	assert.False(t, model.scanning)
	require.Len(t, session.Catalog.Courses, 1)
	assert.Contains(t, model.View(), "EconA")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, state.PageStudy, session.Page)
	assert.Contains(t, model.View(), "zoom 100%")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	model, _ = update(t, model, cmd())

	requests := viewer.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "lecture", requests[0].Resource.Name)
	assert.Contains(t, model.status, "https://video.example/1")
	assert.Equal(t, "lecture", session.ActiveVideo().Name)

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, state.PageHome, session.Page)
}

func TestModel_DocumentDispatchUsesFileURL(t *testing.T) {
	session := state.NewSession(config.Config{FolderPath: "/study"})
	viewer := services.NewMockViewer()
	model := NewModel(session, services.NewMockScanner(sampleCatalog()), viewer)
	model, _ = update(t, model, startScanMsg{path: "/study"})
	model, _ = scanNow(t, model, false)

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(openResultMsg)
	require.True(t, ok)

	require.NoError(t, msg.err)
	assert.Equal(t, "file:///study/EconA/intro.pdf", msg.result.Target)
	require.NotNil(t, session.Document)
	assert.Equal(t, "intro.pdf", session.Document.Name)
}

func TestModel_ZoomAndResizeKeys(t *testing.T) {
	session := state.NewSession(config.DefaultConfig())
	session.SetCatalog("/study", sampleCatalog(), nil)
	model := NewModel(session, services.NewMockScanner(sampleCatalog()), services.NewMockViewer())
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	model, _ = update(t, model, keyRunes("+"))
	model, _ = update(t, model, keyRunes("+"))
	assert.Equal(t, 120, session.ZoomPercent())
	model, _ = update(t, model, keyRunes("0"))
	assert.Equal(t, 100, session.ZoomPercent())

	for i := 0; i < 20; i++ {
		model, _ = update(t, model, keyRunes("]"))
	}
	assert.Equal(t, state.MaxSplit, session.Split)
	model, _ = update(t, model, keyRunes("="))
	assert.Equal(t, state.DefaultSplit, session.Split)
	assert.Contains(t, model.View(), "Split: 50/50")
}

func TestModel_StaleScanResultIgnored(t *testing.T) {
	session := state.NewSession(config.Config{FolderPath: "/study"})
	model := NewModel(session, services.NewMockScanner(sampleCatalog()), services.NewMockViewer())
	model, _ = update(t, model, startScanMsg{path: "/study"})
	model, _ = update(t, model, startScanMsg{path: "/study"})

	model, _ = update(t, model, scanResultMsg{seq: 1, result: services.ScanResult{Catalog: sampleCatalog()}})

	assert.True(t, model.scanning)
	assert.True(t, session.Catalog.Empty())

	status := model.status
	model, cmd := update(t, model, scanProgressMsg{seq: 1, progress: services.ScanProgress{Scanned: 1, Total: 3, Current: "/study/Old"}})
	assert.Nil(t, cmd)
	assert.Equal(t, status, model.status)
}

func TestModel_ProgressFollowsRescan(t *testing.T) {
	oldRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(oldRoot, "Old"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(oldRoot, "Old", "a.pdf"), []byte("pdf"), 0o644))
	newRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(newRoot, "New"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(newRoot, "New", "b.pdf"), []byte("pdf"), 0o644))

	scanner := services.NewFSScanner()
	_, err := scanner.Scan(context.Background(), services.ScanRequest{RootPath: oldRoot})
	require.NoError(t, err)
	stale := scanner.Progress()

	model := NewModel(state.NewSession(config.DefaultConfig()), scanner, services.NewMockViewer())
	cmd := model.progressCmd(2, stale)
	require.NotNil(t, cmd)
	received := make(chan tea.Msg, 1)
	go func() { received <- cmd() }()

	_, err = scanner.Scan(context.Background(), services.ScanRequest{RootPath: newRoot})
	require.NoError(t, err)

	select {
	case msg := <-received:
		progress, ok := msg.(scanProgressMsg)
		require.True(t, ok)
		assert.Equal(t, 2, progress.seq)
		assert.False(t, progress.progress.Completed)
		assert.Equal(t, filepath.Join(newRoot, "New"), progress.progress.Current)
	case <-time.After(2 * time.Second):
		t.Fatal("progress from the new scan never arrived")
	}
}

func TestModel_ChooseFolderScansAndPersists(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Stats"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Stats", "ch1.pdf"), []byte("pdf"), 0o644))

	store := &memoryStore{}
	session := state.NewSession(config.DefaultConfig())
	model := NewModel(session, services.NewFSScanner(), services.NewMockViewer()).WithStore(store)

	model, _ = update(t, model, keyRunes("o"))
	require.Equal(t, inputFolder, model.inputMode)
	model.input.SetValue(root)
	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, inputNone, model.inputMode)
	assert.Equal(t, root, session.RootPath)

	model, cmd = scanNow(t, model, true)
	require.Len(t, session.Catalog.Courses, 1)
	assert.Equal(t, "Stats", session.Catalog.Courses[0].Name)
	require.NotNil(t, cmd)
	model, _ = update(t, model, cmd())

	assert.Equal(t, []string{root}, store.folders)
}

func TestModel_ChooseFolderRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(file, []byte("pdf"), 0o644))
	model := NewModel(state.NewSession(config.DefaultConfig()), services.NewFSScanner(), services.NewMockViewer())

	model, _ = update(t, model, keyRunes("o"))
	model.input.SetValue(file)
	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, inputFolder, model.inputMode)
	assert.Contains(t, model.status, "not a folder")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, inputNone, model.inputMode)
}

func TestModel_PickDocument(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "handout.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("pdf"), 0o644))
	session := state.NewSession(config.DefaultConfig())
	viewer := services.NewMockViewer()
	model := NewModel(session, services.NewFSScanner(), viewer)

	model, _ = update(t, model, keyRunes("f"))
	model.input.SetValue(filepath.Join(dir, "notes.txt"))
	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, model.status, "Document error")

	model.input.SetValue(pdf)
	model, cmd = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	model, _ = update(t, model, cmd())

	require.NotNil(t, session.Document)
	assert.Equal(t, pdf, session.Document.Address)
	requests := viewer.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, domain.KindDocument, requests[0].Resource.Kind)
}

func TestModel_EmptyCatalogShowsGuidance(t *testing.T) {
	session := state.NewSession(config.DefaultConfig())
	model := NewModel(session, services.NewMockScanner(domain.Catalog{}), services.NewMockViewer())
	assert.Contains(t, model.View(), "No study folder selected")

	session.SetCatalog("/study", domain.Catalog{}, nil)
	assert.Contains(t, model.View(), "No courses found")
}
