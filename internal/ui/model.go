package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"studyshelf/internal/config"
	"studyshelf/internal/domain"
	"studyshelf/internal/services"
	"studyshelf/internal/state"
)

const (
	resizeStep  = 5.0
	detailLines = 4
)

type inputMode int

const (
	inputNone inputMode = iota
	inputFolder
	inputDocument
)

// ConfigSaver persists the last-used folder.
type ConfigSaver interface {
	SaveFolder(folder string) error
}

type Model struct {
	session       *state.Session
	scanner       services.Scanner
	viewer        services.Viewer
	progress      services.ProgressProvider
	store         ConfigSaver
	logger        *log.Logger
	keys          KeyMap
	showHelp      bool
	status        string
	scanning      bool
	scanSeq       int
	cancel        context.CancelFunc
	width         int
	height        int
	viewTop       int
	progressCount int64
	progressTotal int
	input         textinput.Model
	inputMode     inputMode
	suggestions   []string
}

type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func NewModel(session *state.Session, scanner services.Scanner, viewer services.Viewer) Model {
	input := textinput.New()
	input.CharLimit = 4096
	return Model{
		session:  session,
		scanner:  scanner,
		viewer:   viewer,
		progress: progressProvider(scanner),
		logger:   log.New(io.Discard),
		keys:     DefaultKeyMap(),
		status:   "Ready - press o to choose a study folder",
		input:    input,
		width:    100,
		height:   30,
	}
}

func (model Model) WithStatus(message string) Model {
	if message != "" {
		model.status = message
	}
	return model
}

func (model Model) WithStore(store ConfigSaver) Model {
	model.store = store
	return model
}

func (model Model) WithLogger(logger *log.Logger) Model {
	if logger != nil {
		model.logger = logger
	}
	return model
}

func (model Model) ConfigSnapshot() config.Config {
	return model.session.Snapshot()
}

func (model Model) Init() tea.Cmd {
	root := model.session.RootPath
	if root == "" {
		return nil
	}
	return func() tea.Msg {
		return startScanMsg{path: root}
	}
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.input.Width = maxInt(typed.Width-12, 10)
		model.ensureCursorVisible()
		return model, nil
	case startScanMsg:
		return model.beginScan(typed.path, typed.persist)
	case scanResultMsg:
		if typed.seq != model.scanSeq {
			return model, nil
		}
		model.scanning = false
		model.cancel = nil
		if typed.err != nil {
			if errors.Is(typed.err, context.Canceled) {
				model.status = "Scan cancelled"
				return model, nil
			}
			model.status = fmt.Sprintf("Scan error: %v", typed.err)
			return model, nil
		}
		result := typed.result
		model.session.SetCatalog(result.RootPath, result.Catalog, result.Diagnostics)
		model.viewTop = 0
		model.ensureCursorVisible()
		model.status = scanSummary(result)
		if typed.persist {
			return model, model.saveConfigCmd()
		}
		return model, nil
	case scanProgressMsg:
		if typed.seq != model.scanSeq {
			return model, nil
		}
		if typed.progress.ErrMessage != "" {
			model.status = fmt.Sprintf("Scan warning: %s", typed.progress.ErrMessage)
			return model, listenProgress(typed.seq, typed.channel)
		}
		if typed.progress.Completed {
			return model, nil
		}
		model.progressCount = typed.progress.Scanned
		model.progressTotal = typed.progress.Total
		if typed.progress.Current != "" {
			model.status = fmt.Sprintf("Scanning... %d/%d folders (%s)", typed.progress.Scanned, typed.progress.Total, filepath.Base(typed.progress.Current))
		}
		return model, listenProgress(typed.seq, typed.channel)
	case openResultMsg:
		if typed.err != nil {
			model.status = fmt.Sprintf("Viewer error: %v", typed.err)
			return model, nil
		}
		model.status = fmt.Sprintf("Opened %s (%s)", typed.name, typed.result.Target)
		return model, nil
	case configSavedMsg:
		if typed.err != nil {
			model.logger.Warn("cannot save config", "err", typed.err)
			return model, nil
		}
		model.logger.Debug("config saved", "path", typed.path)
		return model, nil
	default:
		if model.inputMode != inputNone {
			var cmd tea.Cmd
			model.input, cmd = model.input.Update(msg)
			return model, cmd
		}
		return model, nil
	}
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.inputMode != inputNone {
		return model.handleInput(msg)
	}
	switch {
	case key.Matches(msg, model.keys.Quit):
		model = model.cancelScan("")
		return model, tea.Quit
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case key.Matches(msg, model.keys.Up):
		model.session.MoveCursor(-1)
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.Down):
		model.session.MoveCursor(1)
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.Enter):
		return model.activate()
	case key.Matches(msg, model.keys.Back):
		if model.showHelp {
			model.showHelp = false
			return model, nil
		}
		if model.session.Page == state.PageStudy {
			model.session.BackToHome()
			model.ensureCursorVisible()
			model.status = "Courses"
		}
		return model, nil
	case key.Matches(msg, model.keys.Folder):
		return model.beginInput(inputFolder, model.session.RootPath), nil
	case key.Matches(msg, model.keys.Document):
		start := model.session.RootPath
		if course := model.session.CurrentCourse(); course != nil {
			start = course.RootPath
		}
		return model.beginInput(inputDocument, start), nil
	case key.Matches(msg, model.keys.Rescan):
		if model.session.RootPath == "" {
			model.status = "No folder selected - press o"
			return model, nil
		}
		return model.beginScan(model.session.RootPath, false)
	case key.Matches(msg, model.keys.ZoomIn):
		model.session.ZoomIn()
		model.status = fmt.Sprintf("Zoom %d%%", model.session.ZoomPercent())
		return model, nil
	case key.Matches(msg, model.keys.ZoomOut):
		model.session.ZoomOut()
		model.status = fmt.Sprintf("Zoom %d%%", model.session.ZoomPercent())
		return model, nil
	case key.Matches(msg, model.keys.ZoomReset):
		model.session.ResetZoom()
		model.status = "Zoom 100%"
		return model, nil
	case key.Matches(msg, model.keys.Narrow):
		model.session.Resize(-resizeStep)
		return model, nil
	case key.Matches(msg, model.keys.Widen):
		model.session.Resize(resizeStep)
		return model, nil
	case key.Matches(msg, model.keys.SplitReset):
		model.session.ResetSplit()
		return model, nil
	default:
		return model, nil
	}
}

// activate opens the course under the cursor, or dispatches the resource
// under the cursor to the viewer on the study page.
func (model Model) activate() (tea.Model, tea.Cmd) {
	if model.session.Page == state.PageHome {
		if !model.session.OpenCourse(model.session.Cursor) {
			return model, nil
		}
		model.viewTop = 0
		course := model.session.CurrentCourse()
		model.status = fmt.Sprintf("%s - %d resources", course.Name, len(course.Resources))
		return model, nil
	}
	resource, ok := model.session.SelectResource(model.session.Cursor)
	if !ok {
		return model, nil
	}
	model.status = fmt.Sprintf("Opening %s...", resource.Name)
	return model, model.openCmd(resource)
}

func (model Model) beginInput(mode inputMode, value string) Model {
	model.inputMode = mode
	model.suggestions = nil
	model.input.Prompt = inputPrompt(mode)
	if value != "" && value[len(value)-1] != filepath.Separator {
		value += string(filepath.Separator)
	}
	model.input.SetValue(value)
	model.input.CursorEnd()
	model.input.Focus()
	model.status = "Type a path - tab completes, enter confirms, esc cancels"
	return model
}

func (model Model) endInput() Model {
	model.inputMode = inputNone
	model.suggestions = nil
	model.input.Blur()
	model.input.SetValue("")
	return model
}

func (model Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Cancel):
		model = model.endInput()
		model.status = "Selection cancelled"
		return model, nil
	case key.Matches(msg, model.keys.Complete):
		filter := dirsOnly
		if model.inputMode == inputDocument {
			filter = dirsAndPDFs
		}
		completed, suggestions := completePath(model.input.Value(), filter)
		model.input.SetValue(completed)
		model.input.CursorEnd()
		model.suggestions = suggestions
		return model, nil
	case msg.Type == tea.KeyEnter:
		return model.submitInput()
	}
	var cmd tea.Cmd
	model.input, cmd = model.input.Update(msg)
	model.suggestions = nil
	return model, cmd
}

func (model Model) submitInput() (tea.Model, tea.Cmd) {
	value := model.input.Value()
	mode := model.inputMode
	switch mode {
	case inputFolder:
		path, err := resolveFolder(value)
		if err != nil {
			model.status = fmt.Sprintf("Folder error: %v", err)
			return model, nil
		}
		model = model.endInput()
		return model.beginScan(path, true)
	case inputDocument:
		path, err := resolveDocument(value)
		if err != nil {
			model.status = fmt.Sprintf("Document error: %v", err)
			return model, nil
		}
		model = model.endInput()
		resource := domain.Resource{
			Kind:       domain.KindDocument,
			Name:       filepath.Base(path),
			Address:    path,
			SourcePath: path,
		}
		model.session.OpenDocument(resource)
		model.status = fmt.Sprintf("Opening %s...", resource.Name)
		return model, model.openCmd(resource)
	}
	return model.endInput(), nil
}

func (model Model) beginScan(path string, persist bool) (Model, tea.Cmd) {
	model = model.cancelScan("")
	var stale <-chan services.ScanProgress
	if model.progress != nil {
		stale = model.progress.Progress()
	}
	ctx, cancel := context.WithCancel(context.Background())
	model.cancel = cancel
	model.scanning = true
	model.scanSeq++
	model.progressCount = 0
	model.progressTotal = 0
	model.session.RootPath = path
	model.status = fmt.Sprintf("Scanning... %s", path)
	model.logger.Info("scan requested", "path", path, "persist", persist)
	return model, tea.Batch(model.scanCmd(ctx, model.scanSeq, path, persist), model.progressCmd(model.scanSeq, stale))
}

func (model Model) scanCmd(ctx context.Context, seq int, path string, persist bool) tea.Cmd {
	request := services.ScanRequest{
		RootPath:   path,
		SkipHidden: model.session.Prefs.SkipHidden,
	}

	return func() tea.Msg {
		result, err := model.scanner.Scan(ctx, request)
		return scanResultMsg{seq: seq, persist: persist, result: result, err: err}
	}
}

// progressCmd waits until the scan started as seq publishes its channel.
// stale is the channel of the previous scan, which may still be the one the
// scanner exposes when this command first runs.
func (model Model) progressCmd(seq int, stale <-chan services.ScanProgress) tea.Cmd {
	if model.progress == nil {
		return nil
	}
	provider := model.progress
	return func() tea.Msg {
		for {
			channel := provider.Progress()
			if channel == nil || channel == stale {
				time.Sleep(20 * time.Millisecond)
				continue
			}
			return readProgress(seq, channel)
		}
	}
}

func listenProgress(seq int, channel <-chan services.ScanProgress) tea.Cmd {
	if channel == nil {
		return nil
	}
	return func() tea.Msg {
		return readProgress(seq, channel)
	}
}

func readProgress(seq int, channel <-chan services.ScanProgress) tea.Msg {
	progress, ok := <-channel
	if !ok {
		progress = services.ScanProgress{Completed: true}
	}
	return scanProgressMsg{seq: seq, channel: channel, progress: progress}
}

func (model Model) openCmd(resource domain.Resource) tea.Cmd {
	viewer := model.viewer
	return func() tea.Msg {
		if viewer == nil {
			return openResultMsg{name: resource.Name, err: errors.New("no viewer configured")}
		}
		result, err := viewer.Open(context.Background(), services.OpenRequest{Resource: resource})
		return openResultMsg{name: resource.Name, result: result, err: err}
	}
}

func (model Model) saveConfigCmd() tea.Cmd {
	if model.store == nil {
		return nil
	}
	store := model.store
	folder := model.session.RootPath
	return func() tea.Msg {
		return configSavedMsg{path: folder, err: store.SaveFolder(folder)}
	}
}

func (model Model) cancelScan(message string) Model {
	if model.cancel != nil {
		model.cancel()
		model.cancel = nil
	}
	if message != "" {
		model.status = message
	}
	model.scanning = false
	model.progressCount = 0
	return model
}

func progressProvider(scanner services.Scanner) services.ProgressProvider {
	provider, _ := scanner.(services.ProgressProvider)
	return provider
}

func scanSummary(result services.ScanResult) string {
	catalog := result.Catalog
	summary := fmt.Sprintf("Found %d courses, %d resources (%s)", len(catalog.Courses), catalog.ResourceCount(), result.Duration.Round(time.Millisecond))
	if len(result.Diagnostics) > 0 {
		summary += fmt.Sprintf(" - warning: %d entries skipped", len(result.Diagnostics))
	}
	return summary
}

func inputPrompt(mode inputMode) string {
	if mode == inputDocument {
		return "PDF: "
	}
	return "Folder: "
}

// ensureCursorVisible keeps the selected card or tab inside the body.
func (model *Model) ensureCursorVisible() {
	count := model.itemCount()
	if count == 0 {
		model.viewTop = 0
		return
	}
	cursor := model.session.Cursor
	if cursor < model.viewTop {
		model.viewTop = cursor
	}
	for model.viewTop < cursor && !model.fits(model.viewTop, cursor) {
		model.viewTop++
	}
	if model.viewTop >= count {
		model.viewTop = count - 1
	}
}

func (model *Model) itemCount() int {
	if model.session.Page == state.PageStudy {
		if course := model.session.CurrentCourse(); course != nil {
			return len(course.Resources)
		}
		return 0
	}
	return len(model.session.Catalog.Courses)
}

// fits reports whether items top..last can all be drawn in the body.
func (model *Model) fits(top, last int) bool {
	budget := model.bodyHeight()
	if model.session.Page == state.PageStudy {
		budget = model.studyListHeight()
	}
	used := 0
	for index := top; index <= last; index++ {
		used += model.itemHeight(index)
		if used > budget {
			return false
		}
	}
	return true
}

func (model *Model) itemHeight(index int) int {
	if model.session.Page == state.PageStudy {
		return 1
	}
	return cardHeight(state.Summarize(model.session.Catalog.Courses[index]))
}

// studyListHeight is the number of resource tabs shown above the video
// detail block.
func (model *Model) studyListHeight() int {
	return maxInt(model.bodyHeight()-3-1-detailLines, 1)
}

func (model *Model) bodyHeight() int {
	height := model.height - 5
	if model.inputMode != inputNone {
		height -= 2
	}
	if height < 3 {
		return 3
	}
	return height
}
