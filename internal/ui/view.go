package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"studyshelf/internal/domain"
	"studyshelf/internal/services"
	"studyshelf/internal/state"
)

type uiStyles struct {
	headerStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	statusStyle   lipgloss.Style
	warnStyle     lipgloss.Style
	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	panelBorder   lipgloss.Style
	cardBorder    lipgloss.Style
	activeCard    lipgloss.Style
}

func stylesFor(model Model) uiStyles {
	if strings.ToLower(model.session.Prefs.Theme) == "light" {
		return uiStyles{
			headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			warnStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("90")).Bold(true),
			selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
			panelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			cardBorder:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
			activeCard:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("90")).Padding(0, 1),
		}
	}
	return uiStyles{
		headerStyle:   lipgloss.NewStyle().Bold(true),
		mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
		warnStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		panelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		cardBorder:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		activeCard:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
	}
}

func (model Model) View() string {
	styles := stylesFor(model)
	if model.showHelp {
		return renderHelpView(model, styles)
	}

	parts := []string{renderHeader(model, styles)}
	if model.inputMode != inputNone {
		parts = append(parts, renderInput(model, styles))
	}
	if model.session.Page == state.PageStudy {
		parts = append(parts, renderStudyPage(model, styles))
	} else {
		parts = append(parts, renderHomePage(model, styles))
	}
	parts = append(parts, renderFooter(model, styles))
	return strings.Join(parts, "\n")
}

func renderHeader(model Model, styles uiStyles) string {
	title := styles.headerStyle.Render("studyshelf")
	location := "no folder"
	if model.session.RootPath != "" {
		location = breadcrumbs(model.session.RootPath)
	}
	if course := model.session.CurrentCourse(); course != nil {
		location += " › " + course.Name
	}
	status := "IDLE"
	if model.scanning {
		status = "SCANNING"
	}
	return padLine(title+"  "+location, styles.statusStyle.Render(status), model.width)
}

func renderInput(model Model, styles uiStyles) string {
	suggestions := ""
	if len(model.suggestions) > 0 {
		names := make([]string, 0, len(model.suggestions))
		for _, suggestion := range model.suggestions {
			names = append(names, filepath.Base(suggestion))
		}
		suggestions = trimStatus(strings.Join(names, "  "), model.width)
	}
	return model.input.View() + "\n" + styles.mutedStyle.Render(suggestions)
}

func renderHomePage(model Model, styles uiStyles) string {
	height := model.bodyHeight()
	courses := model.session.Catalog.Courses
	if len(courses) == 0 {
		return padBlock(renderEmptyState(model, styles), height)
	}

	width := maxInt(model.width-4, 20)
	cards := []string{}
	used := 0
	for index := model.viewTop; index < len(courses); index++ {
		summary := state.Summarize(courses[index])
		cardLines := cardHeight(summary)
		if used+cardLines > height && len(cards) > 0 {
			break
		}
		style := styles.cardBorder
		if index == model.session.Cursor {
			style = styles.activeCard
		}
		cards = append(cards, style.Width(width).Render(renderCard(summary, styles)))
		used += cardLines
	}
	return padBlock(strings.Join(cards, "\n"), height)
}

func renderCard(summary state.CourseSummary, styles uiStyles) string {
	lines := []string{styles.headerStyle.Render(summary.Name)}
	for _, resource := range summary.Preview {
		lines = append(lines, fmt.Sprintf("  %s %s", resource.Kind.Icon(), resource.Name))
	}
	if summary.Remaining > 0 {
		lines = append(lines, styles.mutedStyle.Render(fmt.Sprintf("  ... and %d more", summary.Remaining)))
	}
	lines = append(lines, styles.mutedStyle.Render(fmt.Sprintf("🎥 %d videos   📄 %d documents", summary.Videos, summary.Documents)))
	return strings.Join(lines, "\n")
}

// cardHeight counts the rendered lines of a card, border included.
func cardHeight(summary state.CourseSummary) int {
	height := 4 + len(summary.Preview)
	if summary.Remaining > 0 {
		height++
	}
	return height
}

func renderEmptyState(model Model, styles uiStyles) string {
	if model.scanning {
		return "Scanning folder..."
	}
	if model.session.RootPath == "" {
		return strings.Join([]string{
			styles.headerStyle.Render("No study folder selected"),
			"Press o to choose a folder.",
		}, "\n")
	}
	lines := []string{
		styles.headerStyle.Render("📂 No courses found"),
		"Each subfolder of the chosen folder is one course.",
		"Supported files: .url .txt .link (web videos), .pdf and linked .lnk (documents).",
	}
	for _, diag := range model.session.Diagnostics {
		if diag.Severity == domain.SeverityError {
			lines = append(lines, "", styles.warnStyle.Render(diag.Message))
			break
		}
	}
	return strings.Join(lines, "\n")
}

func renderStudyPage(model Model, styles uiStyles) string {
	height := model.bodyHeight()
	course := model.session.CurrentCourse()
	if course == nil {
		return padBlock("No course selected", height)
	}
	leftWidth, rightWidth := model.session.PaneWidths(model.width)
	left := renderResourcePane(model, styles, course, leftWidth, height)
	right := renderDocumentPane(model, styles, rightWidth, height)
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render(strings.Repeat("│\n", height-1) + "│")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

func renderResourcePane(model Model, styles uiStyles, course *domain.Course, width, height int) string {
	contentWidth := maxInt(width-4, 6)
	lines := []string{padLine(
		styles.headerStyle.Render(course.Name),
		styles.mutedStyle.Render(fmt.Sprintf("zoom %d%%", model.session.ZoomPercent())),
		contentWidth,
	)}

	detail := renderVideoDetail(model, styles, contentWidth)
	listHeight := model.studyListHeight()
	start := clamp(model.viewTop, 0, maxInt(len(course.Resources)-1, 0))
	end := minInt(start+listHeight, len(course.Resources))
	for index := start; index < end; index++ {
		resource := course.Resources[index]
		marker := "  "
		if index == model.session.Tab {
			marker = styles.selectedStyle.Render("▸ ")
		}
		line := trimStatus(fmt.Sprintf("%s %s", resource.Kind.Icon(), resource.Name), contentWidth)
		if index == model.session.Cursor {
			line = styles.cursorStyle.Render(line)
		}
		lines = append(lines, marker+line)
	}
	for len(lines) < listHeight+1 {
		lines = append(lines, "")
	}
	lines = append(lines, "", detail)

	content := lipgloss.NewStyle().Width(contentWidth).Height(maxInt(height-2, 1)).Render(strings.Join(lines, "\n"))
	return styles.panelBorder.Width(width - 2).Render(content)
}

// renderVideoDetail wraps narrower as zoom grows, the way a scaled page
// fits fewer columns.
func renderVideoDetail(model Model, styles uiStyles, width int) string {
	video := model.session.ActiveVideo()
	if video == nil {
		return styles.mutedStyle.Render("Select a 🎥 resource and press enter to watch it.")
	}
	wrap := clamp(int(float64(width)/model.session.Zoom), minInt(10, width), width)
	text := strings.Join([]string{
		styles.headerStyle.Render("🎥 " + video.Name),
		video.Address,
	}, "\n")
	return lipgloss.NewStyle().Width(wrap).MaxHeight(detailLines).Render(text)
}

func renderDocumentPane(model Model, styles uiStyles, width, height int) string {
	contentWidth := maxInt(width-4, 6)
	var lines []string
	if document := model.session.Document; document != nil {
		lines = []string{
			styles.headerStyle.Render("📄 " + document.Name),
			"",
			styles.headerStyle.Render("Path"),
			document.Address,
			"",
			styles.headerStyle.Render("Viewer URL"),
			services.DocumentURL(document.Address),
		}
		if document.SourcePath != "" && document.SourcePath != document.Address {
			lines = append(lines, "", styles.headerStyle.Render("Shortcut"), document.SourcePath)
		}
	} else {
		lines = []string{
			styles.headerStyle.Render("📁 No document open"),
			"Select a 📄 resource, or press f to pick a PDF file.",
		}
	}
	content := lipgloss.NewStyle().Width(contentWidth).Height(maxInt(height-2, 1)).Render(strings.Join(lines, "\n"))
	return styles.panelBorder.Width(width - 2).Render(content)
}

func renderFooter(model Model, styles uiStyles) string {
	statusLine := trimStatus(model.status, model.width)
	if model.scanning {
		statusLine = fmt.Sprintf("%s  %s", statusLine, progressBar(model.progressCount, model.progressTotal, 18))
	}
	statusStyle := styles.mutedStyle
	lower := strings.ToLower(model.status)
	if strings.Contains(lower, "error") || strings.Contains(lower, "warning") {
		statusStyle = styles.warnStyle
	}
	statusLine = statusStyle.Render(statusLine)

	catalog := model.session.Catalog
	left := fmt.Sprintf("Courses: %d  Resources: %d", len(catalog.Courses), catalog.ResourceCount())
	if len(model.session.Diagnostics) > 0 {
		left += fmt.Sprintf("  Skipped: %d", len(model.session.Diagnostics))
	}
	keys := "↑/↓ move  enter open  o folder  f pdf  r rescan  ? help  q quit"
	if model.session.Page == state.PageStudy {
		left += fmt.Sprintf("  Zoom: %d%%  Split: %.0f/%.0f", model.session.ZoomPercent(), model.session.Split, 100-model.session.Split)
		keys = "enter view  esc back  +/- zoom  0 reset  [/] resize  = 50/50  f pdf  q quit"
	}
	if model.inputMode != inputNone {
		keys = "tab complete  enter confirm  esc cancel"
	}
	footerLine := padLine(left, keys, model.width)
	return strings.Join([]string{statusLine, styles.mutedStyle.Render(footerLine)}, "\n")
}

func renderHelpView(model Model, styles uiStyles) string {
	bindings := []key.Binding{
		model.keys.Up,
		model.keys.Down,
		model.keys.Enter,
		model.keys.Back,
		model.keys.Folder,
		model.keys.Document,
		model.keys.Rescan,
		model.keys.ZoomIn,
		model.keys.ZoomOut,
		model.keys.ZoomReset,
		model.keys.Narrow,
		model.keys.Widen,
		model.keys.SplitReset,
		model.keys.Complete,
		model.keys.Help,
		model.keys.Quit,
	}

	lines := []string{styles.headerStyle.Render("studyshelf help"), ""}
	lines = append(lines, styles.headerStyle.Render("Folder layout"))
	lines = append(lines, "every subfolder of the study folder is a course", "files inside a course become resources")
	lines = append(lines, "", styles.headerStyle.Render("Resources"))
	lines = append(lines, "🎥 .url shortcuts, .txt and .link files with a web link", "📄 .pdf files and .lnk links pointing at a pdf")
	lines = append(lines, "", styles.headerStyle.Render("Keys"))
	for _, binding := range bindings {
		keysLabel := strings.Join(binding.Keys(), ", ")
		lines = append(lines, fmt.Sprintf("%-18s %s", keysLabel, binding.Help().Desc))
	}
	lines = append(lines, "", "Press ? to close help")
	content := strings.Join(lines, "\n")
	width := model.width
	if width <= 0 {
		width = 80
	}
	return styles.panelBorder.Width(maxInt(width-2, 10)).Render(content)
}

func breadcrumbs(path string) string {
	path = filepath.Clean(path)
	if path == "." {
		return "."
	}
	parts := strings.Split(path, string(filepath.Separator))
	if len(parts) == 0 {
		return path
	}
	if parts[0] == "" {
		parts[0] = string(filepath.Separator)
	}
	return strings.Join(parts, " › ")
}

func padLine(left, right string, width int) string {
	if width <= 0 {
		return left
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", space) + right
}

func padBlock(content string, height int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func progressBar(count int64, total int, width int) string {
	if width <= 0 {
		return ""
	}
	pos := int(count % int64(width))
	if total > 0 {
		pos = int(count * int64(width) / int64(total))
	}
	pos = clamp(pos, 0, width)
	filled := strings.Repeat("█", pos)
	gap := strings.Repeat("░", width-pos)
	return fmt.Sprintf("[%s%s]", filled, gap)
}

// trimStatus fits message into width-4 terminal cells, cutting on a
// character boundary.
func trimStatus(message string, width int) string {
	if width <= 0 {
		return message
	}
	max := width - 4
	if max <= 0 || runewidth.StringWidth(message) <= max {
		return message
	}
	return runewidth.Truncate(message, max, "...")
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
