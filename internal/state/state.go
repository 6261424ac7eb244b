package state

import (
	"math"

	"studyshelf/internal/config"
	"studyshelf/internal/domain"
)

type Page int

const (
	PageHome Page = iota
	PageStudy
)

const (
	MinZoom      = 0.5
	MaxZoom      = 3.0
	ZoomStep     = 0.1
	MinSplit     = 15.0
	MaxSplit     = 85.0
	DefaultSplit = 50.0
	PreviewSize  = 5
)

type Preferences struct {
	Theme      string
	SkipHidden bool
	Workers    int
}

// Session holds everything the presenter needs between key presses.
type Session struct {
	RootPath    string
	Catalog     domain.Catalog
	Diagnostics []domain.Diagnostic
	Page        Page
	Cursor      int
	Course      int
	Tab         int
	Document    *domain.Resource
	Zoom        float64
	Split       float64
	Prefs       Preferences
}

func NewSession(cfg config.Config) *Session {
	return &Session{
		RootPath: cfg.FolderPath,
		Catalog:  domain.Catalog{Root: cfg.FolderPath},
		Page:     PageHome,
		Course:   -1,
		Tab:      -1,
		Zoom:     1,
		Split:    DefaultSplit,
		Prefs: Preferences{
			Theme:      cfg.Theme,
			SkipHidden: cfg.SkipHidden,
			Workers:    cfg.Workers,
		},
	}
}

// SetCatalog replaces the catalog wholesale and returns to the course list.
func (session *Session) SetCatalog(root string, catalog domain.Catalog, diagnostics []domain.Diagnostic) {
	session.RootPath = root
	session.Catalog = catalog
	session.Diagnostics = diagnostics
	session.Page = PageHome
	session.Course = -1
	session.Tab = -1
	session.Document = nil
	session.Cursor = clampInt(session.Cursor, 0, maxInt(len(catalog.Courses)-1, 0))
}

func (session *Session) MoveCursor(delta int) {
	if session.Page == PageStudy {
		course := session.CurrentCourse()
		if course == nil || len(course.Resources) == 0 {
			return
		}
		session.Cursor = clampInt(session.Cursor+delta, 0, len(course.Resources)-1)
		return
	}
	session.Cursor = clampInt(session.Cursor+delta, 0, maxInt(len(session.Catalog.Courses)-1, 0))
}

// OpenCourse switches to the study page with zoom and split reset.
func (session *Session) OpenCourse(index int) bool {
	if index < 0 || index >= len(session.Catalog.Courses) {
		return false
	}
	session.Course = index
	session.Page = PageStudy
	session.Tab = -1
	session.Cursor = 0
	session.Document = nil
	session.ResetZoom()
	session.ResetSplit()
	return true
}

func (session *Session) BackToHome() {
	if session.Page != PageStudy {
		return
	}
	session.Page = PageHome
	session.Cursor = maxInt(session.Course, 0)
	session.Course = -1
	session.Tab = -1
	session.Document = nil
}

func (session *Session) CurrentCourse() *domain.Course {
	if session.Course < 0 || session.Course >= len(session.Catalog.Courses) {
		return nil
	}
	return &session.Catalog.Courses[session.Course]
}

// SelectResource marks a tab active and returns the resource to dispatch.
func (session *Session) SelectResource(index int) (domain.Resource, bool) {
	course := session.CurrentCourse()
	if course == nil || index < 0 || index >= len(course.Resources) {
		return domain.Resource{}, false
	}
	session.Tab = index
	session.Cursor = index
	resource := course.Resources[index]
	if resource.Kind == domain.KindDocument {
		session.Document = &resource
	}
	return resource, true
}

// ActiveResource is the resource of the selected tab, if any.
func (session *Session) ActiveResource() *domain.Resource {
	course := session.CurrentCourse()
	if course == nil || session.Tab < 0 || session.Tab >= len(course.Resources) {
		return nil
	}
	return &course.Resources[session.Tab]
}

// ActiveVideo is the selected video, shown in the left pane.
func (session *Session) ActiveVideo() *domain.Resource {
	resource := session.ActiveResource()
	if resource == nil || resource.Kind != domain.KindVideo {
		return nil
	}
	return resource
}

// OpenDocument shows a document chosen outside the catalog in the right pane.
func (session *Session) OpenDocument(resource domain.Resource) {
	session.Document = &resource
}

func (session *Session) ZoomIn() float64 {
	session.Zoom = roundZoom(math.Min(session.Zoom+ZoomStep, MaxZoom))
	return session.Zoom
}

func (session *Session) ZoomOut() float64 {
	session.Zoom = roundZoom(math.Max(session.Zoom-ZoomStep, MinZoom))
	return session.Zoom
}

func (session *Session) ResetZoom() {
	session.Zoom = 1
}

func (session *Session) ZoomPercent() int {
	return int(math.Round(session.Zoom * 100))
}

// Resize moves the divider by delta percent of the total width.
func (session *Session) Resize(delta float64) float64 {
	session.Split = math.Max(MinSplit, math.Min(MaxSplit, session.Split+delta))
	return session.Split
}

func (session *Session) ResetSplit() {
	session.Split = DefaultSplit
}

// PaneWidths divides total columns between the panes; the divider takes one.
func (session *Session) PaneWidths(total int) (int, int) {
	usable := maxInt(total-1, 2)
	left := int(math.Round(float64(usable) * session.Split / 100))
	left = clampInt(left, 1, usable-1)
	return left, usable - left
}

type CourseSummary struct {
	Name      string
	Preview   []domain.Resource
	Remaining int
	Videos    int
	Documents int
}

func Summarize(course domain.Course) CourseSummary {
	preview := course.Resources
	if len(preview) > PreviewSize {
		preview = preview[:PreviewSize]
	}
	return CourseSummary{
		Name:      course.Name,
		Preview:   preview,
		Remaining: len(course.Resources) - len(preview),
		Videos:    course.VideoCount(),
		Documents: course.DocumentCount(),
	}
}

func (session *Session) Snapshot() config.Config {
	return config.Config{
		FolderPath: session.RootPath,
		Theme:      session.Prefs.Theme,
		Workers:    session.Prefs.Workers,
		SkipHidden: session.Prefs.SkipHidden,
	}
}

func roundZoom(value float64) float64 {
	return math.Round(value*10) / 10
}

func clampInt(value, min, max int) int {
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
