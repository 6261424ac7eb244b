package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyshelf/internal/config"
	"studyshelf/internal/domain"
)

func sampleCatalog() domain.Catalog {
	return domain.Catalog{Root: "/study", Courses: []domain.Course{
		{Name: "EconA", Resources: []domain.Resource{
			{Kind: domain.KindDocument, Name: "intro.pdf", Address: "/study/EconA/intro.pdf"},
			{Kind: domain.KindVideo, Name: "lecture", Address: "https://video.example/1"},
		}},
		{Name: "EconB", Resources: []domain.Resource{
			{Kind: domain.KindVideo, Name: "week1", Address: "https://video.example/2"},
		}},
	}}
}

func newSession() *Session {
	session := NewSession(config.DefaultConfig())
	session.SetCatalog("/study", sampleCatalog(), nil)
	return session
}

func TestSession_ZoomClamps(t *testing.T) {
	session := newSession()

	for i := 0; i < 40; i++ {
		session.ZoomIn()
	}
	assert.Equal(t, MaxZoom, session.Zoom)
	assert.Equal(t, 300, session.ZoomPercent())

	for i := 0; i < 40; i++ {
		session.ZoomOut()
	}
	assert.Equal(t, MinZoom, session.Zoom)

	session.ResetZoom()
	session.ZoomIn()
	assert.Equal(t, 110, session.ZoomPercent())
}

func TestSession_ResizeClamps(t *testing.T) {
	session := newSession()

	assert.Equal(t, 85.0, session.Resize(100))
	assert.Equal(t, 15.0, session.Resize(-200))
	assert.Equal(t, 20.0, session.Resize(5))

	session.ResetSplit()
	assert.Equal(t, DefaultSplit, session.Split)

	left, right := session.PaneWidths(101)
	assert.Equal(t, 50, left)
	assert.Equal(t, 50, right)
}

func TestSession_OpenCourseResetsView(t *testing.T) {
	session := newSession()
	session.ZoomIn()
	session.Resize(20)

	require.True(t, session.OpenCourse(1))

	assert.Equal(t, PageStudy, session.Page)
	assert.Equal(t, "EconB", session.CurrentCourse().Name)
	assert.Equal(t, 1.0, session.Zoom)
	assert.Equal(t, DefaultSplit, session.Split)
	assert.Nil(t, session.ActiveResource())
	assert.False(t, session.OpenCourse(5))
}

func TestSession_SelectResource(t *testing.T) {
	session := newSession()
	require.True(t, session.OpenCourse(0))

	resource, ok := session.SelectResource(0)
	require.True(t, ok)
	assert.Equal(t, domain.KindDocument, resource.Kind)
	require.NotNil(t, session.Document)
	assert.Equal(t, "intro.pdf", session.Document.Name)
	assert.Nil(t, session.ActiveVideo())

	resource, ok = session.SelectResource(1)
	require.True(t, ok)
	assert.Equal(t, "lecture", resource.Name)
	assert.Equal(t, "lecture", session.ActiveVideo().Name)
	assert.Equal(t, "intro.pdf", session.Document.Name, "document pane keeps the last document")

	_, ok = session.SelectResource(9)
	assert.False(t, ok)
}

func TestSession_BackToHomeRestoresCursor(t *testing.T) {
	session := newSession()
	require.True(t, session.OpenCourse(1))
	session.SelectResource(0)

	session.BackToHome()

	assert.Equal(t, PageHome, session.Page)
	assert.Equal(t, 1, session.Cursor)
	assert.Nil(t, session.CurrentCourse())
	assert.Nil(t, session.Document)
}

func TestSession_MoveCursorStaysInRange(t *testing.T) {
	session := newSession()

	session.MoveCursor(-3)
	assert.Equal(t, 0, session.Cursor)
	session.MoveCursor(10)
	assert.Equal(t, 1, session.Cursor)

	session.OpenCourse(0)
	session.MoveCursor(10)
	assert.Equal(t, 1, session.Cursor)
}

func TestSummarize(t *testing.T) {
	course := domain.Course{Name: "Big"}
	for i := 0; i < 7; i++ {
		kind := domain.KindVideo
		if i%3 == 0 {
			kind = domain.KindDocument
		}
		course.Resources = append(course.Resources, domain.Resource{Kind: kind})
	}

	summary := Summarize(course)

	assert.Equal(t, "Big", summary.Name)
	assert.Len(t, summary.Preview, PreviewSize)
	assert.Equal(t, 2, summary.Remaining)
	assert.Equal(t, 4, summary.Videos)
	assert.Equal(t, 3, summary.Documents)
}
