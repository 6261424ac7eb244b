package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseID_StablePerPath(t *testing.T) {
	first := CourseID("/study/EconA")
	second := CourseID("/study/EconA/")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, CourseID("/study/EconB"))
	assert.Len(t, first, 36)
}

func TestNewCourse_UsesBaseName(t *testing.T) {
	course := NewCourse("/study/Econometrics 101", nil)

	assert.Equal(t, "Econometrics 101", course.Name)
	assert.Equal(t, "/study/Econometrics 101", course.RootPath)
	assert.Equal(t, CourseID("/study/Econometrics 101"), course.ID)
}

func TestCourse_KindCounts(t *testing.T) {
	course := Course{Resources: []Resource{
		{Kind: KindVideo, Name: "a"},
		{Kind: KindDocument, Name: "b.pdf"},
		{Kind: KindVideo, Name: "c"},
	}}

	assert.Equal(t, 2, course.VideoCount())
	assert.Equal(t, 1, course.DocumentCount())

	catalog := Catalog{Courses: []Course{course, {Resources: []Resource{{Kind: KindDocument}}}}}
	assert.False(t, catalog.Empty())
	assert.Equal(t, 4, catalog.ResourceCount())
	assert.True(t, Catalog{}.Empty())
}
