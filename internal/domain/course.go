package domain

import (
	"path/filepath"

	"github.com/google/uuid"
)

// courseNamespace scopes course ids so they never collide with other
// name-based UUIDs derived from the same path.
var courseNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("studyshelf:course"))

// Resource is a single learning asset found inside a course directory.
// Address is a URL for videos and a filesystem path for documents;
// SourcePath is the file that produced the record.
type Resource struct {
	Kind       ResourceKind `json:"kind"`
	Name       string       `json:"name"`
	Address    string       `json:"address"`
	SourcePath string       `json:"sourcePath"`
}

type Course struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	RootPath  string     `json:"rootPath"`
	Resources []Resource `json:"resources"`
}

// Catalog is the result of one scan. It is never mutated after it is
// returned; a rescan replaces it.
type Catalog struct {
	Root    string   `json:"root"`
	Courses []Course `json:"courses"`
}

// CourseID derives a stable identifier from the course directory path.
func CourseID(path string) string {
	return uuid.NewSHA1(courseNamespace, []byte(filepath.Clean(path))).String()
}

func NewCourse(path string, resources []Resource) Course {
	return Course{
		ID:        CourseID(path),
		Name:      filepath.Base(path),
		RootPath:  path,
		Resources: resources,
	}
}

func (course Course) VideoCount() int {
	return course.countKind(KindVideo)
}

func (course Course) DocumentCount() int {
	return course.countKind(KindDocument)
}

func (course Course) countKind(kind ResourceKind) int {
	count := 0
	for _, resource := range course.Resources {
		if resource.Kind == kind {
			count++
		}
	}
	return count
}

func (catalog Catalog) Empty() bool {
	return len(catalog.Courses) == 0
}

func (catalog Catalog) ResourceCount() int {
	total := 0
	for _, course := range catalog.Courses {
		total += len(course.Resources)
	}
	return total
}
