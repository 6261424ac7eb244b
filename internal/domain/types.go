package domain

type ResourceKind string

const (
	KindVideo    ResourceKind = "video"
	KindDocument ResourceKind = "document"
)

func (kind ResourceKind) Icon() string {
	if kind == KindVideo {
		return "🎥"
	}
	return "📄"
}
