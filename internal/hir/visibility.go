package hir

// Visibility of an item relative to its defining module.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPub
	VisPubCrate
	VisPubSuper
)

func (v Visibility) IsPub() bool { return v != VisPrivate }

func (v Visibility) String() string {
	switch v {
	case VisPub:
		return "pub"
	case VisPubCrate:
		return "pub(crate)"
	case VisPubSuper:
		return "pub(super)"
	default:
		return ""
	}
}
