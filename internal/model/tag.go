package model

import "fmt"

// Tag is a named label. Tags with the same name are the same tag.
type Tag struct {
	name string
}

// NewTag returns a tag named name.
func NewTag(name string) (Tag, error) {
	if name == "" {
		return Tag{}, fmt.Errorf("%w: tag name", ErrEmptyString)
	}
	return Tag{name: name}, nil
}

func (t Tag) Name() string { return t.name }

func (t Tag) String() string { return "#" + t.name }
