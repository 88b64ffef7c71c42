package tracker

import (
	"cmp"
	"slices"
	"strconv"
)

// MissingField stands in for an issue key part the tracker did not return.
const MissingField = "?"

// Issue is the normalized issue record consumed by the renderer.
// Fields the tracker did not return keep their zero value: an empty
// ProjectShortName, NumberInProject 0, an empty Summary or State, nil Tags.
type Issue struct {
	ProjectShortName string
	NumberInProject  int
	Summary          string
	State            string
	Tags             []string
}

// Key formats the issue key as "{project}-{number}".
func (i Issue) Key() string {
	number := MissingField
	if i.NumberInProject > 0 {
		number = strconv.Itoa(i.NumberInProject)
	}
	return cmp.Or(i.ProjectShortName, MissingField) + "-" + number
}

// HasTags reports whether the issue carries at least one tag.
func (i Issue) HasTags() bool {
	return len(i.Tags) > 0
}

// HasTag reports whether the issue is tagged with name.
func (i Issue) HasTag(name string) bool {
	return slices.Contains(i.Tags, name)
}
