package fence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTree(t *testing.T) {
	entries := []PathEntry{
		{RelPath: "src/main.go"},
		{RelPath: "src/util/helpers.go"},
		{RelPath: "README.md"},
	}

	got := BuildTree("project", entries)

	want := "project/\n" +
		"├── src/\n" +
		"│   ├── util/\n" +
		"│   │   └── helpers.go\n" +
		"│   └── main.go\n" +
		"└── README.md\n"
	assert.Equal(t, want, got)
}

func TestBuildTreeDirectoriesFirstCaseInsensitive(t *testing.T) {
	entries := []PathEntry{
		{RelPath: "zeta.txt"},
		{RelPath: "Alpha.txt"},
		{RelPath: "beta/inner.txt"},
	}

	got := BuildTree("root", entries)

	want := "root/\n" +
		"├── beta/\n" +
		"│   └── inner.txt\n" +
		"├── Alpha.txt\n" +
		"└── zeta.txt\n"
	assert.Equal(t, want, got)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Equal(t, "root/\n", BuildTree("root", nil))
}
