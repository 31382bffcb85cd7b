package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoOutputPath_DerivesBasenameAndExtension(t *testing.T) {
	got := autoOutputPath("/home/user/project/src", "json", 1700000000)
	assert.Equal(t, ".aid/src.1700000000.json", got)
}

func TestAutoOutputPath_StripsFileExtension(t *testing.T) {
	got := autoOutputPath("pkg/widget.go", "text", 42)
	assert.Equal(t, ".aid/widget.42.txt", got)
}

func TestAutoOutputPath_FallsBackForRootPath(t *testing.T) {
	got := autoOutputPath("/", "xml", 99)
	assert.Equal(t, ".aid/output.99.xml", got)
}

func TestAutoOutputPath_MarkdownAndJSONL(t *testing.T) {
	assert.Equal(t, ".aid/a.1.md", autoOutputPath("a", "md", 1))
	assert.Equal(t, ".aid/a.1.jsonl", autoOutputPath("a", "jsonl", 1))
}
