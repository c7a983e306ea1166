// Package metadata reads the name and description out of a skill
// document's header block:
//
//	---
//	name: PDF Processing
//	description: Extract text and tables from PDF files
//	---
package metadata

import (
	"regexp"
	"strings"
)

// UnknownName is returned when a document has no usable name field.
const UnknownName = "Unknown"

var (
	headerPattern      = regexp.MustCompile(`(?s)^---\n(.*?)\n---`)
	namePattern        = regexp.MustCompile(`name:\s*(.+)`)
	descriptionPattern = regexp.MustCompile(`description:\s*(.+)`)
)

// Parse returns the header's name and description. It never fails: a
// missing header or field yields UnknownName and an empty description.
func Parse(content string) (name, description string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	caps := headerPattern.FindStringSubmatch(content)
	if caps == nil {
		return UnknownName, ""
	}
	header := caps[1]

	name = UnknownName
	if m := namePattern.FindStringSubmatch(header); m != nil {
		name = strings.TrimSpace(m[1])
	}
	if m := descriptionPattern.FindStringSubmatch(header); m != nil {
		description = strings.TrimSpace(m[1])
	}
	return name, description
}
