package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InitialVersion is the version assigned to a document at creation.
const InitialVersion = "1.0"

// DocumentVersion represents an immutable snapshot of a document's content.
// One row is written at document creation and one each time an update changes
// the content.
type DocumentVersion struct {
	ID         string    `json:"id"`
	DocumentID int64     `json:"document_id"`
	Version    string    `json:"version"`
	Content    string    `json:"content"`
	CreatedBy  int64     `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// ParseVersion validates a "major.minor" version string and returns its
// components. Both components must be plain non-negative base-10 integers;
// anything else fails the caller's update rather than silently defaulting.
func ParseVersion(v string) (major, minor int, err error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedVersion, v)
	}
	major, err = parseVersionComponent(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedVersion, v)
	}
	minor, err = parseVersionComponent(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedVersion, v)
	}
	return major, minor, nil
}

// parseVersionComponent parses a single version component, rejecting signs
// and other non-digit characters that strconv.Atoi would accept.
func parseVersionComponent(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// BumpMinor returns v with its minor component incremented.
func BumpMinor(v string) (string, error) {
	major, minor, err := ParseVersion(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", major, minor+1), nil
}
