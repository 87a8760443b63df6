// Package utils provides small helpers shared by config, todo and cmd.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// BoolFromString parses the loose boolean spellings accepted in
// environment variables: 1/true/yes/on are true, everything else false.
func BoolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// JoinArgs joins positional arguments into one description, so
// `todo add buy milk` and `todo add "buy milk"` are equivalent.
func JoinArgs(args []string) string {
	return strings.Join(args, " ")
}

// ParseIndex parses a zero-based item index given on the command line.
func ParseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be a number", s)
	}
	if i < 0 {
		return 0, fmt.Errorf("invalid index %d: must not be negative", i)
	}
	return i, nil
}

// JSONPointerToPath converts a JSON Pointer (RFC 6901) to a dot-notation path.
// For example, "#/0/description" becomes "[0].description".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		// ~1 is "/" and ~0 is "~"
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
