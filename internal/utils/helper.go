package utils

import "strconv"

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseID parses a path or query parameter into an int64 id.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ParsePositiveInt parses s, falling back to def when missing or invalid.
func ParsePositiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
