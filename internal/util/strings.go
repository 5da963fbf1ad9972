package util

import "strings"

// carriageReturnToken is the escaped CR that spreadsheet exports leave
// inside cell text.
const carriageReturnToken = "_x000D_"

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeTeacherID returns the canonical form of a teacher identifier.
// It removes the carriage-return token, trims whitespace and drops a
// trailing ".0" left behind by numeric-to-text conversion.
//
//	NormalizeTeacherID(" 123456.0 ")   // "123456"
//	NormalizeTeacherID("123_x000D_456") // "123456"
//
// Schedule rows and ledger records are joined on this value, so every
// identifier comparison must go through it.
func NormalizeTeacherID(id string) string {
	id = strings.TrimSpace(strings.ReplaceAll(id, carriageReturnToken, ""))
	return strings.TrimSuffix(id, ".0")
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
