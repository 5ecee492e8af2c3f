// Package text provides utilities for processing user-submitted text:
// character counting, HTML sanitising, and Markdown rendering.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Length limits on titles, names and bodies are expressed in runes, not bytes,
// so multi-byte scripts and emoji get the same budget as ASCII.
//
// Examples:
//
//	CountRunes("hello")      // returns 5
//	CountRunes("こんにちは")   // returns 5
//	CountRunes("")           // returns 0
func CountRunes(text string) int {
	return len([]rune(text))
}
