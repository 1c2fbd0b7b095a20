package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// commandPrefix introduces a REPL command, as in ":help".
const commandPrefix = ":"

// commands are the available REPL commands, without prefix.
var commands = []string{"help", "list", "query", "reset", "clear", "quit"}

// functions are the names accepted between pipes, as in "|abs(X)|".
var functions = []string{"abs", "concat", "list"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, parentheses, pipes, list and operator punctuation,
// the assignment arrow, and the command prefix.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '|', ',',
		'+', '<', '-', ':':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completion candidates for a word starting at
// wordStart. The first word after the command prefix completes to command
// names; anything else completes to variable and function names.
func candidates(input string, wordStart int, names []string) []string {
	if strings.HasPrefix(input, commandPrefix) &&
		wordStart == len(commandPrefix) {
		return commands
	}

	out := make([]string, 0, len(names)+len(functions))
	out = append(out, names...)

	return append(out, functions...)
}

// complete calculates the fuzzy match results for the word at the cursor,
// ranked best-first, along with the word boundaries. An empty word has no
// matches.
func complete(
	input string,
	cursor int,
	names []string,
) (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, wordStart, wordEnd := wordBounds(input, cursor)
	if word == "" {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates(input, wordStart, names)),
		wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)
		entryWidth := lipgloss.Width(rendered)

		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, highlightStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, highlightStyle = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	if slices.Contains(functions, match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
