package layout

import (
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the number of terminal cells a string occupies,
// ignoring ANSI codes and counting wide runes as two.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Styled text keeps its escape sequences intact.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	if VisibleLength(text) <= maxWidth {
		return text, false
	}

	if maxWidth <= VisibleLength(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}

	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("Atraxa, Praetors' Voice", 16, " 1. ", " 42", cfg) -> " 1. Atraxa... 42"
// Returns the truncated text and whether truncation occurred.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	if VisibleLength(combined) <= maxWidth {
		return combined, false
	}

	overhead := VisibleLength(prefix) + VisibleLength(suffix) + VisibleLength(cfg.Ellipsis)
	if overhead >= maxWidth {
		// Not enough room even for prefix + ellipsis + suffix
		return TruncateText(combined, maxWidth, cfg)
	}

	body := ansi.Truncate(text, maxWidth-overhead, "")
	return prefix + body + cfg.Ellipsis + suffix, true
}

// TruncatePathFromLeft shortens a route from the left so the tail stays visible.
// Example: TruncatePathFromLeft("/commander/atraxa-praetors-voice", 16, cfg) -> "...raetors-voice"
func TruncatePathFromLeft(path string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}

	width := VisibleLength(path)
	if width <= maxWidth {
		return path
	}

	ellipsis := VisibleLength(cfg.Ellipsis)
	if maxWidth <= ellipsis {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, "")
	}

	return ansi.TruncateLeft(path, width-(maxWidth-ellipsis), cfg.Ellipsis)
}
