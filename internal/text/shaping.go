package text

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const ellipsis = "..."

// TextShaper measures and breaks text for a fixed font face
type TextShaper struct {
	Face font.Face
}

// NewTextShaper creates a new text shaper
func NewTextShaper(face font.Face) *TextShaper {
	return &TextShaper{Face: face}
}

// LineHeight is the distance between baselines in pixels
func (s *TextShaper) LineHeight() int {
	return s.Face.Metrics().Height.Ceil()
}

// Ascent is the distance from the top of a line to its baseline
func (s *TextShaper) Ascent() int {
	return s.Face.Metrics().Ascent.Ceil()
}

// MeasureText returns the advance width of a single line in pixels
func (s *TextShaper) MeasureText(text string) int {
	return font.MeasureString(s.Face, text).Ceil()
}

// SplitTextToLines breaks text on whitespace so no line exceeds maxWidth.
// Words wider than maxWidth are broken by rune.
func (s *TextShaper) SplitTextToLines(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	limit := fixed.I(maxWidth)

	var lines []string
	var current string

	for _, word := range splitIntoWords(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if font.MeasureString(s.Face, candidate) <= limit {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = ""
		for font.MeasureString(s.Face, word) > limit {
			head, tail := s.cut(word, limit)
			lines = append(lines, head)
			word = tail
		}
		current = word
	}

	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}

	return lines
}

// Truncate shortens text to fit maxWidth, ending it with "..."
func (s *TextShaper) Truncate(text string, maxWidth int) string {
	limit := fixed.I(maxWidth)
	if font.MeasureString(s.Face, text) <= limit {
		return text
	}
	room := limit - font.MeasureString(s.Face, ellipsis)
	if room <= 0 {
		return ""
	}
	head, _ := s.cut(text, room)
	return strings.TrimRight(head, " ") + ellipsis
}

// cut splits s at the last rune that still fits within limit. At least one
// rune is always kept in head.
func (s *TextShaper) cut(str string, limit fixed.Int26_6) (head, tail string) {
	var width fixed.Int26_6
	for i, r := range str {
		adv, ok := s.Face.GlyphAdvance(r)
		if !ok {
			adv, _ = s.Face.GlyphAdvance('?')
		}
		if width+adv > limit && i > 0 {
			return str[:i], str[i:]
		}
		width += adv
	}
	return str, ""
}

// splitIntoWords splits text into words
func splitIntoWords(text string) []string {
	return strings.Fields(text)
}
