package tokenize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"printvault/internal/textutil"
)

const minTokenLength = 2

var (
	// ratioPattern matches scale ratios written as 1-6, 1:72, 1/10, or a bare
	// "6scale"/"6 scale" suffix form.
	ratioPattern = regexp.MustCompile(`(?i)\b1\s*[-:/]\s*(\d{1,3})\b|\b(\d{1,3})\s*scale\b`)

	// heightPattern matches physical height markers such as 75mm or 32 mm.
	heightPattern = regexp.MustCompile(`(?i)\b(\d{2,3})\s*mm\b`)
)

// Stream is the ordered, deduplicated token sequence derived from one
// record's path plus optional extra strings (filename, sibling names).
type Stream struct {
	Tokens []string
	// Joined is the space-joined token sequence used for phrase matching.
	Joined string
	// Segments holds each normalized path segment, root first. The final
	// segment is the filename when one was present in the path.
	Segments []string
	// Filename is the normalized last path segment.
	Filename string
	Locale   Locale
}

// Empty reports whether tokenization produced no usable tokens.
func (s Stream) Empty() bool { return len(s.Tokens) == 0 }

// ScaleDenominator returns the ratio denominator carried by a synthetic
// "<n>scale" token, or 0 when the stream has none.
func (s Stream) ScaleDenominator() int {
	for _, token := range s.Tokens {
		if n, ok := strings.CutSuffix(token, "scale"); ok && n != "" {
			if v, err := strconv.Atoi(n); err == nil && v > 0 {
				return v
			}
		}
	}
	return 0
}

// HeightMM returns the millimeter height carried by a synthetic "<n>mm"
// token, or 0 when the stream has none.
func (s Stream) HeightMM() int {
	for _, token := range s.Tokens {
		if n, ok := strings.CutSuffix(token, "mm"); ok && n != "" {
			if v, err := strconv.Atoi(n); err == nil && v > 0 {
				return v
			}
		}
	}
	return 0
}

// Tokenize splits a raw path (and any extra strings) into a normalized token
// stream. It never fails; unusable input degrades to an empty stream.
func Tokenize(path string, extra ...string) Stream {
	var stream Stream
	seen := make(map[string]struct{})
	appendToken := func(token string) {
		if token == "" {
			return
		}
		if _, dup := seen[token]; dup {
			return
		}
		seen[token] = struct{}{}
		stream.Tokens = append(stream.Tokens, token)
	}

	rawSegments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' })
	sources := make([]string, 0, len(rawSegments)+len(extra))
	sources = append(sources, rawSegments...)
	sources = append(sources, extra...)

	for _, source := range sources {
		for _, field := range strings.Fields(replaceSeparators(width.Fold.String(source))) {
			for _, token := range splitBoundaries(field) {
				if len([]rune(token)) < minTokenLength {
					continue
				}
				appendToken(token)
			}
		}
	}

	// Synthetic tokens come from the raw inputs so digit groups the length
	// filter dropped still contribute their scale signal.
	for _, raw := range append([]string{path}, extra...) {
		for _, token := range syntheticTokens(raw) {
			appendToken(token)
		}
	}

	for _, seg := range rawSegments {
		normalized := textutil.NormalizePhrase(seg)
		if normalized == "" {
			continue
		}
		stream.Segments = append(stream.Segments, normalized)
	}
	if len(stream.Segments) > 0 {
		stream.Filename = stream.Segments[len(stream.Segments)-1]
	}
	stream.Joined = strings.Join(stream.Tokens, " ")
	stream.Locale = DetectLocale(stream.Tokens)
	return stream
}

// replaceSeparators maps punctuation to spaces while preserving letter case,
// so camelCase boundaries survive until splitBoundaries runs.
func replaceSeparators(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// splitBoundaries breaks a single field on camelCase and letter/digit
// boundaries: "OrcWarrior" -> orc warrior, "a1B" -> a 1 b.
func splitBoundaries(field string) []string {
	runes := []rune(field)
	if len(runes) == 0 {
		return nil
	}
	var tokens []string
	start := 0
	flush := func(end int) {
		if end > start {
			tokens = append(tokens, strings.ToLower(string(runes[start:end])))
		}
		start = end
	}
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		switch {
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			flush(i)
		case unicode.IsDigit(prev) != unicode.IsDigit(cur):
			flush(i)
		}
	}
	flush(len(runes))
	return tokens
}

// syntheticTokens extracts canonical scale and height tokens from a raw,
// pre-normalization string.
func syntheticTokens(raw string) []string {
	var tokens []string
	for _, match := range ratioPattern.FindAllStringSubmatch(raw, -1) {
		denom := match[1]
		if denom == "" {
			denom = match[2]
		}
		if denom == "" {
			continue
		}
		if v, err := strconv.Atoi(denom); err == nil && v > 1 {
			tokens = append(tokens, denom+"scale")
		}
	}
	for _, match := range heightPattern.FindAllStringSubmatch(raw, -1) {
		tokens = append(tokens, match[1]+"mm")
	}
	return tokens
}
