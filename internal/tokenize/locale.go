package tokenize

import "unicode"

// Locale tags the dominant script of a token stream.
type Locale string

const (
	LocaleNone     Locale = ""
	LocaleEnglish  Locale = "en"
	LocaleJapanese Locale = "ja"
	LocaleChinese  Locale = "zh"
)

// Marker terms that distinguish Japanese from Chinese archive conventions
// when a token is written entirely in Han characters. Kanji-only Japanese
// folder names (分割, 腕) are indistinguishable from Chinese by script range
// alone, so known workshop vocabulary breaks the tie.
var (
	jaMarkers = map[string]struct{}{
		"分割": {}, "腕": {}, "頭": {}, "頭部": {}, "素体": {}, "右腕": {},
		"左腕": {}, "全身": {}, "胴体": {}, "未分割": {},
	}
	zhMarkers = map[string]struct{}{
		"分件": {}, "零件": {}, "部件": {}, "合并": {}, "整体": {}, "拆件": {},
		"未拆": {}, "兵人": {},
	}
)

// DetectLocale classifies a token list by script. All-ASCII streams are
// English regardless of semantic origin. Hiragana or Katakana anywhere wins
// Japanese outright. For Han-only streams, marker-term hits are counted per
// locale and the higher count wins; ties default to Chinese.
func DetectLocale(tokens []string) Locale {
	if len(tokens) == 0 {
		return LocaleNone
	}
	ascii := true
	var sawKana, sawHan bool
	var jaHits, zhHits int
	for _, token := range tokens {
		for _, r := range token {
			if r > unicode.MaxASCII {
				ascii = false
			}
			switch {
			case unicode.In(r, unicode.Hiragana, unicode.Katakana):
				sawKana = true
			case unicode.In(r, unicode.Han):
				sawHan = true
			}
		}
		if _, ok := jaMarkers[token]; ok {
			jaHits++
		}
		if _, ok := zhMarkers[token]; ok {
			zhHits++
		}
	}
	switch {
	case ascii:
		return LocaleEnglish
	case sawKana:
		return LocaleJapanese
	case sawHan:
		if jaHits > zhHits {
			return LocaleJapanese
		}
		return LocaleChinese
	default:
		return LocaleNone
	}
}
