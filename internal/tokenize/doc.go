// Package tokenize turns raw catalog paths into normalized token streams and
// tags the dominant script as a locale.
//
// Tokenization is a pure function of its inputs: the same path always yields
// the same stream, which keeps every downstream resolution step idempotent.
// Scale and height markers are injected as synthetic tokens before the
// minimum-length filter runs so short digit groups such as the "6" in
// "1-6 scale" are not lost.
package tokenize
