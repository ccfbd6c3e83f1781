// Package textutil provides the string normalization primitives shared by the
// tokenizer, the vocabulary index, and the resolver.
//
// Every phrase that enters an index and every token stream that is matched
// against one passes through NormalizePhrase, so the two sides always agree
// on case, width, punctuation, and whitespace. Keep changes here backward
// compatible with indexed vocabularies or rebuild them.
package textutil
