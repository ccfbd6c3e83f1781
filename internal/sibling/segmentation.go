package sibling

import (
	"fmt"
	"strings"

	"printvault/internal/tokenize"
)

// Segmentation classifies whether a model ships as one merged piece or
// pre-split printable parts.
type Segmentation string

const (
	SegmentationUnknown Segmentation = ""
	SegmentationSplit   Segmentation = "split"
	SegmentationMerged  Segmentation = "merged"
)

// Entry is the minimal view of a record this package needs.
type Entry struct {
	ID int64
	// Leaf is the record's raw leaf folder or file name.
	Leaf string
	// ScaleRatio is the declared scale denominator, 0 when unknown.
	ScaleRatio int
}

// Inference is the outcome of a segmentation pass. Conflicting evidence is
// reported as warnings, never as a failure.
type Inference struct {
	Segmentation Segmentation
	// MatchedID is the sibling or cousin whose marker drove the inference.
	MatchedID int64
	Warnings  []string
}

// mergedMarkers and splitMarkers are the explicit segmentation words found
// in archive folder names.
var mergedMarkers = map[string]struct{}{
	"uncut": {}, "merged": {}, "solid": {}, "onepiece": {}, "unsplit": {},
	"whole": {}, "未分割": {}, "整体": {}, "未拆": {},
}

var splitMarkers = map[string]struct{}{
	"cut": {}, "split": {}, "splitted": {}, "presplit": {}, "分割": {}, "分件": {},
	"拆件": {},
}

// boilerplateTokens carry no identity and are stripped before base-name
// comparison.
var boilerplateTokens = map[string]struct{}{
	"stl": {}, "stls": {}, "supported": {}, "unsupported": {},
	"presupported": {}, "scale": {}, "mm": {}, "version": {}, "new": {},
}

// InferSegmentation classifies the target using its own markers first, then
// siblings, then cousins one level up. A cross-scale partner still infers
// but attaches a warning because the evidence is weaker.
func InferSegmentation(target Entry, siblings []Entry, cousins []Entry) Inference {
	targetBase, targetMark := analyzeLeaf(target.Leaf)
	if targetMark != SegmentationUnknown {
		return Inference{Segmentation: targetMark}
	}
	if targetBase == "" {
		return Inference{}
	}

	for _, group := range [][]Entry{siblings, cousins} {
		for _, other := range group {
			if other.ID == target.ID {
				continue
			}
			base, mark := analyzeLeaf(other.Leaf)
			if mark == SegmentationUnknown || base != targetBase {
				continue
			}
			inferred := SegmentationSplit
			if mark == SegmentationSplit {
				inferred = SegmentationMerged
			}
			inference := Inference{Segmentation: inferred, MatchedID: other.ID}
			if target.ScaleRatio != 0 && other.ScaleRatio != 0 && target.ScaleRatio != other.ScaleRatio {
				inference.Warnings = append(inference.Warnings, fmt.Sprintf(
					"segmentation inferred from cross-scale partner %q (1:%d vs 1:%d)",
					other.Leaf, other.ScaleRatio, target.ScaleRatio))
			}
			return inference
		}
	}
	return Inference{}
}

// analyzeLeaf normalizes a leaf name down to its comparable base and reports
// any explicit segmentation marker it carried.
func analyzeLeaf(leaf string) (string, Segmentation) {
	stream := tokenize.Tokenize(leaf)
	mark := SegmentationUnknown
	kept := make([]string, 0, len(stream.Tokens))
	for _, token := range stream.Tokens {
		if _, ok := mergedMarkers[token]; ok {
			mark = SegmentationMerged
			continue
		}
		if _, ok := splitMarkers[token]; ok {
			mark = SegmentationSplit
			continue
		}
		if _, ok := boilerplateTokens[token]; ok {
			continue
		}
		if strings.HasSuffix(token, "mm") || strings.HasSuffix(token, "scale") {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " "), mark
}
