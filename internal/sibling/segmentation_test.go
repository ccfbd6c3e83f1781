package sibling_test

import (
	"strings"
	"testing"

	"printvault/internal/sibling"
)

func TestInferSegmentationFromSibling(t *testing.T) {
	target := sibling.Entry{ID: 1, Leaf: "Orc Warrior"}
	siblings := []sibling.Entry{{ID: 2, Leaf: "Orc Warrior Uncut"}}

	got := sibling.InferSegmentation(target, siblings, nil)
	if got.Segmentation != sibling.SegmentationSplit {
		t.Fatalf("expected split, got %q", got.Segmentation)
	}
	if got.MatchedID != 2 {
		t.Fatalf("expected match against sibling 2, got %d", got.MatchedID)
	}
}

func TestOwnMarkerClassifiesDirectly(t *testing.T) {
	cases := []struct {
		leaf string
		want sibling.Segmentation
	}{
		{"Orc Warrior Uncut", sibling.SegmentationMerged},
		{"Orc Warrior Split", sibling.SegmentationSplit},
		{"Orc Warrior Merged 32mm", sibling.SegmentationMerged},
		{"Orc Warrior", sibling.SegmentationUnknown},
	}
	for _, tc := range cases {
		got := sibling.InferSegmentation(sibling.Entry{ID: 1, Leaf: tc.leaf}, nil, nil)
		if got.Segmentation != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.leaf, tc.want, got.Segmentation)
		}
	}
}

func TestInferSegmentationIgnoresScaleTokens(t *testing.T) {
	target := sibling.Entry{ID: 1, Leaf: "Orc Warrior 75mm supported"}
	siblings := []sibling.Entry{{ID: 2, Leaf: "Orc Warrior 75mm uncut"}}

	got := sibling.InferSegmentation(target, siblings, nil)
	if got.Segmentation != sibling.SegmentationSplit {
		t.Fatalf("expected split after boilerplate stripping, got %q", got.Segmentation)
	}
}

func TestInferSegmentationFallsBackToCousins(t *testing.T) {
	target := sibling.Entry{ID: 1, Leaf: "Orc Warrior"}
	cousins := []sibling.Entry{{ID: 9, Leaf: "orc_warrior_merged"}}

	got := sibling.InferSegmentation(target, nil, cousins)
	if got.Segmentation != sibling.SegmentationSplit || got.MatchedID != 9 {
		t.Fatalf("expected cousin-driven split, got %+v", got)
	}
}

func TestCrossScaleInferenceWarns(t *testing.T) {
	target := sibling.Entry{ID: 1, Leaf: "Orc Warrior", ScaleRatio: 10}
	siblings := []sibling.Entry{{ID: 2, Leaf: "Orc Warrior Uncut", ScaleRatio: 6}}

	got := sibling.InferSegmentation(target, siblings, nil)
	if got.Segmentation != sibling.SegmentationSplit {
		t.Fatalf("expected split, got %q", got.Segmentation)
	}
	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "cross-scale") {
		t.Fatalf("expected cross-scale warning, got %v", got.Warnings)
	}
}

func TestNoMatchLeavesUnknown(t *testing.T) {
	target := sibling.Entry{ID: 1, Leaf: "Orc Warrior"}
	siblings := []sibling.Entry{{ID: 2, Leaf: "Goblin Archer Uncut"}}

	got := sibling.InferSegmentation(target, siblings, nil)
	if got.Segmentation != sibling.SegmentationUnknown {
		t.Fatalf("expected unknown, got %+v", got)
	}
}
