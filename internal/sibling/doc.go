// Package sibling refines a record's segmentation and kit classification by
// looking at other records that share its parent path. A single folder name
// is often insufficient: "Orc Warrior" says nothing about segmentation until
// its "Orc Warrior Uncut" sibling shows there are split and merged
// counterparts of the same model.
package sibling
