package sibling

import (
	"sort"

	"printvault/internal/textutil"
	"printvault/internal/tokenize"
)

// partCategories is the fixed vocabulary of modular sub-part names. A folder
// whose children cover two or more distinct categories is a kit container.
var partCategories = map[string]string{
	"body": "body", "bodies": "body", "torso": "body", "torsos": "body",
	"head": "head", "heads": "head", "helmet": "head", "helmets": "head",
	"arm": "arm", "arms": "arm", "hand": "arm", "hands": "arm",
	"leg": "leg", "legs": "leg",
	"weapon": "weapon", "weapons": "weapon", "sword": "weapon",
	"swords": "weapon", "gun": "weapon", "guns": "weapon",
	"shield": "shield", "shields": "shield",
	"base": "base", "bases": "base",
	"backpack": "accessory", "backpacks": "accessory", "bits": "accessory",
	"accessories": "accessory",
}

// kitHintPhrases mark a folder as a modular kit by name alone.
var kitHintPhrases = []string{"kit", "modular", "builder", "customizer"}

const kitHintMinChildren = 3

// KitDecision is the outcome of kit-container detection.
type KitDecision struct {
	IsContainer bool
	// Categories lists the distinct part categories found in child names.
	Categories []string
	// DeferToChild is set for the doubly-nested archive case: the folder's
	// only child repeats the folder's own name and should be examined as
	// the true kit root instead.
	DeferToChild string
}

// DetectKitContainer decides whether a folder aggregates the modular parts
// of one assembled model.
func DetectKitContainer(folderName string, childNames []string) KitDecision {
	if len(childNames) == 1 &&
		textutil.NormalizePhrase(childNames[0]) == textutil.NormalizePhrase(folderName) &&
		textutil.NormalizePhrase(folderName) != "" {
		return KitDecision{DeferToChild: childNames[0]}
	}

	seen := make(map[string]struct{})
	for _, child := range childNames {
		for _, token := range tokenize.Tokenize(child).Tokens {
			if category, ok := partCategories[token]; ok {
				seen[category] = struct{}{}
			}
		}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	if len(categories) >= 2 {
		return KitDecision{IsContainer: true, Categories: categories}
	}

	if len(childNames) >= kitHintMinChildren {
		folderTokens := tokenize.Tokenize(folderName)
		for _, hint := range kitHintPhrases {
			if textutil.ContainsPhrase(folderTokens.Joined, hint) {
				return KitDecision{IsContainer: true, Categories: categories}
			}
		}
	}
	return KitDecision{Categories: categories}
}
