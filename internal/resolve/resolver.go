package resolve

import (
	"log/slog"
	"sort"
	"strings"

	"printvault/internal/logging"
	"printvault/internal/textutil"
	"printvault/internal/tokenize"
	"printvault/internal/vocab"
)

// Resolver evaluates token streams against an index snapshot. It holds no
// per-record state and can be reused for every record of a run.
type Resolver struct {
	index  *vocab.Index
	tuning Tuning
	biases []Bias
	logger *slog.Logger
}

// New constructs a resolver. Bias modules run in the order given; pass none
// to resolve on direct matches only.
func New(index *vocab.Index, tuning Tuning, logger *slog.Logger, biases ...Bias) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{index: index, tuning: tuning, biases: biases, logger: logger}
}

// phraseHit is one (phrase, entity) pair surviving the subsumption filter.
type phraseHit struct {
	phrase string
	key    string
	tier   vocab.Tier
}

// Resolve matches one domain against a token stream and applies the
// acceptance rules. Bad input degrades to an empty result; it never fails.
func (r *Resolver) Resolve(domain vocab.Domain, stream tokenize.Stream, hints Hints) Result {
	result := Result{Domain: domain}
	if stream.Empty() {
		return result
	}

	hits := r.collectHits(domain, stream)
	hits = filterSubsumed(hits)
	if len(hits) == 0 && len(r.biases) == 0 {
		return result
	}

	candidates := r.score(domain, stream, hints, hits)

	for _, bias := range r.biases {
		adjusted := bias.Apply(domain, stream, hints, candidates)
		if adjusted != nil {
			candidates = adjusted
		}
	}
	candidates = r.dropExcluded(domain, stream, candidates)
	sortCandidates(candidates)

	return r.accept(domain, stream, hits, candidates)
}

// collectHits gathers every indexed phrase matching the stream on token
// boundaries. Results are sorted for determinism before scoring.
func (r *Resolver) collectHits(domain vocab.Domain, stream tokenize.Stream) []phraseHit {
	var hits []phraseHit
	appendAll := func(phrases map[string][]string, tier vocab.Tier) {
		for phrase, keys := range phrases {
			if !textutil.ContainsPhrase(stream.Joined, phrase) {
				continue
			}
			for _, key := range keys {
				hits = append(hits, phraseHit{phrase: phrase, key: key, tier: tier})
			}
		}
	}
	appendAll(r.index.Phrases(domain, vocab.TierStrong), vocab.TierStrong)
	appendAll(r.index.Phrases(domain, vocab.TierWeak), vocab.TierWeak)
	hits = append(hits, r.collectLocaleHits(domain, stream)...)

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].phrase != hits[b].phrase {
			return hits[a].phrase < hits[b].phrase
		}
		return hits[a].key < hits[b].key
	})
	return hits
}

// collectLocaleHits matches locale-gated aliases. Both CJK alias sets are
// consulted for CJK streams; when the same phrase exists in both, the locale
// with more total matches in the stream wins and ties default to Chinese.
func (r *Resolver) collectLocaleHits(domain vocab.Domain, stream tokenize.Stream) []phraseHit {
	switch stream.Locale {
	case tokenize.LocaleJapanese, tokenize.LocaleChinese:
	default:
		return nil
	}

	matchLocale := func(locale tokenize.Locale) map[string][]string {
		matched := make(map[string][]string)
		for phrase, keys := range r.index.LocalePhrases(domain, locale) {
			if textutil.ContainsPhrase(stream.Joined, phrase) {
				matched[phrase] = keys
			}
		}
		return matched
	}
	jaMatched := matchLocale(tokenize.LocaleJapanese)
	zhMatched := matchLocale(tokenize.LocaleChinese)

	preferJA := len(jaMatched) > len(zhMatched)

	var hits []phraseHit
	emit := func(matched map[string][]string, skipIfShared map[string][]string, skip bool) {
		for phrase, keys := range matched {
			if skip {
				if _, shared := skipIfShared[phrase]; shared {
					continue
				}
			}
			for _, key := range keys {
				tier := vocab.TierStrong
				if entry, ok := r.index.Entry(domain, key); ok {
					tier = entry.Tier
				}
				hits = append(hits, phraseHit{phrase: phrase, key: key, tier: tier})
			}
		}
	}
	emit(jaMatched, zhMatched, !preferJA)
	emit(zhMatched, jaMatched, preferJA)
	return hits
}

// filterSubsumed drops any hit whose phrase is a strict token-boundary
// substring of another matched phrase.
func filterSubsumed(hits []phraseHit) []phraseHit {
	phrases := make(map[string]struct{}, len(hits))
	for _, hit := range hits {
		phrases[hit.phrase] = struct{}{}
	}
	subsumed := make(map[string]struct{})
	for shorter := range phrases {
		for longer := range phrases {
			if shorter == longer {
				continue
			}
			if textutil.ContainsPhrase(longer, shorter) {
				subsumed[shorter] = struct{}{}
				break
			}
		}
	}
	if len(subsumed) == 0 {
		return hits
	}
	kept := hits[:0]
	for _, hit := range hits {
		if _, drop := subsumed[hit.phrase]; !drop {
			kept = append(kept, hit)
		}
	}
	return kept
}

// score applies the base rubric to each hit and keeps the best-scoring
// phrase per entity.
func (r *Resolver) score(domain vocab.Domain, stream tokenize.Stream, hints Hints, hits []phraseHit) []Candidate {
	phrasesByKey := make(map[string][]string)
	strongPhrases := make(map[string]struct{})
	for _, hit := range hits {
		phrasesByKey[hit.key] = append(phrasesByKey[hit.key], hit.phrase)
		if hit.tier == vocab.TierStrong {
			strongPhrases[hit.phrase] = struct{}{}
		}
	}

	best := make(map[string]Candidate)
	for _, hit := range hits {
		entry, ok := r.index.Entry(domain, hit.key)
		if !ok {
			continue
		}
		generic := r.isGenericPhrase(domain, hit.key, hit.phrase)

		score := r.tuning.BaseScore
		if extra := float64(tokenCount(hit.phrase)-1) * r.tuning.LengthBonus; extra > 0 {
			score += min(extra, r.tuning.LengthBonusCap)
		}
		if r.systemConsistent(entry, stream, hints) {
			score += r.tuning.SystemBonus
		}
		if !generic && matchesSegment(stream, hit.phrase) {
			score += r.tuning.SegmentBonus
		}
		tier := hit.tier
		if generic && !r.corroborated(hit, phrasesByKey, strongPhrases) {
			// An uncorroborated bare role word can rank but never carries
			// enough weight to be accepted on its own.
			score -= r.tuning.GenericPenalty
			tier = vocab.TierWeak
		}

		basis := BasisWeakConsensus
		if tier == vocab.TierStrong {
			basis = BasisStrongDirect
		}
		candidate := Candidate{
			Domain: domain,
			Key:    hit.key,
			Phrase: hit.phrase,
			Tier:   tier,
			Basis:  basis,
			Score:  score,
		}

		current, exists := best[hit.key]
		switch {
		case !exists:
			best[hit.key] = candidate
		case candidate.Score > current.Score:
			// A strong hit is remembered even when a weak phrase outscores it.
			if current.Tier == vocab.TierStrong {
				candidate.Tier = vocab.TierStrong
				candidate.Basis = BasisStrongDirect
			}
			best[hit.key] = candidate
		case candidate.Tier == vocab.TierStrong && current.Tier != vocab.TierStrong:
			current.Tier = vocab.TierStrong
			current.Basis = BasisStrongDirect
			best[hit.key] = current
		}
	}

	candidates := make([]Candidate, 0, len(best))
	for _, candidate := range best {
		candidates = append(candidates, candidate)
	}
	sortCandidates(candidates)
	return candidates
}

func (r *Resolver) isGenericPhrase(domain vocab.Domain, key, phrase string) bool {
	if tokenCount(phrase) != 1 {
		return false
	}
	if _, ok := genericTokens[phrase]; ok {
		return true
	}
	for _, tag := range r.index.ContextTags(domain, key) {
		if tag == "generic" {
			return true
		}
	}
	return false
}

func (r *Resolver) systemConsistent(entry *vocab.Entry, stream tokenize.Stream, hints Hints) bool {
	if entry.System == "" {
		return false
	}
	system := textutil.NormalizePhrase(entry.System)
	if system == "" {
		return false
	}
	if textutil.NormalizePhrase(hints.System) == system {
		return true
	}
	return textutil.ContainsPhrase(stream.Joined, system)
}

// corroborated reports whether independent evidence backs a generic alias:
// a second matched phrase for the same entity, or another strong phrase
// elsewhere in the stream.
func (r *Resolver) corroborated(hit phraseHit, phrasesByKey map[string][]string, strongPhrases map[string]struct{}) bool {
	for _, phrase := range phrasesByKey[hit.key] {
		if phrase != hit.phrase {
			return true
		}
	}
	for phrase := range strongPhrases {
		if phrase != hit.phrase {
			return true
		}
	}
	return false
}

func (r *Resolver) dropExcluded(domain vocab.Domain, stream tokenize.Stream, candidates []Candidate) []Candidate {
	kept := candidates[:0]
	for _, candidate := range candidates {
		excluded := false
		for _, term := range r.index.Excludes(domain, candidate.Key) {
			if textutil.ContainsPhrase(stream.Joined, term) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// accept applies the acceptance rules to the ranked candidate list.
func (r *Resolver) accept(domain vocab.Domain, stream tokenize.Stream, hits []phraseHit, candidates []Candidate) Result {
	result := Result{Domain: domain}
	if len(candidates) == 0 {
		return result
	}

	top := candidates[0]
	accepted := false
	switch {
	case top.Tier == vocab.TierStrong && top.Basis != BasisContextInjected:
		top.Basis = BasisStrongDirect
		accepted = true
	default:
		if r.weakConsensus(domain, stream, hits, top) {
			top.Basis = BasisWeakConsensus
			accepted = true
		}
	}

	if !accepted {
		result.Ambiguous = true
		result.RunnersUp = capCandidates(candidates, r.tuning.MaxRunnersUp)
		r.logger.Debug("resolution ambiguous",
			logging.String("domain", string(domain)),
			logging.Int("candidates", len(candidates)),
			logging.String("top", top.Key),
			logging.Float64("top_score", top.Score))
		return result
	}

	result.Accepted = &top
	rest := candidates[1:]

	// Co-acceptance: ties on the same matched phrase within the delta are
	// recorded as secondary accepted matches instead of being discarded.
	var runners []Candidate
	for _, candidate := range rest {
		if candidate.Phrase != "" && candidate.Phrase == top.Phrase &&
			top.Score-candidate.Score <= r.tuning.CoAcceptDelta {
			result.Secondary = append(result.Secondary, candidate)
			continue
		}
		runners = append(runners, candidate)
	}
	result.RunnersUp = capCandidates(runners, r.tuning.MaxRunnersUp)

	r.logger.Debug("resolution accepted",
		logging.String("domain", string(domain)),
		logging.String("key", top.Key),
		logging.String("phrase", top.Phrase),
		logging.String("basis", string(top.Basis)),
		logging.Float64("score", top.Score),
		logging.Int("secondary", len(result.Secondary)),
		logging.Int("runners_up", len(result.RunnersUp)))
	return result
}

// weakConsensus decides acceptance for a top candidate without a strong hit:
// the entity's family needs enough weak hits, at least one of them locally
// corroborated, and no rival family with a comparable count.
func (r *Resolver) weakConsensus(domain vocab.Domain, stream tokenize.Stream, hits []phraseHit, top Candidate) bool {
	if top.Basis == BasisContextInjected {
		return false
	}

	familyPhrases := make(map[string]map[string]struct{})
	for _, hit := range hits {
		if hit.tier != vocab.TierWeak {
			continue
		}
		root := r.index.FamilyRoot(domain, hit.key)
		if familyPhrases[root] == nil {
			familyPhrases[root] = make(map[string]struct{})
		}
		familyPhrases[root][hit.phrase] = struct{}{}
	}

	topRoot := r.index.FamilyRoot(domain, top.Key)
	topCount := len(familyPhrases[topRoot])
	if topCount < r.tuning.WeakConsensusMin {
		return false
	}

	corroborated := false
	for phrase := range familyPhrases[topRoot] {
		if locallyCorroborated(stream, phrase) {
			corroborated = true
			break
		}
	}
	if !corroborated {
		return false
	}

	for root, phrases := range familyPhrases {
		if root != topRoot && len(phrases) >= topCount {
			return false
		}
	}
	return true
}

// locallyCorroborated reports whether a phrase occurs in the record's
// filename or its nearest non-generic path segment.
func locallyCorroborated(stream tokenize.Stream, phrase string) bool {
	if textutil.ContainsPhrase(stream.Filename, phrase) {
		return true
	}
	for i := len(stream.Segments) - 1; i >= 0; i-- {
		segment := stream.Segments[i]
		if segment == stream.Filename {
			continue
		}
		if _, generic := genericSegments[segment]; generic {
			continue
		}
		return textutil.ContainsPhrase(segment, phrase)
	}
	return false
}

func matchesSegment(stream tokenize.Stream, phrase string) bool {
	for _, segment := range stream.Segments {
		if segment == phrase {
			return true
		}
	}
	return false
}

func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].Key < candidates[b].Key
	})
}

func capCandidates(candidates []Candidate, limit int) []Candidate {
	if limit <= 0 || len(candidates) <= limit {
		return candidates
	}
	return candidates[:limit]
}

func tokenCount(phrase string) int {
	if phrase == "" {
		return 0
	}
	return strings.Count(phrase, " ") + 1
}
