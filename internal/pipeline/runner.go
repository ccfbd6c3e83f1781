package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"printvault/internal/apply"
	"printvault/internal/catalog"
	"printvault/internal/config"
	"printvault/internal/logging"
	"printvault/internal/resolve"
	"printvault/internal/sibling"
	"printvault/internal/tokenize"
	"printvault/internal/vocab"
)

// ErrLocked indicates another apply run holds the catalog lock.
var ErrLocked = errors.New("another apply run holds the catalog lock")

// KitRoleContainer and KitRolePart are the kit_role values the pipeline
// writes.
const (
	KitRoleContainer = "container"
	KitRolePart      = "part"
)

// Options selects the scope and mode of one run. The zero value dry-runs
// everything with the configured defaults.
type Options struct {
	Apply bool
	Force bool
	// RecordIDs restricts the run to explicit records.
	RecordIDs []int64
	// MissingField restricts the run to records missing one field.
	MissingField string
	// Domains overrides the configured domain order.
	Domains []string
}

// Outcome bundles the run report with the vocabulary build report.
type Outcome struct {
	RunID       string
	Report      *apply.Report
	VocabReport *vocab.BuildReport
}

// Runner executes enrichment runs against one catalog.
type Runner struct {
	cfg    *config.Config
	store  *catalog.Store
	logger *slog.Logger
}

// NewRunner builds a runner. A nil logger discards output.
func NewRunner(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, store: store, logger: logger}
}

// Run performs one synchronous enrichment pass. Apply mode takes an
// exclusive lock next to the database; dry runs never lock and never write.
func (r *Runner) Run(ctx context.Context, opts Options) (*Outcome, error) {
	runID := uuid.NewString()
	logger := r.logger.With(logging.String("run_id", runID))

	if opts.Apply {
		lock := flock.New(r.cfg.LockPath())
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		if !locked {
			return nil, ErrLocked
		}
		defer func() { _ = lock.Unlock() }()
	}

	index, vocabReport, err := r.loadVocabulary(logger)
	if err != nil {
		return nil, err
	}
	if opts.Apply && vocabReport.HasIssues() {
		if err := r.store.SaveVocabConflicts(ctx, runID, vocabReport); err != nil {
			return nil, err
		}
	}

	domains, err := r.domainOrder(opts)
	if err != nil {
		return nil, err
	}

	records, err := r.store.List(ctx, catalog.Scope{IDs: opts.RecordIDs, MissingField: opts.MissingField})
	if err != nil {
		return nil, err
	}
	logger.Info("run started",
		logging.Bool("apply", opts.Apply),
		logging.Int("records", len(records)),
		logging.Int("vocab_entries", vocabReport.Indexed))

	tuning := tuningFromConfig(r.cfg)
	biases := resolve.BiasChain(index, tuning, switchesFromConfig(r.cfg))
	resolver := resolve.New(index, tuning, logger, biases...)

	changesets := make([]apply.Changeset, 0, len(records))
	containers := make(map[string]struct{})
	proposals := make(map[int64]*apply.Proposal, len(records))

	for _, record := range records {
		proposal, isContainer, err := r.enrich(ctx, resolver, index, domains, record)
		if err != nil {
			return nil, err
		}
		if isContainer {
			containers[record.Path] = struct{}{}
		}
		proposals[record.ID] = proposal
	}

	// Part roles depend on which folders the pass classified as containers,
	// so they resolve after every record has been examined.
	for _, record := range records {
		proposal := proposals[record.ID]
		if _, ok := containers[record.ParentPath]; ok {
			if _, claimed := proposal.Fields[catalog.FieldKitRole]; !claimed {
				proposal.SetField(catalog.FieldKitRole, KitRolePart)
			}
		}
		changesets = append(changesets, apply.Compute(record, *proposal, opts.Force))
	}

	engine := apply.NewEngine(r.store, logger, r.cfg.Engine.BatchSize)
	report, err := engine.Run(ctx, runID, len(records), changesets, opts.Apply)
	if err != nil {
		return &Outcome{RunID: runID, Report: report, VocabReport: vocabReport}, err
	}
	return &Outcome{RunID: runID, Report: report, VocabReport: vocabReport}, nil
}

// loadVocabulary reads the curated files and builds the index. A missing
// vocabulary directory yields an empty index: scale, locale, and sibling
// inference still run without one.
func (r *Runner) loadVocabulary(logger *slog.Logger) (*vocab.Index, *vocab.BuildReport, error) {
	entries, err := vocab.LoadDir(r.cfg.Paths.VocabDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("vocabulary directory missing, resolving without vocabulary",
				logging.String("dir", r.cfg.Paths.VocabDir))
			index, report := vocab.BuildIndex(nil)
			return index, report, nil
		}
		return nil, nil, err
	}
	index, report := vocab.BuildIndex(entries)
	if report.HasIssues() {
		logger.Warn("vocabulary build reported issues",
			logging.Int("skipped", len(report.Skipped)),
			logging.Int("conflicts", len(report.Conflicts)))
	}
	return index, report, nil
}

func (r *Runner) domainOrder(opts Options) ([]vocab.Domain, error) {
	names := opts.Domains
	if len(names) == 0 {
		names = r.cfg.Engine.Domains
	}
	domains := make([]vocab.Domain, 0, len(names))
	for _, name := range names {
		domain, ok := vocab.ParseDomain(name)
		if !ok {
			return nil, fmt.Errorf("unknown domain %q", name)
		}
		domains = append(domains, domain)
	}
	return domains, nil
}

// enrich computes the full proposal for one record.
func (r *Runner) enrich(ctx context.Context, resolver *resolve.Resolver, index *vocab.Index, domains []vocab.Domain, record *catalog.Record) (*apply.Proposal, bool, error) {
	stream := tokenize.Tokenize(record.Path)
	proposal := &apply.Proposal{}

	if denom := stream.ScaleDenominator(); denom != 0 {
		proposal.SetIntField(catalog.FieldScaleRatio, denom)
	}
	if height := stream.HeightMM(); height != 0 {
		proposal.SetIntField(catalog.FieldScaleMM, height)
	}
	if stream.Locale != tokenize.LocaleNone {
		proposal.SetField(catalog.FieldLocale, string(stream.Locale))
	}

	hints := resolve.Hints{
		System:     record.System,
		Category:   record.Category,
		FactionKey: record.CodexFaction,
	}
	for _, domain := range domains {
		result := resolver.Resolve(domain, stream, hints)
		r.applyResult(index, proposal, &hints, domain, result)
	}

	if err := r.inferSegmentation(ctx, record, stream, proposal); err != nil {
		return nil, false, err
	}

	isContainer, err := r.detectKit(ctx, record, proposal)
	if err != nil {
		return nil, false, err
	}
	return proposal, isContainer, nil
}

// applyResult maps an accepted resolution onto record fields and updates the
// hint state consumed by later domains.
func (r *Runner) applyResult(index *vocab.Index, proposal *apply.Proposal, hints *resolve.Hints, domain vocab.Domain, result resolve.Result) {
	if result.Ambiguous {
		proposal.Warnings = append(proposal.Warnings,
			fmt.Sprintf("ambiguous %s: %d candidates, none accepted", domain, len(result.RunnersUp)))
		return
	}
	if result.Accepted == nil {
		return
	}
	key := result.Accepted.Key

	switch domain {
	case vocab.DomainDesigner:
		proposal.SetField(catalog.FieldDesigner, key)
	case vocab.DomainFranchise:
		proposal.SetField(catalog.FieldFranchise, key)
	case vocab.DomainCharacter:
		proposal.SetField(catalog.FieldCharacter, key)
	case vocab.DomainLineage:
		family := index.FamilyRoot(domain, key)
		proposal.SetField(catalog.FieldLineageFamily, family)
		if family != key {
			proposal.SetField(catalog.FieldLineageSubtype, key)
		}
	case vocab.DomainFaction:
		proposal.SetField(catalog.FieldCodexFaction, key)
		if hints.FactionKey == "" {
			hints.FactionKey = key
		}
	case vocab.DomainUnit:
		proposal.SetField(catalog.FieldCodexUnitName, key)
	}

	for _, secondary := range result.Secondary {
		proposal.Warnings = append(proposal.Warnings,
			fmt.Sprintf("co-accepted %s %q alongside %q", domain, secondary.Key, key))
	}
}

func (r *Runner) inferSegmentation(ctx context.Context, record *catalog.Record, stream tokenize.Stream, proposal *apply.Proposal) error {
	if record.Segmentation != "" {
		return nil
	}
	siblings, err := r.store.SiblingsOf(ctx, record.ParentPath)
	if err != nil {
		return err
	}
	cousins, err := r.store.SiblingsOf(ctx, filepath.Dir(record.ParentPath))
	if err != nil {
		return err
	}

	target := siblingEntry(record, stream)
	inference := sibling.InferSegmentation(target, siblingEntries(siblings, record.ID), siblingEntries(cousins, record.ID))
	if inference.Segmentation != sibling.SegmentationUnknown {
		proposal.SetField(catalog.FieldSegmentation, string(inference.Segmentation))
	}
	proposal.Warnings = append(proposal.Warnings, inference.Warnings...)
	return nil
}

func (r *Runner) detectKit(ctx context.Context, record *catalog.Record, proposal *apply.Proposal) (bool, error) {
	children, err := r.store.SiblingsOf(ctx, record.Path)
	if err != nil {
		return false, err
	}
	if len(children) == 0 {
		return false, nil
	}
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Filename)
	}
	decision := sibling.DetectKitContainer(record.Filename, names)
	if decision.DeferToChild != "" {
		// The doubly-nested inner folder carries the real children and gets
		// classified on its own pass.
		return false, nil
	}
	if decision.IsContainer {
		proposal.SetField(catalog.FieldKitRole, KitRoleContainer)
		return true, nil
	}
	return false, nil
}

func siblingEntry(record *catalog.Record, stream tokenize.Stream) sibling.Entry {
	ratio := record.ScaleRatio
	if ratio == 0 {
		ratio = stream.ScaleDenominator()
	}
	return sibling.Entry{ID: record.ID, Leaf: record.Filename, ScaleRatio: ratio}
}

func siblingEntries(records []*catalog.Record, excludeID int64) []sibling.Entry {
	entries := make([]sibling.Entry, 0, len(records))
	for _, record := range records {
		if record.ID == excludeID {
			continue
		}
		ratio := record.ScaleRatio
		if ratio == 0 {
			ratio = tokenize.Tokenize(record.Path).ScaleDenominator()
		}
		entries = append(entries, sibling.Entry{ID: record.ID, Leaf: record.Filename, ScaleRatio: ratio})
	}
	return entries
}
