package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/duplau/link-fields/acronym"
	"github.com/duplau/link-fields/assign"
	"github.com/duplau/link-fields/candidate"
	"github.com/duplau/link-fields/entity"
	"github.com/duplau/link-fields/logger"
	"github.com/duplau/link-fields/lookup"
	"github.com/duplau/link-fields/lookup/fss"
	"github.com/duplau/link-fields/lookup/sparsengram"
	"github.com/duplau/link-fields/lookup/tokenratio"
	"github.com/duplau/link-fields/normalize"
	"github.com/duplau/link-fields/resource"
	"github.com/duplau/link-fields/scorer"
)

// Backend is the subset of a lookup backend's surface the engine needs:
// the approximate-match contract itself (lookup.Backend) plus the
// shared index bookkeeping every backend embeds, so the engine can
// roll k-gram hits back up to canonical ids regardless of which of
// the three concrete backends cfg.LookupBackend selected.
type Backend interface {
	lookup.Backend
	CountUIDMatches(text string, backend lookup.Backend, maxTokens, minCount int) map[string]lookup.UIDMatch
}

// Engine holds every catalog-derived index built once at load time
// (C3's backend, C5's postings and token-frequency counter, C2's
// scored acronym map) plus the engine-config value driving C4/C6's
// behavior. It is read-only once Load returns, per spec.md §5's
// freeze-at-phase-boundary requirement.
type Engine struct {
	Cfg     Config
	Catalog map[string]*entity.CanonicalEntry

	Backend  Backend
	Postings candidate.Postings
	TokenFreq candidate.TokenFreq

	AcronymMap map[string]acronym.Scored
	MinAcro    int
	MaxAcro    int

	Synonyms entity.VariantMap

	ItemScoreCfg scorer.ItemScoreConfig

	blockIndex map[string][]string // country block key -> canonical ids
}

// Load builds every index over catalog: the C3 backend selected by
// cfg.LookupBackend, the C5 postings/token-frequency tables, and the
// C2 scored acronym map, then freezes them into a read-only Engine.
// synonyms may be nil if no synonym file was supplied.
func Load(catalog map[string]*entity.CanonicalEntry, cfg Config, synonyms entity.VariantMap) (*Engine, error) {
	stopFr, err := resource.StopWordsFrench()
	if err != nil {
		return nil, err
	}
	stopEn, err := resource.StopWordsEnglish()
	if err != nil {
		return nil, err
	}
	stopWords := make(map[string]bool, len(stopFr)+len(stopEn))
	for w := range stopFr {
		stopWords[w] = true
	}
	for w := range stopEn {
		stopWords[w] = true
	}
	normalize.SetStopWords(stopWords)

	nonDiscriminating, err := resource.NonDiscriminatingWords()
	if err != nil {
		return nil, err
	}
	englishWords, err := resource.EnglishWords()
	if err != nil {
		return nil, err
	}
	knownAcronyms, err := resource.KnownAcronyms()
	if err != nil {
		return nil, err
	}
	tokenFreqTable, tokenFreqMean, err := resource.TokenFreq()
	if err != nil {
		return nil, err
	}
	cfg.AcronymScore.KnownAcronyms = knownAcronyms
	cfg.AcronymScore.TokenFreq = tokenFreqTable
	cfg.AcronymScore.TokenFreqMean = tokenFreqMean

	minAcro, maxAcro := acronym.AdaptedWindow(cfg.MinAcro, cfg.MaxAcro, len(catalog))

	uidsByTerm := make(map[string][]string)
	blockIndex := make(map[string][]string)
	vocab := make(map[string]bool)
	tokenFreq := make(candidate.TokenFreq)
	var corpus []string

	for id, entry := range catalog {
		key := entity.BlockKey(entry.Country)
		blockIndex[key] = append(blockIndex[key], id)
		for _, v := range entry.Variants() {
			uidsByTerm[v] = append(uidsByTerm[v], id)
			corpus = append(corpus, v)
			for _, tok := range normalize.NormalizeAndTokens(v, cfg.KeepAcronyms, nil, nil) {
				vocab[tok] = true
				tokenFreq[tok]++
			}
		}
	}

	backend, err := newBackend(cfg.LookupBackend, uidsByTerm, 1, MaxIndexed, cfg.KeepAcronyms)
	if err != nil {
		return nil, err
	}

	postings := make(candidate.Postings, len(vocab))
	for tok := range vocab {
		matches := backend.CountUIDMatches(tok, backend, 1, 1)
		var ids map[string]bool
		for _, um := range matches {
			if ids == nil {
				ids = make(map[string]bool)
			}
			for id := range um.UIDs {
				ids[id] = true
			}
		}
		if len(ids) > 0 {
			postings[tok] = ids
		}
	}

	var tokenizedLabels [][]string
	for _, entry := range catalog {
		for _, v := range entry.Variants() {
			tokenizedLabels = append(tokenizedLabels, normalize.NormalizeAndTokens(v, true, nil, nil))
		}
	}
	termsByAcro := acronym.CollectExpansions(tokenizedLabels, minAcro, maxAcro)
	acronymMap := acronym.ScoreAcronyms(termsByAcro, corpus, cfg.AcronymScore)

	itemScoreCfg := scorer.ItemScoreConfig{
		StringScore: scorer.StringScoreConfig{
			RequireSharedProperNoun: cfg.RequireSharedProperNoun,
			NonDiscriminatingWords:  nonDiscriminating,
			DictionaryWords:         englishWords,
		},
		MinStringScore: cfg.MinStringScore,
		AggregateFloor: scorer.DefaultAggregateFloor,
	}

	logger.CandidateInfow("catalog indexed", "entries", len(catalog), "vocab", len(vocab), "acronyms", len(acronymMap))

	return &Engine{
		Cfg:          cfg,
		Catalog:      catalog,
		Backend:      backend,
		Postings:     postings,
		TokenFreq:    tokenFreq,
		AcronymMap:   acronymMap,
		MinAcro:      minAcro,
		MaxAcro:      maxAcro,
		Synonyms:     synonyms,
		ItemScoreCfg: itemScoreCfg,
		blockIndex:   blockIndex,
	}, nil
}

func newBackend(kind LookupBackendKind, uidsByTerm map[string][]string, minTokens, maxTokens int, keepAcronyms bool) (Backend, error) {
	switch kind {
	case LookupTokenRatio:
		return tokenratio.New(uidsByTerm, minTokens, maxTokens, keepAcronyms), nil
	case LookupSparseNgram:
		return sparsengram.New(uidsByTerm, minTokens, maxTokens, keepAcronyms), nil
	case LookupFSS, "":
		return fss.New(uidsByTerm, minTokens, maxTokens, keepAcronyms), nil
	default:
		return fss.New(uidsByTerm, minTokens, maxTokens, keepAcronyms), nil
	}
}

var (
	addressPattern      = regexp.MustCompile(`^\d{1,5}\s`)
	postalCodePattern   = regexp.MustCompile(`\b\d{4,6}\b`)
	streetWordPattern   = regexp.MustCompile(`(?i)\b(rue|avenue|boulevard|street|road|cedex|place)\b`)
	researchUnitPattern = regexp.MustCompile(`(?i)\b(UMR|FRE|UPR|USR|EA|FR)\s?-?\s?\d{3,5}\b`)
)

// detectAddressLabel reports whether raw looks like a street address
// rather than an organization name: a leading house number, a street
// keyword, or an embedded postal code.
func detectAddressLabel(raw string) bool {
	return addressPattern.MatchString(raw) || streetWordPattern.MatchString(raw) || postalCodePattern.MatchString(raw)
}

// detectResearchUnitID extracts a French research-unit code (e.g.
// "UMR 7588") embedded in a label, a common CNRS/HAL naming
// convention this repo's catalog domain inherits from the original's
// grid_hal.py integration.
func detectResearchUnitID(raw string) string {
	m := researchUnitPattern.FindString(raw)
	if m == "" {
		return ""
	}
	return strings.ToUpper(strings.Join(strings.Fields(strings.ReplaceAll(m, "-", " ")), ""))
}

// Enrich populates each source item's derived fields once: textual
// variants (including colocated-acronym stripping, synonym
// translation, and acronym-expansion broadening), extracted acronyms,
// the address-as-label flag, and a detected research-unit id. Per
// spec.md §3's lifecycle, this must run exactly once before matching;
// Link/Assign assume it already has.
func (e *Engine) Enrich(items []*entity.SourceItem) {
	for _, item := range items {
		item.EnsureDocID()
		e.enrichOne(item)
	}
}

func (e *Engine) enrichOne(item *entity.SourceItem) {
	tokens := normalize.NormalizeAndTokens(item.RawLabel, e.Cfg.KeepAcronyms, nil, nil)

	variants := []string{item.RawLabel}
	seen := map[string]bool{item.RawLabel: true}
	addVariant := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		variants = append(variants, v)
	}

	var acros []string
	if item.Acronym != "" {
		acros = append(acros, item.Acronym)
	}
	for _, c := range acronym.ExtractByColocation(item.RawLabel) {
		acros = append(acros, c.Acronym)
		addVariant(c.StrippedPhrase)
	}
	if len(tokens) == 1 && tokens[0] == strings.ToUpper(tokens[0]) && len(tokens[0]) >= normalize.MinAcroSize {
		acros = append(acros, tokens[0])
	}

	if e.Synonyms != nil {
		addVariant(normalize.Translate(item.RawLabel, e.Synonyms))
	}

	for _, expansion := range acronym.Expansions(tokens, e.AcronymMap, e.MinAcro, e.MaxAcro)[1:] {
		addVariant(strings.Join(expansion, " "))
	}

	item.Variants = variants
	item.Acros = acros
	item.IsAddressLabel = detectAddressLabel(item.RawLabel)
	if item.ResearchUnitID == "" {
		item.ResearchUnitID = detectResearchUnitID(item.RawLabel)
	}
}

// Link runs the candidate generator (C5) over every source item
// independently, returning every item's full ranked candidate list —
// the CLI's `link` subcommand surfaces this directly, with no
// one-to-one constraint applied.
func (e *Engine) Link(items []*entity.SourceItem) map[string][]candidate.Scored {
	out := make(map[string][]candidate.Scored, len(items))
	for _, item := range items {
		cands := candidate.Generate(item, e.Catalog, e.Postings, e.TokenFreq, e.ItemScoreCfg)
		if len(cands) == 0 {
			logger.CandidateInfow("no candidates generated", logger.FieldDocID, item.DocID)
		}
		out[item.DocID] = cands
	}
	return out
}

// Assign runs the full C6 decision layer: block partitioning, the
// primary assignment pass (greedy or min-cost per cfg.AssignmentMode),
// then the three fallback passes in spec.md §4.6's order. items must
// already have been enriched.
func (e *Engine) Assign(items []*entity.SourceItem) map[string]entity.Match {
	candidatesByDocID := e.Link(items)

	labelToDocID := make(map[string]string, len(items))
	for _, item := range items {
		labelToDocID[item.RawLabel] = item.DocID
	}

	matches := make(map[string]entity.Match)
	for _, block := range e.buildBlocks(items) {
		blockMatches := e.assignBlock(block, candidatesByDocID)
		for docID, m := range blockMatches {
			matches[docID] = m
		}
	}

	assign.ParentGridPropagation(items, matches, labelToDocID)
	assign.ReferenceParentInference(matches, e.Catalog)
	assign.PrefixMatch(items, matches, labelToDocID)

	return matches
}

// buildBlocks partitions items by their country's entity.BlockKey, falling
// back to the slash-prefix of the blocking key when the exact key has
// no counterpart in the reference index, and skipping the block
// entirely (with a WARNING-level log, per spec.md §7) if even that
// fails. When cfg.ExcludeCountryBlocking is set, every item and the
// whole catalog form a single block.
func (e *Engine) buildBlocks(items []*entity.SourceItem) []entity.Block {
	if e.Cfg.ExcludeCountryBlocking {
		ids := make([]string, 0, len(e.Catalog))
		for id := range e.Catalog {
			ids = append(ids, id)
		}
		return []entity.Block{{Key: "", SourceItems: items, CanonicalIDs: ids}}
	}

	bySrcKey := make(map[string][]*entity.SourceItem)
	var order []string
	for _, item := range items {
		key := entity.BlockKey(item.Country)
		if _, ok := bySrcKey[key]; !ok {
			order = append(order, key)
		}
		bySrcKey[key] = append(bySrcKey[key], item)
	}

	blocks := make([]entity.Block, 0, len(order))
	for _, key := range order {
		canonicalIDs, ok := e.blockIndex[key]
		if !ok {
			if i := strings.Index(key, "/"); i >= 0 {
				canonicalIDs, ok = e.blockIndex[key[:i]]
			}
		}
		if !ok {
			logger.AssignWarnw("blocking key has no matching reference block", logger.FieldBlockKey, key)
			continue
		}
		blocks = append(blocks, entity.Block{Key: key, SourceItems: bySrcKey[key], CanonicalIDs: canonicalIDs})
	}
	return blocks
}

// assignBlock runs the primary matching pass over one block: greedy
// claim-by-rank, or min-cost bipartite assignment over the union of
// candidate canonical ids appearing anywhere in the block.
func (e *Engine) assignBlock(block entity.Block, candidatesByDocID map[string][]candidate.Scored) map[string]entity.Match {
	inBlock := make(map[string]bool, len(block.CanonicalIDs))
	for _, id := range block.CanonicalIDs {
		inBlock[id] = true
	}

	order := make([]string, 0, len(block.SourceItems))
	filtered := make(map[string][]candidate.Scored, len(block.SourceItems))
	for _, item := range block.SourceItems {
		order = append(order, item.DocID)
		var kept []candidate.Scored
		for _, c := range candidatesByDocID[item.DocID] {
			if inBlock[c.CanonicalID] {
				kept = append(kept, c)
			}
		}
		filtered[item.DocID] = kept
	}

	switch e.Cfg.AssignmentMode {
	case AssignmentGreedy:
		return assign.Greedy(order, filtered)
	default:
		return e.assignMinCost(order, filtered)
	}
}

func (e *Engine) assignMinCost(order []string, filtered map[string][]candidate.Scored) map[string]entity.Match {
	scoreByPair := make(map[string]map[string]candidate.Scored)
	canonicalSet := make(map[string]bool)
	for _, docID := range order {
		byCanon := make(map[string]candidate.Scored, len(filtered[docID]))
		for _, c := range filtered[docID] {
			byCanon[c.CanonicalID] = c
			canonicalSet[c.CanonicalID] = true
		}
		scoreByPair[docID] = byCanon
	}
	canonicalIDs := make([]string, 0, len(canonicalSet))
	for id := range canonicalSet {
		canonicalIDs = append(canonicalIDs, id)
	}
	sort.Strings(canonicalIDs)

	scoreFunc := func(docID, canonicalID string) int {
		if c, ok := scoreByPair[docID][canonicalID]; ok {
			return c.Result.Score
		}
		return 0
	}

	matches := assign.MinCost(order, canonicalIDs, scoreFunc)
	for docID, m := range matches {
		if c, ok := scoreByPair[docID][m.CanonicalID]; ok {
			m.Reason = c.Result.Reason
			matches[docID] = m
		}
	}
	return matches
}

// CollectExpansions tokenizes phrases and harvests every ⟨acronym,
// expansion⟩ pair they contain — the `collect_expansions` CLI
// subcommand's operation, grounded on acronyms.py's collectExpansions.
func (e *Engine) CollectExpansions(phrases []string) acronym.TermsByAcronym {
	tokenized := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		tokenized = append(tokenized, normalize.NormalizeAndTokens(p, true, nil, nil))
	}
	return acronym.CollectExpansions(tokenized, e.MinAcro, e.MaxAcro)
}
