package interaction

// Pair identifies a directed (source, target) relation.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Resource is an ordered, read-only collection of interaction records keyed
// by (source, target). A pair may carry several rows of independent evidence;
// the first row is the pair's representative record.
type Resource struct {
	records []Record
	byPair  map[Pair][]int
	nodes   map[string]struct{}
	pairs   []Pair
}

// NewResource copies records into a Resource, defaulting missing consensus
// flags to their plain counterparts. Rows with an empty endpoint are skipped.
func NewResource(records []Record) *Resource {
	r := &Resource{
		records: make([]Record, 0, len(records)),
		byPair:  make(map[Pair][]int, len(records)),
		nodes:   make(map[string]struct{}, len(records)),
	}
	for _, rec := range records {
		if rec.Source == "" || rec.Target == "" {
			continue
		}
		rec = rec.normalized()
		p := Pair{Source: rec.Source, Target: rec.Target}
		if _, seen := r.byPair[p]; !seen {
			r.pairs = append(r.pairs, p)
		}
		r.byPair[p] = append(r.byPair[p], len(r.records))
		r.records = append(r.records, rec)
		r.nodes[rec.Source] = struct{}{}
		r.nodes[rec.Target] = struct{}{}
	}
	return r
}

// Len returns the number of rows.
func (r *Resource) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}

// Records returns all rows in insertion order. The slice must not be modified.
func (r *Resource) Records() []Record {
	if r == nil {
		return nil
	}
	return r.records
}

// Pairs returns the distinct pairs in first-seen order.
func (r *Resource) Pairs() []Pair {
	if r == nil {
		return nil
	}
	return r.pairs
}

// Lookup returns every row for (src, tgt).
func (r *Resource) Lookup(src, tgt string) []Record {
	if r == nil {
		return nil
	}
	idx := r.byPair[Pair{Source: src, Target: tgt}]
	out := make([]Record, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.records[i])
	}
	return out
}

// First returns the representative record for (src, tgt).
func (r *Resource) First(src, tgt string) (Record, bool) {
	if r == nil {
		return Record{}, false
	}
	idx, ok := r.byPair[Pair{Source: src, Target: tgt}]
	if !ok {
		return Record{}, false
	}
	return r.records[idx[0]], true
}

// HasPair reports whether any row links src to tgt.
func (r *Resource) HasPair(src, tgt string) bool {
	if r == nil {
		return false
	}
	_, ok := r.byPair[Pair{Source: src, Target: tgt}]
	return ok
}

// Contains reports whether id appears as a source or target of any row.
func (r *Resource) Contains(id string) bool {
	if r == nil {
		return false
	}
	_, ok := r.nodes[id]
	return ok
}

// References returns the union of references across all rows for the pair,
// in first-seen order.
func (r *Resource) References(src, tgt string) []string {
	if r == nil {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, i := range r.byPair[Pair{Source: src, Target: tgt}] {
		for _, ref := range r.records[i].References {
			if _, dup := seen[ref]; dup {
				continue
			}
			seen[ref] = struct{}{}
			out = append(out, ref)
		}
	}
	return out
}

// Filter returns a new Resource holding the rows keep accepts.
func (r *Resource) Filter(keep func(Record) bool) *Resource {
	var out []Record
	for _, rec := range r.Records() {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return NewResource(out)
}

// Aggregate collapses duplicate rows into one row per pair by majority vote
// over their classifications. References are merged and curation effort summed.
func (r *Resource) Aggregate() *Resource {
	out := make([]Record, 0, len(r.Pairs()))
	for _, p := range r.Pairs() {
		rows := r.Lookup(p.Source, p.Target)
		if len(rows) == 1 {
			out = append(out, rows[0])
			continue
		}

		plain := make([]Effect, 0, len(rows))
		cons := make([]Effect, 0, len(rows))
		agg := Record{Source: p.Source, Target: p.Target, HasConsensus: true}
		for _, row := range rows {
			plain = append(plain, row.Effect(false))
			cons = append(cons, row.Effect(true))
			agg.Directed = agg.Directed || row.Directed
			agg.ConsensusDirection = agg.ConsensusDirection || row.ConsensusDirection
			agg.CurationEffort += row.CurationEffort
		}
		agg.Stimulation, agg.Inhibition, agg.FormComplex = flags(MajorityEffect(plain))
		agg.ConsensusStimulation, agg.ConsensusInhibition, _ = flags(MajorityEffect(cons))
		agg.References = r.References(p.Source, p.Target)
		out = append(out, agg)
	}
	return NewResource(out)
}

func flags(e Effect) (stim, inhib, complexes bool) {
	switch e {
	case EffectStimulation:
		return true, false, false
	case EffectInhibition:
		return false, true, false
	case EffectBimodal:
		return true, true, false
	case EffectFormComplex:
		return false, false, true
	}
	return false, false, false
}

// RecordFor builds a record carrying effect e, as used when edges are
// re-expressed as a Resource.
func RecordFor(src, tgt string, e Effect, refs []string) Record {
	stim, inhib, complexes := flags(e)
	return Record{
		Source:               src,
		Target:               tgt,
		Directed:             true,
		Stimulation:          stim,
		Inhibition:           inhib,
		FormComplex:          complexes,
		ConsensusDirection:   true,
		ConsensusStimulation: stim,
		ConsensusInhibition:  inhib,
		HasConsensus:         true,
		References:           refs,
	}
}
