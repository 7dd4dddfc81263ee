package interaction

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// ErrNoHeader is returned when a table has no header row.
var ErrNoHeader = errors.New("interaction: table has no header")

// MandatoryColumns must be present in every resource table.
var MandatoryColumns = []string{
	"source", "target", "is_directed", "is_stimulation", "is_inhibition", "form_complex",
}

// ReadTable parses a delimited resource table. Missing mandatory columns are
// reported and default to false; consensus columns default to the plain ones.
func ReadTable(r io.Reader, comma rune, logger *slog.Logger) ([]Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range MandatoryColumns {
		if _, ok := cols[c]; !ok {
			logger.Warn("resource table is missing a mandatory column", "column", c)
		}
	}
	_, hasConsensus := cols["consensus_stimulation"]

	var out []Record
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return out, fmt.Errorf("read line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := Record{
			Source:       field("source"),
			Target:       field("target"),
			Directed:     parseFlag(field("is_directed")),
			Type:         field("type"),
			Stimulation:  parseFlag(field("is_stimulation")),
			Inhibition:   parseFlag(field("is_inhibition")),
			FormComplex:  parseFlag(field("form_complex")),
			HasConsensus: hasConsensus,
		}
		if hasConsensus {
			rec.ConsensusDirection = parseFlag(field("consensus_direction"))
			rec.ConsensusStimulation = parseFlag(field("consensus_stimulation"))
			rec.ConsensusInhibition = parseFlag(field("consensus_inhibition"))
		}
		if refs := field("references"); refs != "" {
			for _, ref := range strings.Split(refs, ";") {
				if ref = strings.TrimSpace(ref); ref != "" {
					rec.References = append(rec.References, ref)
				}
			}
		}
		if ce := field("curation_effort"); ce != "" {
			n, err := strconv.Atoi(ce)
			if err != nil {
				logger.Warn("invalid curation_effort, defaulting to 0", "line", line, "value", ce)
			}
			rec.CurationEffort = n
		}
		if rec.Source == "" || rec.Target == "" {
			logger.Warn("skipping row with empty endpoint", "line", line)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}
