// Package translate resolves node identifiers between gene symbols, UniProt
// accessions and complex strings.
package translate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sysbio-curie/Neko-sub000/pkg/network"
)

// ComplexPrefix marks identifiers naming a protein complex; members are
// joined with "_".
const ComplexPrefix = "COMPLEX:"

// Identity resolves every identifier to itself.
var Identity = network.TranslatorFunc(func(id string) network.Translation {
	return network.Translation{Canonical: id, Label: id}
})

// Entry maps one molecule's identifiers.
type Entry struct {
	// Canonical is the identifier nodes are keyed by, usually a UniProt
	// accession.
	Canonical string   `yaml:"canonical"`
	Label     string   `yaml:"label"`
	Kind      string   `yaml:"kind,omitempty"`
	Aliases   []string `yaml:"aliases,omitempty"`
}

// Table is an in-memory translator. Lookups match the canonical id, the
// label or any alias, case-insensitively.
type Table struct {
	byKey map[string]Entry
}

// NewTable indexes entries. Later entries win on conflicting keys.
func NewTable(entries []Entry) *Table {
	t := &Table{byKey: make(map[string]Entry, len(entries)*2)}
	for _, e := range entries {
		if e.Canonical == "" {
			continue
		}
		if e.Label == "" {
			e.Label = e.Canonical
		}
		for _, k := range append([]string{e.Canonical, e.Label}, e.Aliases...) {
			if k != "" {
				t.byKey[strings.ToUpper(k)] = e
			}
		}
	}
	return t
}

// Len returns the number of lookup keys.
func (t *Table) Len() int {
	return len(t.byKey)
}

// Translate implements network.Translator. Complex identifiers resolve when
// every member does; the complex string then carries member labels.
func (t *Table) Translate(id string) network.Translation {
	if strings.HasPrefix(id, ComplexPrefix) {
		members := strings.Split(strings.TrimPrefix(id, ComplexPrefix), "_")
		labels := make([]string, 0, len(members))
		for _, m := range members {
			e, ok := t.byKey[strings.ToUpper(m)]
			if !ok {
				return network.Translation{}
			}
			labels = append(labels, e.Label)
		}
		return network.Translation{
			Complex:   ComplexPrefix + strings.Join(labels, "_"),
			Canonical: id,
			Kind:      "complex",
		}
	}

	e, ok := t.byKey[strings.ToUpper(id)]
	if !ok {
		return network.Translation{}
	}
	return network.Translation{Canonical: e.Canonical, Label: e.Label, Kind: e.Kind}
}

// LoadTSV reads "canonical<TAB>label[<TAB>alias;alias...]" lines. Lines
// starting with '#' and a leading "canonical" header are skipped.
func LoadTSV(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if line == 1 && strings.EqualFold(fields[0], "canonical") {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected at least 2 columns, got %d", line, len(fields))
		}
		e := Entry{Canonical: strings.TrimSpace(fields[0]), Label: strings.TrimSpace(fields[1])}
		if len(fields) > 2 {
			for _, a := range strings.Split(fields[2], ";") {
				if a = strings.TrimSpace(a); a != "" {
					e.Aliases = append(e.Aliases, a)
				}
			}
		}
		entries = append(entries, e)
	}
	return entries, sc.Err()
}

// LoadYAML reads a list of entries.
func LoadYAML(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode translation table: %w", err)
	}
	return entries, nil
}

// LoadFile picks the reader by extension: .yaml/.yml or tab-separated.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		entries, err = LoadYAML(f)
	default:
		entries, err = LoadTSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return NewTable(entries), nil
}
