package engine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sysbio-curie/Neko-sub000/pkg/config"
	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
	"github.com/sysbio-curie/Neko-sub000/pkg/phenotype"
	"github.com/sysbio-curie/Neko-sub000/pkg/policy"
	"github.com/sysbio-curie/Neko-sub000/pkg/translate"
)

// LoadResource reads the interaction table named by cfg, applies the CEL
// rules file and optionally aggregates duplicate rows.
func LoadResource(cfg config.ResourceConfig, logger *slog.Logger) (*interaction.Resource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open resource: %w", err)
	}
	defer f.Close()

	comma := '\t'
	if cfg.Delimiter != "" {
		comma = []rune(cfg.Delimiter)[0]
	}
	recs, err := interaction.ReadTable(f, comma, logger)
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", cfg.Path, err)
	}
	res := interaction.NewResource(recs)

	if cfg.RulesFile != "" {
		rules, err := policy.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		filter, err := policy.NewFilter(rules, logger)
		if err != nil {
			return nil, err
		}
		res = filter.Apply(res)
	}
	if cfg.Aggregate {
		res = res.Aggregate()
	}
	logger.Info("resource loaded", "path", cfg.Path, "records", res.Len(), "pairs", len(res.Pairs()))
	return res, nil
}

// LoadTranslator returns the table translator named by cfg, or identity.
func LoadTranslator(cfg config.ResourceConfig) (network.Translator, error) {
	if cfg.TranslationFile == "" {
		return translate.Identity, nil
	}
	tab, err := translate.LoadFile(cfg.TranslationFile)
	if err != nil {
		return nil, err
	}
	return tab, nil
}

// LoadMarkers returns the static marker source named by cfg, or nil.
func LoadMarkers(cfg config.ResourceConfig) (phenotype.MarkerSource, error) {
	if cfg.PhenotypeMarkers == "" {
		return nil, nil
	}
	src, err := phenotype.LoadFile(cfg.PhenotypeMarkers)
	if err != nil {
		return nil, err
	}
	return src, nil
}
