// Package policy compiles CEL rules that decide which Resource records a
// growth run may use.
//
// Each rule sees one record through these variables: source, target,
// interaction_type (string); directed, stimulation, inhibition, form_complex,
// consensus_direction, consensus_stimulation, consensus_inhibition (bool);
// curation_effort (int); references (list of string); effect (the record's
// plain sign classification, e.g. "stimulation").
package policy

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/cel-go/cel"
	"gopkg.in/yaml.v3"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

// ErrUnknownAction is returned for a rule whose action is neither require
// nor exclude.
var ErrUnknownAction = errors.New("policy: unknown rule action")

// Action decides what a matching rule does.
type Action string

const (
	// Require keeps only records matching the rule.
	Require Action = "require"
	// Exclude drops records matching the rule.
	Exclude Action = "exclude"
)

// Rule is one user-defined condition, usually loaded from YAML.
type Rule struct {
	ID        string `yaml:"id" json:"id"`
	Condition string `yaml:"condition" json:"condition"`
	Action    Action `yaml:"action" json:"action"`
}

type compiled struct {
	rule Rule
	prg  cel.Program
}

// Filter evaluates compiled rules against interaction records. A record is
// kept when it matches every require rule and no exclude rule.
type Filter struct {
	env    *cel.Env
	rules  []compiled
	logger *slog.Logger
}

// NewFilter compiles rules in order.
func NewFilter(rules []Rule, logger *slog.Logger) (*Filter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	env, err := cel.NewEnv(
		cel.Variable("source", cel.StringType),
		cel.Variable("target", cel.StringType),
		cel.Variable("interaction_type", cel.StringType),
		cel.Variable("effect", cel.StringType),
		cel.Variable("directed", cel.BoolType),
		cel.Variable("stimulation", cel.BoolType),
		cel.Variable("inhibition", cel.BoolType),
		cel.Variable("form_complex", cel.BoolType),
		cel.Variable("consensus_direction", cel.BoolType),
		cel.Variable("consensus_stimulation", cel.BoolType),
		cel.Variable("consensus_inhibition", cel.BoolType),
		cel.Variable("curation_effort", cel.IntType),
		cel.Variable("references", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	f := &Filter{env: env, logger: logger}
	for i, r := range rules {
		if r.ID == "" {
			r.ID = fmt.Sprintf("rule-%d", i+1)
		}
		if r.Action == "" {
			r.Action = Require
		}
		if r.Action != Require && r.Action != Exclude {
			return nil, fmt.Errorf("%w: rule %s: %q", ErrUnknownAction, r.ID, r.Action)
		}

		ast, issues := env.Compile(r.Condition)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rule %s compilation error: %w", r.ID, issues.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("rule %s must evaluate to bool, got %s", r.ID, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %s program creation error: %w", r.ID, err)
		}
		f.rules = append(f.rules, compiled{rule: r, prg: prg})
	}
	return f, nil
}

// Len returns the number of compiled rules.
func (f *Filter) Len() int {
	return len(f.rules)
}

// Keep reports whether rec passes every rule. A rule that fails to evaluate
// counts as not matching.
func (f *Filter) Keep(rec interaction.Record) bool {
	vars := activation(rec)
	for _, c := range f.rules {
		matched := false
		out, _, err := c.prg.Eval(vars)
		if err != nil {
			f.logger.Warn("rule evaluation failed", "rule_id", c.rule.ID, "source", rec.Source, "target", rec.Target, "error", err)
		} else if b, ok := out.Value().(bool); ok {
			matched = b
		}

		if c.rule.Action == Require && !matched {
			return false
		}
		if c.rule.Action == Exclude && matched {
			return false
		}
	}
	return true
}

// Apply returns the subset of res passing the filter.
func (f *Filter) Apply(res *interaction.Resource) *interaction.Resource {
	if len(f.rules) == 0 {
		return res
	}
	out := res.Filter(f.Keep)
	f.logger.Info("resource filtered", "rules", len(f.rules), "kept", out.Len(), "dropped", res.Len()-out.Len())
	return out
}

func activation(rec interaction.Record) map[string]any {
	refs := rec.References
	if refs == nil {
		refs = []string{}
	}
	return map[string]any{
		"source":                rec.Source,
		"target":                rec.Target,
		"interaction_type":      rec.Type,
		"effect":                string(interaction.Classify(rec, false)),
		"directed":              rec.Directed,
		"stimulation":           rec.Stimulation,
		"inhibition":            rec.Inhibition,
		"form_complex":          rec.FormComplex,
		"consensus_direction":   rec.ConsensusDirection,
		"consensus_stimulation": rec.ConsensusStimulation,
		"consensus_inhibition":  rec.ConsensusInhibition,
		"curation_effort":       int64(rec.CurationEffort),
		"references":            refs,
	}
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads a YAML document with a top-level "rules" list.
func LoadRules(r io.Reader) ([]Rule, error) {
	var doc ruleFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return doc.Rules, nil
}

// LoadRulesFile reads rules from path.
func LoadRulesFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadRules(f)
}
