package rules

import (
	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/pdx"
	"github.com/rs/zerolog"
)

// DefaultPolicy synthesizes the relation of a rule no data root defined.
type DefaultPolicy func(name string) pdx.Relation

// RuleEquals is the default policy binding name to an empty block: `name = { }`.
func RuleEquals(name string) pdx.Relation {
	return pdx.Relation{Tag: name, Type: pdx.Normal, Value: pdx.Block{}}
}

// RuleInfo tracks one rule of a ResolvedRules.
type RuleInfo struct {
	// Origin is the index of the data root that defined the rule, or
	// NoOrigin for rules that only exist as defaults.
	Origin int
	// Original is the parsed definition, nil when no root defined the rule.
	Original *pdx.Relation

	materialized *pdx.Relation
}

// Materialize returns the value of the rule, computing it on first use.
// Defined rules yield their original relation; undefined rules yield
// policy(name). The result is cached, so policy runs at most once per RuleInfo.
func (r *RuleInfo) Materialize(name string, policy DefaultPolicy) pdx.Relation {
	if r.materialized != nil {
		return *r.materialized
	}

	var rel pdx.Relation
	if r.Original != nil {
		rel = *r.Original
	} else {
		rel = policy(name)
	}
	r.materialized = &rel
	return rel
}

// IsMaterialized reports whether Materialize has run.
func (r *RuleInfo) IsMaterialized() bool {
	return r.materialized != nil
}

// IsDefault reports whether the rule has no parsed definition.
func (r *RuleInfo) IsDefault() bool {
	return r.Original == nil
}

// ResolvedRules is the rule table of one (directory, extension) query.
//
// It is built in an accumulating phase and queried after FinishInit. It is
// not safe for concurrent use.
type ResolvedRules struct {
	policy    DefaultPolicy
	queryPath string

	names       []string
	rules       map[string]*RuleInfo
	initialized bool

	logger zerolog.Logger
}

// NewResolvedRules returns an empty table in the accumulating phase.
func NewResolvedRules(queryPath string, policy DefaultPolicy) *ResolvedRules {
	if policy == nil {
		policy = RuleEquals
	}
	return &ResolvedRules{
		policy:    policy,
		queryPath: queryPath,
		rules:     make(map[string]*RuleInfo),
		logger:    logging.GetLogger("rules.resolved").With().Str("query", queryPath).Logger(),
	}
}

func lifecycleViolation(op string, initialized bool) *errors.PatchlingError {
	phase := "accumulating"
	if initialized {
		phase = "initialized"
	}
	return errors.Newf(errors.ErrLifecycle, "%s called while resolved rules are %s", op, phase).
		WithDetail("operation", op).
		WithDetail("initialized", initialized)
}

// AddRuleFromSources registers the definition of name from data root origin.
// The first definition of a name wins; later ones are ignored.
//
// It panics once FinishInit has been called.
func (r *ResolvedRules) AddRuleFromSources(origin int, name string, rel pdx.Relation) {
	if r.initialized {
		panic(lifecycleViolation("AddRuleFromSources", true))
	}

	if existing, ok := r.rules[name]; ok {
		r.logger.Trace().
			Str("rule", name).
			Int("origin", existing.Origin).
			Int("ignored_root", origin).
			Msg("Rule already defined, ignoring later definition")
		return
	}

	r.insert(name, &RuleInfo{Origin: origin, Original: &rel})
}

// FinishInit ends the accumulating phase. It panics if called twice.
func (r *ResolvedRules) FinishInit() {
	if r.initialized {
		panic(lifecycleViolation("FinishInit", true))
	}
	r.initialized = true
	r.logger.Debug().Int("rules", len(r.names)).Msg("Resolved rules initialized")
}

// IsInitialized reports whether FinishInit has been called.
func (r *ResolvedRules) IsInitialized() bool {
	return r.initialized
}

// GetRule returns the RuleInfo of name, creating an undefined entry with the
// given origin if no data root defined it.
//
// It panics before FinishInit.
func (r *ResolvedRules) GetRule(origin int, name string) *RuleInfo {
	if !r.initialized {
		panic(lifecycleViolation("GetRule", false))
	}

	if info, ok := r.rules[name]; ok {
		return info
	}
	info := &RuleInfo{Origin: origin}
	r.insert(name, info)
	return info
}

// Get returns the materialized rule name.
//
// It panics before FinishInit.
func (r *ResolvedRules) Get(name string) Rule {
	info := r.GetRule(NoOrigin, name)
	return Rule{
		Name:     name,
		Relation: info.Materialize(name, r.policy),
		Origin:   info.Origin,
	}
}

// All returns every known rule materialized, in the order names were first
// seen.
//
// It panics before FinishInit.
func (r *ResolvedRules) All() []Rule {
	if !r.initialized {
		panic(lifecycleViolation("All", false))
	}
	out := make([]Rule, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.Get(name))
	}
	return out
}

// Names returns the known rule names in the order they were first seen.
func (r *ResolvedRules) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of known rules.
func (r *ResolvedRules) Len() int {
	return len(r.names)
}

// QueryPath returns the directory the rules were resolved from.
func (r *ResolvedRules) QueryPath() string {
	return r.queryPath
}

// Policy returns the default policy of the table.
func (r *ResolvedRules) Policy() DefaultPolicy {
	return r.policy
}

func (r *ResolvedRules) insert(name string, info *RuleInfo) {
	r.names = append(r.names, name)
	r.rules[name] = info
}
