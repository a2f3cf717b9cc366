// Package rules resolves rule definitions contributed by an ordered list of
// data roots (the base game followed by mods) into one queryable rule set.
//
// # Data Roots
//
// A DataRoot is one directory tree of game data. Roots are registered on a
// RulesManager in priority order, vanilla first:
//
//	m := rules.NewRulesManager(types.Stellaris, fsys)
//	m.AddDataRoot(rules.Vanilla("/games/Stellaris"))
//	m.AddDataRoot(rules.ModData("my_mod", "/mods/my_mod"))
//
// # Resolution
//
// GetResolver scans `<root>/<directory>` of every root for files ending in
// extension, parses them, and folds every top-level relation into a
// ResolvedRules keyed by the relation tag. The first root to define a name
// claims it; later definitions of the same name are ignored. Resolvers are
// cached per (directory, extension).
//
// # Lifecycle
//
// ResolvedRules has two phases. While accumulating, AddRuleFromSources
// registers definitions; FinishInit switches it to the initialized phase,
// where GetRule and Get answer queries. Calling an operation in the wrong
// phase is a programming error and panics with an ErrLifecycle error.
//
// # Defaults
//
// Querying a name no root defined yields a default relation synthesized by
// the resolver's DefaultPolicy. The value exposed for a rule is materialized
// at most once.
package rules
