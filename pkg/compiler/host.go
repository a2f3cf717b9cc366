package compiler

// RulesModule is the module name the rules manager is registered under.
const RulesModule = "rules"

// ScriptHost is the embedding scripting runtime. The compiler hands it
// modules once during Build and never calls back into it afterwards.
type ScriptHost interface {
	RegisterModule(name string, module any) error
}
