// Package compiler assembles a patchling compilation: the game data
// directory, the mods being compiled and the rules manager layering them.
//
// A compilation is configured through a Builder:
//
//	c, err := compiler.NewBuilder(types.Stellaris).
//		GameData("/games/Stellaris").
//		Mod("mods/better_ships").
//		Build()
//
// The vanilla game data is always the first data root; mods follow in the
// order they were added. When a ScriptHost is set the rules manager is
// registered with it under the module name "rules".
package compiler
