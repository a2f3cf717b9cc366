// Package mods loads patchling mod descriptors and lists the files a mod
// contributes.
//
// A mod is a directory holding a mod.toml descriptor:
//
//	id = "better_ships"
//	game = "stellaris"
//	name = "Better Ships"
//	copy_dirs = ["gfx", "localisation"]
//	source_dirs = ["src"]
//	lib_dirs = ["lib"]
//
// Directories are relative to the mod directory. Copy directories hold files
// copied verbatim into the compiled mod; source directories hold mod scripts;
// library directories are added to the script search path.
package mods
