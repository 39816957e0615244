package config

import "strings"

// Version is reported by `tntc version`.
const Version = "0.3.0"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".tnt", ".qnt"}

// HasSourceExt checks if a path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// ProjectFileName is the optional per-project configuration file.
const ProjectFileName = "tntc.yaml"

// Opcodes the parser desugars operators and special forms into.
const (
	OpAdd       = "iadd"
	OpSub       = "isub"
	OpMul       = "imul"
	OpDiv       = "idiv"
	OpMod       = "imod"
	OpPow       = "ipow"
	OpNeg       = "iuminus"
	OpLt        = "ilt"
	OpGt        = "igt"
	OpLte       = "ilte"
	OpGte       = "igte"
	OpEq        = "eq"
	OpNeq       = "neq"
	OpAnd       = "and"
	OpOr        = "or"
	OpIff       = "iff"
	OpImplies   = "implies"
	OpIte       = "ite"
	OpAssign    = "assign"
	OpNext      = "next"
	OpRecord    = "Rec"
	OpTuple     = "Tup"
	OpList      = "List"
	OpActionAll = "actionAll"
	OpActionAny = "actionAny"
	OpMatch     = "unionMatch"
)

// Opcodes lists every opcode produced by the parser.
var Opcodes = []string{
	OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpNeg,
	OpLt, OpGt, OpLte, OpGte, OpEq, OpNeq,
	OpAnd, OpOr, OpIff, OpImplies, OpIte,
	OpAssign, OpNext, OpRecord, OpTuple, OpList,
	OpActionAll, OpActionAny, OpMatch,
}

// BuiltinOperators are the library operators every module can reference
// without defining them.
var BuiltinOperators = []string{
	// logic
	"not", "exists", "forall", "guarantees",
	// sets
	"Set", "Nat", "Int", "Bool", "in", "contains", "notin", "union", "intersect",
	"exclude", "subseteq", "filter", "map", "fold", "powerset", "flatten",
	"allLists", "chooseSome", "oneOf", "isFinite", "size", "to",
	// maps and records
	"get", "put", "keys", "mapOf", "mapBy", "setOfMaps", "update", "updateAs",
	"fields", "with", "field", "item", "tuples",
	// lists
	"append", "concat", "head", "tail", "length", "nth", "indices",
	"replaceAt", "slice", "select", "foldl", "foldr", "range",
	// temporal and actions
	"always", "eventually", "stutter", "nostutter", "enabled", "weakFair",
	"strongFair", "orKeep", "mustChange", "unchanged",
	// constants
	"existsConst", "forallConst", "chooseConst",
}
