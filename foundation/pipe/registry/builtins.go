// File: builtins.go
// Title: Built-in Stage Definitions
// Description: Definitions of every stage the executor implements, grouped
//              by the value kinds they map between.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial stage set

package registry

func required(name string, typ ParamType, desc string) *ParamDefinition {
	return &ParamDefinition{Name: name, Type: typ, Required: true, Description: desc}
}

func optional(name string, typ ParamType, def, desc string) *ParamDefinition {
	p := &ParamDefinition{Name: name, Type: typ, Default: def, Description: desc}
	if typ == TypeSide {
		p.Values = []string{"head", "tail", "both"}
	}
	return p
}

func bufferStage(name, desc string, params ...*ParamDefinition) *StageDefinition {
	return &StageDefinition{Name: name, Description: desc, Input: KindBuffer, Output: KindBuffer, Params: params}
}

func arrayStage(name, desc string, out Kind, params ...*ParamDefinition) *StageDefinition {
	return &StageDefinition{Name: name, Description: desc, Input: KindArray, Output: out, Params: params}
}

// Builtins returns fresh definitions of all built-in stages
func Builtins() []*StageDefinition {
	defs := []*StageDefinition{
		// buffer -> buffer
		bufferStage("trim", "Remove leading and/or trailing runs of a character",
			optional("value", TypeChar, " ", "Character to remove"),
			optional("mode", TypeSide, "both", "Side(s) to trim")),
		bufferStage("fix", "Cut or pad to an exact length",
			required("length", TypeInt, "Target length"),
			optional("fill", TypeChar, " ", "Padding character"),
			optional("mode", TypeSide, "tail", "Side(s) to cut or pad")),
		bufferStage("reverse", "Reverse the element order"),
		bufferStage("insert", "Insert text before a position",
			required("pos", TypeInt, "Insert position"),
			required("text", TypeString, "Text to insert")),
		bufferStage("erase", "Remove elements starting at a position",
			required("pos", TypeInt, "Start position"),
			optional("count", TypeInt, "-1", "Elements to remove, negative for the rest")),
		bufferStage("replace", "Replace a range with text",
			required("pos", TypeInt, "Start position"),
			required("count", TypeInt, "Elements to replace"),
			required("text", TypeString, "Replacement text")),
		bufferStage("append", "Append text",
			required("text", TypeString, "Text to append")),
		bufferStage("prepend", "Prepend text",
			required("text", TypeString, "Text to prepend")),
		bufferStage("resize", "Set the size, padding with a character",
			required("length", TypeInt, "New size"),
			optional("fill", TypeChar, " ", "Padding character")),
		bufferStage("substr", "Take a range",
			required("pos", TypeInt, "Start position"),
			optional("count", TypeInt, "-1", "Elements to take, negative for the rest")),
		bufferStage("push", "Append a single character",
			required("char", TypeChar, "Character to append")),
		bufferStage("pop", "Remove the last element"),
		bufferStage("shrink", "Release unused capacity"),
		bufferStage("clear", "Remove all content"),

		// queries, rendered as decimal or boolean text
		bufferStage("find", "Position of the first occurrence at or after pos",
			required("needle", TypeString, "Text to search for"),
			optional("pos", TypeInt, "0", "Start position")),
		bufferStage("rfind", "Position of the last occurrence starting at or before pos",
			required("needle", TypeString, "Text to search for"),
			optional("pos", TypeInt, "-1", "Start position, negative for the end")),
		bufferStage("first_of", "Position of the first element in a set",
			required("set", TypeString, "Character set"),
			optional("pos", TypeInt, "0", "Start position")),
		bufferStage("first_not_of", "Position of the first element not in a set",
			required("set", TypeString, "Character set"),
			optional("pos", TypeInt, "0", "Start position")),
		bufferStage("last_of", "Position of the last element in a set",
			required("set", TypeString, "Character set"),
			optional("pos", TypeInt, "-1", "Start position, negative for the end")),
		bufferStage("last_not_of", "Position of the last element not in a set",
			required("set", TypeString, "Character set"),
			optional("pos", TypeInt, "-1", "Start position, negative for the end")),
		bufferStage("count", "Number of elements"),
		bufferStage("occurrences", "Number of non-overlapping occurrences",
			required("needle", TypeString, "Text to count")),
		bufferStage("compare", "Lexicographic comparison: -1, 0 or 1",
			required("text", TypeString, "Text to compare with")),
		bufferStage("starts_with", "Whether the value starts with text",
			required("text", TypeString, "Prefix")),
		bufferStage("ends_with", "Whether the value ends with text",
			required("text", TypeString, "Suffix")),
		bufferStage("contains", "Whether the value contains text",
			required("text", TypeString, "Text to search for")),

		// shape changes
		{
			Name: "split", Description: "Split at a delimiter",
			Input: KindBuffer, Output: KindArray,
			Params: []*ParamDefinition{
				optional("delim", TypeString, " ", "Delimiter"),
				optional("max", TypeInt, "-1", "Maximum number of tokens, negative for no limit"),
			},
		},
		arrayStage("join", "Concatenate elements with a separator", KindBuffer,
			optional("sep", TypeString, "", "Separator")),
		arrayStage("pick", "Select one element, negative indexes count from the end", KindBuffer,
			required("index", TypeInt, "Element index")),
		arrayStage("slice", "Take a range of elements", KindArray,
			required("pos", TypeInt, "Start index"),
			optional("count", TypeInt, "-1", "Elements to take, negative for the rest")),
		arrayStage("take", "Keep the first n elements", KindArray,
			required("n", TypeInt, "Number of elements")),
		arrayStage("drop", "Remove elements starting at an index", KindArray,
			required("pos", TypeInt, "Start index"),
			optional("count", TypeInt, "-1", "Elements to remove, negative for the rest")),
	}

	aliases := map[string][]string{
		"trim":         {"strip"},
		"fix":          {"pad"},
		"reverse":      {"rev"},
		"substr":       {"substring"},
		"count":        {"size", "length", "len"},
		"first_of":     {"find_first_of"},
		"first_not_of": {"find_first_not_of"},
		"last_of":      {"find_last_of"},
		"last_not_of":  {"find_last_not_of"},
		"pick":         {"index"},
	}

	examples := map[string][]string{
		"trim":  {`trim`, `trim value="-" mode=head`},
		"fix":   {`fix 10 "." both`},
		"split": {`split ";" max=3`},
		"join":  {`split " " | join sep=","`},
		"find":  {`find "needle"`, `find needle="ab" pos=4`},
		"pick":  {`split "," | pick -1`},
	}

	for _, d := range defs {
		d.Aliases = aliases[d.Name]
		d.Examples = examples[d.Name]
	}
	return defs
}
