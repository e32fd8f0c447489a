package language

// Shared pattern fragments.
const (
	dqString      = `"(?:[^"\\\n]|\\.)*"`
	sqString      = `'(?:[^'\\\n]|\\.)*'`
	btString      = "`[^`]*`"
	tripleString  = `"""[\s\S]*?"""`
	slashComment  = `//.*$`
	starComment   = `/\*[\s\S]*?\*/`
	hashComment   = `#.*$`
	dashComment   = `--.*$`
	number        = `\b(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|\d[\d_]*(?:\.\d[\d_]*)?(?:[eE][+-]?\d+)?)\b`
	atAnnotation  = `@\w+`
	upperType     = `\b[A-Z][A-Za-z0-9_]*\b`
	braceIncrease = `[{(\[]\s*(?://.*|/\*.*)?$`
	braceDecrease = `^[}\])]`

	// Control-flow headers shared by the C family.
	cIf     = `^\s*(?:\}\s*)?(?:if|else)\b`
	cLoop   = `^\s*(?:for|while|do)\b`
	cSwitch = `^\s*switch\b`
	cTry    = `^\s*(?:\}\s*)?(?:try|catch|finally)\b`
)

func slashBlockComment() *DelimiterDef {
	return &DelimiterDef{Start: `/\*`, End: `\*/`}
}

func braceIndent(size int, tabs bool) IndentDef {
	return IndentDef{
		Size:     size,
		UseTabs:  tabs,
		TabWidth: 4,
		Increase: []string{braceIncrease},
		Decrease: []string{braceDecrease},
	}
}

// Builtin returns the definitions of the languages that ship with codeintel.
func Builtin() []Definition {
	return []Definition{
		swiftDef(),
		pythonDef(),
		goDef(),
		javascriptDef(),
		typescriptDef(),
		rustDef(),
		cDef(),
		cppDef(),
		javaDef(),
		kotlinDef(),
		rubyDef(),
		luaDef(),
		shellDef(),
		applescriptDef(),
	}
}

const swiftModifiers = `(?:(?:public|private|fileprivate|internal|open|static|class|final|override|mutating|nonmutating|convenience|required|lazy|dynamic|indirect|nonisolated|@\w+(?:\([^)]*\))?)\s+)*`

func swiftDef() Definition {
	return Definition{
		ID:         "swift",
		Name:       "Swift",
		Extensions: []string{"swift"},
		Keywords: []string{
			"actor", "as", "associatedtype", "async", "await", "break", "case", "catch",
			"class", "continue", "default", "defer", "deinit", "do", "else", "enum",
			"extension", "fallthrough", "false", "fileprivate", "final", "for", "func",
			"guard", "if", "import", "in", "init", "inout", "internal", "is", "lazy",
			"let", "mutating", "nil", "open", "operator", "override", "private",
			"protocol", "public", "repeat", "rethrows", "return", "self", "Self",
			"some", "static", "struct", "subscript", "super", "switch", "throw",
			"throws", "true", "try", "typealias", "var", "weak", "where", "while",
		},
		Strings:      []string{tripleString, dqString},
		Comments:     []string{slashComment, starComment},
		Numbers:      []string{number},
		Annotations:  []string{atAnnotation, `#\w+`},
		Types:        []string{upperType},
		LineComment:  "//",
		BlockComment: slashBlockComment(),
		Import:       `^\s*(?:@testable\s+)?import\s+\S`,
		FoldStyle:    "brace",
		Headers: []HeaderDef{
			{Pattern: `^\s*` + swiftModifiers + `(?:func\s+[^\s(<]+|init[?!]?\s*[(<]|deinit\b|subscript\s*[(<])`, Kind: "function"},
			{Pattern: `^\s*` + swiftModifiers + `(?:class|actor)\s+\w+`, Kind: "class"},
			{Pattern: `^\s*` + swiftModifiers + `struct\s+\w+`, Kind: "struct"},
			{Pattern: `^\s*` + swiftModifiers + `enum\s+\w+`, Kind: "enum"},
			{Pattern: `^\s*` + swiftModifiers + `protocol\s+\w+`, Kind: "protocol"},
			{Pattern: `^\s*` + swiftModifiers + `extension\s+\w+`, Kind: "extension"},
			{Pattern: `^\s*(?:\}\s*)?(?:if|else|guard)\b`, Kind: "conditional"},
			{Pattern: `^\s*(?:for|while|repeat)\b`, Kind: "loop"},
			{Pattern: `^\s*switch\b`, Kind: "switch"},
			{Pattern: `^\s*(?:\}\s*)?(?:do|catch)\b`, Kind: "block"},
		},
		Indent: IndentDef{
			Size:     4,
			TabWidth: 4,
			Increase: []string{braceIncrease, `^\s*(?:case\b.*|default\s*):\s*$`},
			Decrease: []string{braceDecrease, `^(?:case\b|default\s*:)`},
		},
	}
}

func pythonDef() Definition {
	const colonEnd = `.*:\s*(?:#.*)?$`
	return Definition{
		ID:         "python",
		Name:       "Python",
		Aliases:    []string{"py", "python3"},
		Extensions: []string{"py", "pyw", "pyi"},
		Keywords: []string{
			"False", "None", "True", "and", "as", "assert", "async", "await", "break",
			"case", "class", "continue", "def", "del", "elif", "else", "except",
			"finally", "for", "from", "global", "if", "import", "in", "is", "lambda",
			"match", "nonlocal", "not", "or", "pass", "raise", "return", "try",
			"while", "with", "yield",
		},
		Strings: []string{
			`[rRbBuUfF]{0,2}"""[\s\S]*?"""`,
			`[rRbBuUfF]{0,2}'''[\s\S]*?'''`,
			`[rRbBuUfF]{0,2}` + dqString,
			`[rRbBuUfF]{0,2}` + sqString,
		},
		Comments:     []string{hashComment},
		Numbers:      []string{number},
		Annotations:  []string{`^\s*@[\w.]+`},
		Types:        []string{upperType},
		Extras:       []ExtraDef{{Token: "keyword", Pattern: `\bself\b`}},
		LineComment:  "#",
		BlockComment: &DelimiterDef{Start: `"""|'''`, End: `"""|'''`},
		Import:       `^\s*(?:import|from)\s+\S`,
		FoldStyle:    "indentation",
		Headers: []HeaderDef{
			{Pattern: `^\s*(?:async\s+)?def\s+\w+`, Kind: "function"},
			{Pattern: `^\s*class\s+\w+`, Kind: "class"},
			{Pattern: `^\s*(?:if|elif|else)\b` + colonEnd, Kind: "conditional"},
			{Pattern: `^\s*(?:async\s+)?(?:for|while)\b` + colonEnd, Kind: "loop"},
			{Pattern: `^\s*(?:try|except|finally)\b` + colonEnd, Kind: "block"},
			{Pattern: `^\s*(?:async\s+)?with\b` + colonEnd, Kind: "block"},
			{Pattern: `^\s*match\b` + colonEnd, Kind: "switch"},
		},
		Indent: IndentDef{
			Size:             4,
			TabWidth:         4,
			Increase:         []string{`:\s*(?:#.*)?$`, `\{\s*(?:#.*)?$`},
			Decrease:         []string{`^(?:elif|else|except|finally)\b.*:\s*(?:#.*)?$`, braceDecrease},
			AlignWithOpening: true,
			Continuation:     4,
		},
	}
}

func goDef() Definition {
	return Definition{
		ID:         "go",
		Name:       "Go",
		Aliases:    []string{"golang"},
		Extensions: []string{"go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer", "else",
			"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
			"map", "package", "range", "return", "select", "struct", "switch", "type",
			"var", "nil", "true", "false", "iota",
		},
		Strings:      []string{dqString, btString, `'(?:[^'\\\n]|\\.)+'`},
		Comments:     []string{slashComment, starComment},
		Numbers:      []string{number},
		Types:        []string{`\b(?:bool|byte|complex64|complex128|error|float32|float64|int|int8|int16|int32|int64|rune|string|uint|uint8|uint16|uint32|uint64|uintptr|any)\b`, upperType},
		LineComment:  "//",
		BlockComment: slashBlockComment(),
		Import:       `^\s*import\b`,
		FoldStyle:    "brace",
		Headers: []HeaderDef{
			{Pattern: `^\s*import\s*\(\s*$`, Kind: "import", Style: "keyword", Terminators: []string{")"}},
			{Pattern: `^\s*(?:const|var|type)\s*\(\s*$`, Kind: "block", Style: "keyword", Terminators: []string{")"}},
			{Pattern: `^\s*func\b`, Kind: "function"},
			{Pattern: `^\s*type\s+\w+(?:\[[^\]]*\])?\s+struct\b`, Kind: "struct"},
			{Pattern: `^\s*type\s+\w+(?:\[[^\]]*\])?\s+interface\b`, Kind: "protocol"},
			{Pattern: `^\s*(?:\}\s*)?(?:if|else)\b`, Kind: "conditional"},
			{Pattern: `^\s*for\b`, Kind: "loop"},
			{Pattern: `^\s*(?:switch|select)\b`, Kind: "switch"},
		},
		Indent: braceIndent(4, true),
	}
}

func javascriptDef() Definition {
	return Definition{
		ID:         "javascript",
		Name:       "JavaScript",
		Aliases:    []string{"js", "node"},
		Extensions: []string{"js", "mjs", "cjs", "jsx"},
		Keywords: []string{
			"async", "await", "break", "case", "catch", "class", "const", "continue",
			"debugger", "default", "delete", "do", "else", "export", "extends",
			"false", "finally", "for", "from", "function", "if", "import", "in",
			"instanceof", "let", "new", "null", "of", "return", "static", "super",
			"switch", "this", "throw", "true", "try", "typeof", "undefined", "var",
			"void", "while", "with", "yield",
		},
		Strings:      []string{dqString, sqString, btString},
		Comments:     []string{slashComment, starComment},
		Numbers:      []string{number},
		Annotations:  []string{atAnnotation},
		Types:        []string{upperType},
		Extras:       []ExtraDef{{Token: "regex", Pattern: jsRegex}},
		LineComment:  "//",
		BlockComment: slashBlockComment(),
		Import:       `^\s*(?:import\b|(?:const|let|var)\s+.*=\s*require\()`,
		FoldStyle:    "brace",
		Headers:      jsHeaders(),
		Indent:       braceIndent(2, false),
	}
}

const jsRegex = `(?<![\w)\]$])/(?![*/])(?:[^/\\\n\[]|\\.|\[(?:[^\]\\\n]|\\.)*\])+/[dgimsuy]*`

func jsHeaders() []HeaderDef {
	return []HeaderDef{
		{Pattern: `^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\b`, Kind: "function"},
		{Pattern: `^\s*(?:export\s+)?(?:const|let|var)\s+[\w$]+\s*(?::[^=]+)?=\s*(?:async\s*)?(?:function\b|(?:\([^)]*\)|[\w$]+)\s*(?::\s*[^=]+)?=>)`, Kind: "function"},
		{Pattern: `^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\b`, Kind: "class"},
		{Pattern: `^\s*(?:export\s+)?interface\s+\w+`, Kind: "protocol"},
		{Pattern: `^\s*(?:export\s+)?(?:const\s+)?enum\s+\w+`, Kind: "enum"},
		{Pattern: `^\s*(?:export\s+)?(?:declare\s+)?(?:namespace|module)\s+\S+`, Kind: "block"},
		{Pattern: cIf, Kind: "conditional"},
		{Pattern: cLoop, Kind: "loop"},
		{Pattern: cSwitch, Kind: "switch"},
		{Pattern: cTry, Kind: "block"},
		{Pattern: `^\s*(?!(?:if|for|while|switch|catch|with|return|function)\b)(?:(?:public|private|protected|static|async|get|set|readonly|override)\s+)*[A-Za-z_$][\w$]*\s*\([^)]*\)\s*(?::\s*[^={]+)?\{\s*$`, Kind: "function"},
	}
}

func typescriptDef() Definition {
	d := javascriptDef()
	d.ID = "typescript"
	d.Name = "TypeScript"
	d.Aliases = []string{"ts"}
	d.Extensions = []string{"ts", "tsx", "mts", "cts"}
	d.Keywords = append(d.Keywords,
		"abstract", "as", "declare", "enum", "implements", "interface", "keyof",
		"namespace", "private", "protected", "public", "readonly", "type",
	)
	d.Types = []string{`\b(?:any|boolean|never|number|object|string|symbol|unknown|bigint)\b`, upperType}
	return d
}

func rustDef() Definition {
	const vis = `^\s*(?:pub(?:\([^)]*\))?\s+)?`
	return Definition{
		ID:         "rust",
		Name:       "Rust",
		Aliases:    []string{"rs"},
		Extensions: []string{"rs"},
		Keywords: []string{
			"as", "async", "await", "break", "const", "continue", "crate", "dyn",
			"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in", "let",
			"loop", "match", "mod", "move", "mut", "pub", "ref", "return", "self",
			"Self", "static", "struct", "super", "trait", "true", "type", "unsafe",
			"use", "where", "while",
		},
		Strings:      []string{`b?r#*"[\s\S]*?"#*`, dqString},
		Comments:     []string{slashComment, starComment},
		Numbers:      []string{number},
		Annotations:  []string{`#!?\[[^\]]*\]`, `\b\w+!`},
		Types:        []string{upperType, `\b(?:[iu](?:8|16|32|64|128|size)|f32|f64|bool|char|str)\b`},
		LineComment:  "//",
		BlockComment: slashBlockComment(),
		Import:       vis + `use\s+`,
		FoldStyle:    "brace",
		Headers: []HeaderDef{
			{Pattern: vis + `(?:(?:const|async|unsafe|extern(?:\s+"[^"]*")?)\s+)*fn\s+\w+`, Kind: "function"},
			{Pattern: vis + `struct\s+\w+`, Kind: "struct"},
			{Pattern: vis + `enum\s+\w+`, Kind: "enum"},
			{Pattern: vis + `(?:unsafe\s+)?trait\s+\w+`, Kind: "protocol"},
			{Pattern: `^\s*(?:unsafe\s+)?impl\b`, Kind: "extension"},
			{Pattern: vis + `mod\s+\w+`, Kind: "block"},
			{Pattern: `^\s*(?:\}\s*)?(?:if|else)\b`, Kind: "conditional"},
			{Pattern: `^\s*(?:for|while|loop)\b`, Kind: "loop"},
			{Pattern: `^\s*match\b`, Kind: "switch"},
		},
		Indent: braceIndent(4, false),
	}
}

const cFunction = `^\s*(?!(?:if|for|while|switch|else|return|do|case|sizeof|new|delete)\b)[\w:*&<>,~\s]+?\b[\w:~]+\s*\([^;]*\)\s*(?:const\s*)?(?:noexcept\s*)?(?:override\s*)?\{?\s*$`

func cDef() Definition {
	return Definition{
		ID:         "c",
		Name:       "C",
		Aliases:    []string{"h"},
		Extensions: []string{"c", "h"},
		Keywords: []string{
			"auto", "break", "case", "char", "const", "continue", "default", "do",
			"double", "else", "enum", "extern", "float", "for", "goto", "if", "inline",
			"int", "long", "register", "restrict", "return", "short", "signed",
			"sizeof", "static", "struct", "switch", "typedef", "union", "unsigned",
			"void", "volatile", "while", "NULL",
		},
		Strings:      []string{dqString, sqString},
		Comments:     []string{slashComment, starComment},
		Numbers:      []string{number + `[uUlLfF]*`},
		Annotations:  []string{`^\s*#\s*\w+`},
		Types:        []string{`\b\w+_t\b`, upperType},
		Extras:       []ExtraDef{{Token: "path", Pattern: `(?<=#\s*include\s*)<[^>\n]+>`}},
		LineComment:  "//",
		BlockComment: slashBlockComment(),
		Import:       `^\s*#\s*include\b`,
		FoldStyle:    "brace",
		Headers: []HeaderDef{
			{Pattern: `^\s*(?:typedef\s+)?struct\b`, Kind: "struct"},
			{Pattern: `^\s*(?:typedef\s+)?union\b`, Kind: "struct"},
			{Pattern: `^\s*(?:typedef\s+)?enum\b`, Kind: "enum"},
			{Pattern: cIf, Kind: "conditional"},
			{Pattern: cLoop, Kind: "loop"},
			{Pattern: cSwitch, Kind: "switch"},
			{Pattern: cFunction, Kind: "function"},
		},
		Indent: braceIndent(4, false),
	}
}

func cppDef() Definition {
	d := cDef()
	d.ID = "cpp"
	d.Name = "C++"
	d.Aliases = []string{"c++", "cxx"}
	d.Extensions = []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"}
	d.Keywords = append(d.Keywords,
		"bool", "catch", "class", "constexpr", "delete", "explicit", "false",
		"friend", "namespace", "new", "noexcept", "nullptr", "operator", "override",
		"private", "protected", "public", "template", "this", "throw", "true",
		"try", "typename", "using", "virtual",
	)
	d.Headers = append([]HeaderDef{
		{Pattern: `^\s*(?:template\s*<[^>]*>\s*)?class\s+\w+`, Kind: "class"},
		{Pattern: `^\s*namespace\b`, Kind: "block"},
		{Pattern: cTry, Kind: "block"},
	}, d.Headers...)
	return d
}

func javaDef() Definition {
	const mods = `^\s*(?:(?:public|private|protected|static|final|abstract|sealed|synchronized|native|default|strictfp)\s+)*`
	return Definition{
		ID:         "java",
		Name:       "Java",
		Extensions: []string{"java"},
		Keywords: []string{
			"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
			"class", "const", "continue", "default", "do", "double", "else", "enum",
			"extends", "false", "final", "finally", "float", "for", "if", "implements",
			"import", "instanceof", "int", "interface", "long", "native", "new", "null",
			"package", "private", "protected", "public", "record", "return", "short",
			"static", "super", "switch", "synchronized", "this", "throw", "throws",
			"true", "try", "var", "void", "volatile", "while",
		},
		Strings:      []string{tripleString, dqString, sqString},
		Comments:     []string{slashComment, starComment},
		Numbers:      []string{number + `[lLfFdD]?`},
		Annotations:  []string{atAnnotation},
		Types:        []string{upperType},
		LineComment:  "//",
		BlockComment: slashBlockComment(),
		Import:       `^\s*import\s+`,
		FoldStyle:    "brace",
		Headers: []HeaderDef{
			{Pattern: mods + `(?:class|record)\s+\w+`, Kind: "class"},
			{Pattern: mods + `@?interface\s+\w+`, Kind: "protocol"},
			{Pattern: mods + `enum\s+\w+`, Kind: "enum"},
			{Pattern: cIf, Kind: "conditional"},
			{Pattern: cLoop, Kind: "loop"},
			{Pattern: cSwitch, Kind: "switch"},
			{Pattern: cTry, Kind: "block"},
			{Pattern: mods + `(?!(?:if|for|while|switch|catch|return|new|else)\b)(?:<[^>]+>\s+)?[\w<>\[\],.?\s]+\s+\w+\s*\([^;]*\)\s*(?:throws\s+[\w.,\s]+)?\{?\s*$`, Kind: "function"},
		},
		Indent: braceIndent(4, false),
	}
}

func kotlinDef() Definition {
	const mods = `^\s*(?:(?:public|private|protected|internal|open|abstract|sealed|final|override|data|inline|value|inner|enum|annotation|suspend|operator|infix|tailrec|companion|expect|actual)\s+)*`
	return Definition{
		ID:         "kotlin",
		Name:       "Kotlin",
		Aliases:    []string{"kt"},
		Extensions: []string{"kt", "kts"},
		Keywords: []string{
			"as", "break", "class", "continue", "do", "else", "false", "for", "fun",
			"if", "in", "interface", "is", "null", "object", "package", "return",
			"super", "this", "throw", "true", "try", "typealias", "val", "var", "when",
			"while", "by", "catch", "constructor", "finally", "import", "init",
			"override", "private", "public", "sealed", "data", "companion",
		},
		Strings:      []string{tripleString, dqString, sqString},
		Comments:     []string{slashComment, starComment},
		Numbers:      []string{number + `[lLfFuU]?`},
		Annotations:  []string{atAnnotation},
		Types:        []string{upperType},
		LineComment:  "//",
		BlockComment: slashBlockComment(),
		Import:       `^\s*import\s+`,
		FoldStyle:    "brace",
		Headers: []HeaderDef{
			{Pattern: mods + `fun\b`, Kind: "function"},
			{Pattern: `^\s*(?:(?:public|private|protected|internal)\s+)?enum\s+class\s+\w+`, Kind: "enum"},
			{Pattern: mods + `(?:class|object)\b`, Kind: "class"},
			{Pattern: mods + `interface\s+\w+`, Kind: "protocol"},
			{Pattern: `^\s*(?:\}\s*)?(?:if|else)\b`, Kind: "conditional"},
			{Pattern: cLoop, Kind: "loop"},
			{Pattern: `^\s*when\b`, Kind: "switch"},
			{Pattern: cTry, Kind: "block"},
		},
		Indent: braceIndent(4, false),
	}
}

func rubyDef() Definition {
	const doBlock = `\bdo\s*(?:\|[^|]*\|)?\s*$`
	return Definition{
		ID:         "ruby",
		Name:       "Ruby",
		Aliases:    []string{"rb"},
		Extensions: []string{"rb", "rake", "gemspec"},
		Keywords: []string{
			"BEGIN", "END", "alias", "and", "begin", "break", "case", "class", "def",
			"defined?", "do", "else", "elsif", "end", "ensure", "false", "for", "if",
			"in", "module", "next", "nil", "not", "or", "redo", "rescue", "retry",
			"return", "self", "super", "then", "true", "undef", "unless", "until",
			"when", "while", "yield", "require", "attr_accessor", "attr_reader",
		},
		Strings:      []string{dqString, sqString},
		Comments:     []string{hashComment, `^=begin[\s\S]*?^=end`},
		Numbers:      []string{number},
		Annotations:  []string{`:\w+`, `@{1,2}\w+`},
		Types:        []string{upperType},
		LineComment:  "#",
		BlockComment: &DelimiterDef{Start: `^=begin`, End: `^=end`},
		Import:       `^\s*require(?:_relative)?\b`,
		FoldStyle:    "keyword",
		Terminators:  []string{"end"},
		Headers: []HeaderDef{
			{Pattern: `^\s*def\s+`, Kind: "function"},
			{Pattern: `^\s*class\b`, Kind: "class"},
			{Pattern: `^\s*module\s+`, Kind: "extension"},
			{Pattern: `^\s*(?:if|unless)\b`, Kind: "conditional"},
			{Pattern: `^\s*(?:while|until|for)\b`, Kind: "loop"},
			{Pattern: `^\s*case\b`, Kind: "switch"},
			{Pattern: `^\s*begin\s*$`, Kind: "block"},
			{Pattern: doBlock, Kind: "block"},
		},
		Indent: IndentDef{
			Size:     2,
			TabWidth: 2,
			Increase: []string{
				`^\s*(?:def|class|module|if|unless|while|until|for|case|begin|else|elsif|when|rescue|ensure)\b`,
				doBlock,
				braceIncrease,
			},
			Decrease: []string{`^(?:end|else|elsif|when|rescue|ensure)\b`, braceDecrease},
		},
	}
}

func luaDef() Definition {
	return Definition{
		ID:         "lua",
		Name:       "Lua",
		Extensions: []string{"lua"},
		Keywords: []string{
			"and", "break", "do", "else", "elseif", "end", "false", "for", "function",
			"goto", "if", "in", "local", "nil", "not", "or", "repeat", "return",
			"then", "true", "until", "while",
		},
		Strings:      []string{`\[(=*)\[[\s\S]*?\]\1\]`, dqString, sqString},
		Comments:     []string{`--\[(=*)\[[\s\S]*?\]\1\]`, dashComment},
		Numbers:      []string{number},
		LineComment:  "--",
		BlockComment: &DelimiterDef{Start: `--\[=*\[`, End: `\]=*\]`},
		Import:       `^\s*(?:local\s+\w+\s*=\s*)?require\b`,
		FoldStyle:    "keyword",
		Terminators:  []string{"end"},
		Headers: []HeaderDef{
			{Pattern: `^\s*(?:local\s+)?function\b`, Kind: "function"},
			{Pattern: `^\s*(?:local\s+)?[\w.:]+\s*=\s*function\b`, Kind: "function"},
			{Pattern: `^\s*if\b.*\bthen\s*$`, Kind: "conditional"},
			{Pattern: `^\s*(?:for|while)\b.*\bdo\s*$`, Kind: "loop"},
			{Pattern: `^\s*repeat\s*$`, Kind: "loop", Terminators: []string{"until"}},
			{Pattern: `^\s*do\s*$`, Kind: "block"},
		},
		Indent: IndentDef{
			Size:     2,
			TabWidth: 2,
			Increase: []string{
				`\b(?:then|do)\s*$`,
				`\bfunction\b[^)]*\)\s*$`,
				`^\s*(?:else|repeat)\s*$`,
				braceIncrease,
			},
			Decrease: []string{`^(?:end|else|elseif|until)\b`, braceDecrease},
		},
	}
}

func shellDef() Definition {
	return Definition{
		ID:         "shell",
		Name:       "Shell",
		Aliases:    []string{"sh", "bash", "zsh"},
		Extensions: []string{"sh", "bash", "zsh", "ksh"},
		Keywords: []string{
			"if", "then", "else", "elif", "fi", "case", "esac", "for", "while",
			"until", "do", "done", "in", "function", "return", "local", "export",
			"readonly", "declare", "break", "continue", "exit", "source", "set",
			"unset", "shift", "trap",
		},
		Strings:     []string{dqString, `'[^'\n]*'`},
		Comments:    []string{`(?<![\w$])#.*$`},
		Numbers:     []string{`\b\d+\b`},
		Annotations: []string{`\$\{[^}\n]*\}`, `\$[\w@#?*!$-]`},
		Extras: []ExtraDef{
			{Token: "path", Pattern: `(?<![\w$])(?:~|\.{1,2})?/[\w.+~@%/-]+`},
		},
		LineComment: "#",
		Import:      `^\s*(?:source|\.)\s+\S`,
		FoldStyle:   "keyword",
		Headers: []HeaderDef{
			{Pattern: `^\s*(?:function\s+[\w:-]+(?:\s*\(\s*\))?|[\w:-]+\s*\(\s*\))\s*\{?\s*$`, Kind: "function", Style: "brace"},
			{Pattern: `^\s*if\b`, Kind: "conditional", Terminators: []string{"fi"}},
			{Pattern: `^\s*(?:for|while|until)\b`, Kind: "loop", Terminators: []string{"done"}},
			{Pattern: `^\s*case\b`, Kind: "switch", Terminators: []string{"esac"}},
		},
		Indent: IndentDef{
			Size:     2,
			TabWidth: 2,
			Increase: []string{
				`\b(?:then|do)\s*$`,
				`^\s*else\s*$`,
				`\bin\s*$`,
				`\{\s*$`,
			},
			Decrease: []string{`^(?:fi|done|esac|else|elif)\b`, `^\}`},
		},
	}
}

func applescriptDef() Definition {
	return Definition{
		ID:              "applescript",
		Name:            "AppleScript",
		Aliases:         []string{"osascript"},
		Extensions:      []string{"applescript", "scpt"},
		CaseInsensitive: true,
		Keywords: []string{
			"about", "above", "after", "against", "and", "apart from", "around", "as",
			"aside from", "at", "back", "before", "beginning", "behind", "below",
			"beneath", "beside", "between", "but", "by", "considering", "contain",
			"contains", "continue", "copy", "div", "does", "eighth", "else", "end",
			"equal", "equals", "error", "every", "exit", "false", "fifth", "first",
			"for", "fourth", "from", "front", "get", "given", "global", "if",
			"ignoring", "in", "instead of", "into", "is", "it", "its", "last",
			"local", "me", "middle", "mod", "my", "ninth", "not", "of", "on", "onto",
			"or", "out of", "over", "prop", "property", "put", "ref", "reference",
			"repeat", "return", "returning", "script", "second", "set", "seventh",
			"since", "sixth", "some", "tell", "tenth", "that", "the", "then", "third",
			"through", "thru", "timeout", "times", "to", "transaction", "true", "try",
			"until", "use", "where", "while", "whose", "with", "without",
		},
		Strings:      []string{dqString},
		Comments:     []string{`--.*$`, `#.*$`, `\(\*[\s\S]*?\*\)`},
		Numbers:      []string{number},
		LineComment:  "--",
		BlockComment: &DelimiterDef{Start: `\(\*`, End: `\*\)`},
		Import:       `^\s*use\s+`,
		FoldStyle:    "keyword",
		Terminators:  []string{"end"},
		Headers: []HeaderDef{
			{Pattern: `^\s*(?:on|to)\s+\w+`, Kind: "function"},
			{Pattern: `^\s*tell\b(?!.*\bto\b)`, Kind: "block", Terminators: []string{"end tell"}},
			{Pattern: `^\s*if\b.*\bthen\s*$`, Kind: "conditional", Terminators: []string{"end if"}},
			{Pattern: `^\s*repeat\b`, Kind: "loop", Terminators: []string{"end repeat"}},
			{Pattern: `^\s*try\s*$`, Kind: "block", Terminators: []string{"end try"}},
			{Pattern: `^\s*script\b`, Kind: "class", Terminators: []string{"end script"}},
		},
		Indent: IndentDef{
			Size:     4,
			TabWidth: 4,
			UseTabs:  true,
			Increase: []string{
				`^\s*(?:on|to)\s+\w+`,
				`^\s*tell\b(?!.*\bto\b)`,
				`\bthen\s*$`,
				`^\s*(?:else|repeat|try|on\s+error|script)\b`,
			},
			Decrease: []string{`^(?:end|else|on\s+error)\b`},
		},
	}
}
