package simple

import (
	"fmt"

	"github.com/yaklabco/codelint/pkg/engine"
)

// semanticModel holds the resolved view the rules operate on. It is
// built per analysis and never shared across goroutines.
type semanticModel struct {
	text   string
	tokens []token
	decls  []declaration
}

type declaration struct {
	name   string
	kind   string // var, let, const, function, class
	offset int
}

var declKeywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true, "class": true,
}

// redeclarable reports whether duplicate top-level bindings of this
// kind are an error. var and function hoist and may legally repeat.
func redeclarable(kind string) bool {
	return kind == "var" || kind == "function"
}

func buildModel(text string, tokens []token) (*semanticModel, []*engine.AnalysisError) {
	model := &semanticModel{text: text, tokens: tokens}

	for i := 0; i+1 < len(tokens); i++ {
		tok := tokens[i]
		if tok.kind != tokenWord || tok.depth != 0 || !declKeywords[tok.text] {
			continue
		}
		name := tokens[i+1]
		if name.kind != tokenWord || declKeywords[name.text] {
			continue
		}
		model.decls = append(model.decls, declaration{name: name.text, kind: tok.text, offset: name.offset})
	}

	var errs []*engine.AnalysisError
	seen := make(map[string]declaration)
	for _, decl := range model.decls {
		prev, ok := seen[decl.name]
		if !ok {
			seen[decl.name] = decl
			continue
		}
		if redeclarable(prev.kind) && redeclarable(decl.kind) {
			continue
		}
		errs = append(errs, &engine.AnalysisError{
			Severity: engine.SeverityError,
			Code:     "no-redeclare",
			Message:  fmt.Sprintf("%q is already declared", decl.name),
			Help:     "rename one of the declarations or merge them",
			Labels: []engine.LabeledSpan{
				{Offset: prev.offset, Length: len(prev.name), Message: fmt.Sprintf("%q first declared here", prev.name)},
				{Offset: decl.offset, Length: len(decl.name), Message: "redeclared here"},
			},
		})
	}
	return model, errs
}
