// Package sandbox executes a single LLM-authored DAGNode function body
// under a restricted, allowlisted Go environment. It is the only place
// in this repository that runs code it did not write itself.
package sandbox

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// forbiddenSelectors names trailing selector identifiers that are never
// permitted regardless of receiver, mirroring the source contract's
// dunder-attribute and exec/eval/open bans translated to Go's closest
// equivalents (process control, filesystem, and reflection escapes).
var forbiddenSelectors = map[string]bool{
	"Exit":      true,
	"Remove":    true,
	"RemoveAll": true,
	"Command":   true,
	"Open":      true,
	"Create":    true,
	"Chmod":     true,
}

// forbiddenPackages names identifiers that, when used as a package
// selector (pkg.Symbol), are rejected outright even though import
// statements are already banned — belt-and-suspenders against a
// yaegi symbol table misconfiguration exposing them.
var forbiddenPackages = map[string]bool{
	"os":      true,
	"exec":    true,
	"unsafe":  true,
	"reflect": true,
	"syscall": true,
	"net":     true,
	"io":      true,
	"ioutil":  true,
	"os_exec": true,
}

// Scanner performs the safety scan over a node's Go source: a single
// function definition that must not import anything, must not reference
// a forbidden package or selector, and must not spawn goroutines or use
// channels.
type Scanner struct{}

// NewScanner returns a Scanner. It carries no state; a single value may
// be reused across calls and across goroutines.
func NewScanner() *Scanner { return &Scanner{} }

// Scan parses code as a Go source file body and walks its AST, returning
// one issue string per offending construct, each naming the construct
// and the 1-based source line it occurred on. A nil/empty result means
// the scan passed.
func (s *Scanner) Scan(code string) []string {
	file, fset, err := parseNode(code)
	if err != nil {
		return []string{fmt.Sprintf("line 0: code does not parse: %v", err)}
	}

	var issues []string
	addf := func(pos token.Pos, format string, args ...any) {
		line := fset.Position(pos).Line
		issues = append(issues, fmt.Sprintf("line %d: %s", line, fmt.Sprintf(format, args...)))
	}

	for _, imp := range file.Imports {
		addf(imp.Pos(), "import declaration %s not permitted", imp.Path.Value)
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.GoStmt:
			addf(v.Pos(), "go statement not permitted")
		case *ast.ChanType:
			addf(v.Pos(), "channel type not permitted")
		case *ast.SelectStmt:
			addf(v.Pos(), "select statement not permitted")
		case *ast.SelectorExpr:
			if pkg, ok := v.X.(*ast.Ident); ok {
				if forbiddenPackages[pkg.Name] {
					addf(v.Pos(), "reference to package %q not permitted", pkg.Name)
				}
			}
			if forbiddenSelectors[v.Sel.Name] {
				addf(v.Pos(), "call to %q not permitted", v.Sel.Name)
			}
			if isDunder(v.Sel.Name) {
				addf(v.Pos(), "dunder-style identifier %q not permitted", v.Sel.Name)
			}
		case *ast.CallExpr:
			if ident, ok := v.Fun.(*ast.Ident); ok && forbiddenCalls[ident.Name] {
				addf(v.Pos(), "call to %q not permitted", ident.Name)
			}
		case *ast.Ident:
			if isDunder(v.Name) {
				addf(v.Pos(), "dunder-style identifier %q not permitted", v.Name)
			}
		}
		return true
	})

	return issues
}

// forbiddenCalls names bare-identifier calls banned regardless of
// package. Go has no builtin counterpart of the source's exec/eval/open/
// compile/globals/locals/vars/dir/delattr/setattr list, so no entry is
// set to true; panic is listed only to record that it is allowed.
var forbiddenCalls = map[string]bool{
	"panic": false, // panic is allowed; recovered by the sandbox caller.
}

// isDunder reports whether name begins and ends with a double underscore,
// the Go realization of the source's dunder-attribute ban. Go identifiers
// rarely take this shape, but the scan still rejects it defensively.
func isDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// parseNode parses code as the body of a Go source file. Callers are
// expected to pass exactly one function declaration; code is wrapped in
// a synthetic package clause so it parses as a complete file.
func parseNode(code string) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	src := "package sandboxnode\n\n" + code
	file, err := parser.ParseFile(fset, "node.go", src, parser.ParseComments)
	return file, fset, err
}

// FunctionName returns the name of the single function declared in code,
// and false if code does not parse as exactly one function declaration
// (invariant 7 of GeneratedDAG in the data model).
func FunctionName(code string) (string, bool) {
	file, _, err := parseNode(code)
	if err != nil {
		return "", false
	}
	var fn *ast.FuncDecl
	count := 0
	for _, decl := range file.Decls {
		if f, ok := decl.(*ast.FuncDecl); ok {
			fn = f
			count++
		}
	}
	if count != 1 || fn == nil {
		return "", false
	}
	return fn.Name.Name, true
}

// ParamNames returns the declared parameter names of the single function
// in code, in declaration order, used by the sandbox to bind
// resolved_inputs by name since Go has no native keyword-call syntax.
func ParamNames(code string) ([]string, bool) {
	file, _, err := parseNode(code)
	if err != nil {
		return nil, false
	}
	var fn *ast.FuncDecl
	for _, decl := range file.Decls {
		if f, ok := decl.(*ast.FuncDecl); ok {
			fn = f
			break
		}
	}
	if fn == nil {
		return nil, false
	}
	var names []string
	for _, field := range fn.Type.Params.List {
		if len(field.Names) == 0 {
			names = append(names, "_")
			continue
		}
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
	}
	return names, true
}
