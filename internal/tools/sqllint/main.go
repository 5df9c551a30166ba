package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	sqlMarkerPattern  = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with)\b`)
	uuidMarkerPattern = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

type violation struct {
	file    string
	name    string
	line    int
	message string
}

// seen tracks where each marker was first declared. Markers identify a query
// in the SQL runner logs, so two constants sharing one is an error.
type seen map[string]violation

func main() {
	flag.Parse()
	targets := flag.Args()
	if len(targets) == 0 {
		targets = []string{"internal/sqlinline"}
	}

	violations, err := lintTargets(targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
		os.Exit(1)
	}
	if len(violations) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, "sqllint: SQL audit marker violations")
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "  %s:%d %s (%s)\n", v.file, v.line, v.message, v.name)
	}
	os.Exit(1)
}

// lintTargets checks every Go file under the given files or directories,
// sharing one marker registry so duplicates are caught across files.
func lintTargets(targets []string) ([]violation, error) {
	markers := seen{}
	var out []violation
	for _, target := range targets {
		files, err := goFiles(target)
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			vs, err := lintFile(path, markers)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
	}
	return out, nil
}

func goFiles(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if filepath.Ext(target) != ".go" {
			return nil, nil
		}
		return []string{target}, nil
	}
	var files []string
	err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir() && path != target && (strings.HasPrefix(d.Name(), ".") || d.Name() == "vendor"):
			return filepath.SkipDir
		case !d.IsDir() && filepath.Ext(path) == ".go" && !strings.HasSuffix(path, "_test.go"):
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func lintFile(path string, markers seen) ([]violation, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	var violations []violation
	ast.Inspect(file, func(n ast.Node) bool {
		vs, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for _, value := range vs.Values {
			bl, ok := value.(*ast.BasicLit)
			if !ok || bl.Kind != token.STRING {
				continue
			}
			raw, err := unquote(bl.Value)
			if err != nil {
				continue
			}
			if !sqlMarkerPattern.MatchString(raw) {
				continue
			}
			marker := firstLine(raw)
			v := violation{
				file: path,
				line: fset.Position(bl.Pos()).Line,
				name: joinNames(vs.Names),
			}
			if !uuidMarkerPattern.MatchString(marker) {
				v.message = "missing or invalid --sql <uuid> marker"
				violations = append(violations, v)
				continue
			}
			if first, dup := markers[marker]; dup {
				v.message = fmt.Sprintf("marker reused, first declared at %s:%d (%s)", first.file, first.line, first.name)
				violations = append(violations, v)
				continue
			}
			markers[marker] = v
		}
		return true
	})
	return violations, nil
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if len(v) == 0 {
		return v, nil
	}
	if v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}

func joinNames(idents []*ast.Ident) string {
	parts := make([]string, 0, len(idents))
	for _, ident := range idents {
		if ident == nil {
			continue
		}
		parts = append(parts, ident.Name)
	}
	return strings.Join(parts, ",")
}
