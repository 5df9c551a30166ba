package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLintFileFlagsMissingMarker(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "q.go", "package q\n\nconst QBad = `\nselect 1;\n`\n\nconst QGood = `\n--sql 0b8f7f5e-1c2a-4d4e-9a51-3f1e2c7b9d10\nselect 1;\n`\n\nconst Label = \"not a query\"\n")

	vs, err := lintFile(path, seen{})
	if err != nil {
		t.Fatalf("lintFile error: %v", err)
	}
	if len(vs) != 1 {
		t.Fatalf("violations = %+v, want 1", vs)
	}
	if vs[0].name != "QBad" || vs[0].line != 3 {
		t.Fatalf("unexpected violation %+v", vs[0])
	}
}

func TestLintFileFlagsDuplicateMarkersAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	const q = "`\n--sql 0b8f7f5e-1c2a-4d4e-9a51-3f1e2c7b9d10\nselect 1;\n`"
	first := writeSource(t, dir, "a.go", "package q\n\nconst QOne = "+q+"\n")
	second := writeSource(t, dir, "b.go", "package q\n\nconst QTwo = "+q+"\n")

	markers := seen{}
	if vs, err := lintFile(first, markers); err != nil || len(vs) != 0 {
		t.Fatalf("first file: violations=%+v err=%v", vs, err)
	}
	vs, err := lintFile(second, markers)
	if err != nil {
		t.Fatalf("lintFile error: %v", err)
	}
	if len(vs) != 1 || vs[0].name != "QTwo" || !strings.Contains(vs[0].message, "QOne") {
		t.Fatalf("unexpected violations %+v", vs)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("\n  --sql abc  \nselect"); got != "--sql abc" {
		t.Fatalf("firstLine = %q", got)
	}
}

func TestLintTargetsWalksDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.go", "package q\n\nconst QOne = `\n--sql 0b8f7f5e-1c2a-4d4e-9a51-3f1e2c7b9d10\nselect 1;\n`\n")
	writeSource(t, dir, "b.go", "package q\n\nconst QTwo = `\ndelete from t;\n`\n")
	writeSource(t, dir, "b_test.go", "package q\n\nconst QIgnored = `\nselect 2;\n`\n")

	vs, err := lintTargets([]string{dir})
	if err != nil {
		t.Fatalf("lintTargets error: %v", err)
	}
	if len(vs) != 1 || vs[0].name != "QTwo" {
		t.Fatalf("unexpected violations %+v", vs)
	}
}

func TestLintTargetsMissingPath(t *testing.T) {
	if _, err := lintTargets([]string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatalf("expected error for missing target")
	}
}
