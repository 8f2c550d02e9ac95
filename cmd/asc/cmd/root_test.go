package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadInputPrefersEvalExpression(t *testing.T) {
	input, label, err := readInput("int x = 1;", nil)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if input != "int x = 1;" || label != "<eval>" {
		t.Errorf("readInput() = %q, %q", input, label)
	}
}

func TestReadInputReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.as")
	if err := os.WriteFile(path, []byte("void f() {}"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	input, label, err := readInput("", []string{path})
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if input != "void f() {}" || label != path {
		t.Errorf("readInput() = %q, %q", input, label)
	}
}

func TestReadInputRejectsNeitherEvalNorFile(t *testing.T) {
	if _, _, err := readInput("", nil); err == nil {
		t.Fatal("expected an error when neither -e nor a file argument is given")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := map[string]bool{"lex": false, "parse": false, "compile": false, "disasm": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected rootCmd to register a %q subcommand", name)
		}
	}
}
