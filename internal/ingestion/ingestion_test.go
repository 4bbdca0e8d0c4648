package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("Built REST APIs using Python."), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	text, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Built REST APIs using Python." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	odd := filepath.Join(dir, "resume.rtf")
	for path, content := range map[string]string{empty: "  \n", odd: "text"} {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	if _, err := ReadFile(empty); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	var unsupported *UnsupportedFormatError
	if _, err := ReadFile(odd); !errors.As(err, &unsupported) || unsupported.Ext != ".rtf" {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadKeepsGoingOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte("Python"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	docs := Load([]string{filepath.Join(dir, "missing.txt"), good})
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Err == nil {
		t.Fatalf("expected error for missing document")
	}
	if docs[1].Err != nil || docs[1].Name != "good.txt" || docs[1].Text != "Python" {
		t.Fatalf("unexpected document %+v", docs[1])
	}
}

func TestXMLToText(t *testing.T) {
	t.Parallel()

	xml := `<w:body><w:p><w:r><w:t>Experience</w:t></w:r></w:p><w:p><w:r><w:t>Built APIs in Go &amp; SQL</w:t><w:tab/><w:t>2021</w:t></w:r></w:p></w:body>`

	got := xmlToText(xml)
	expect := "Experience\nBuilt APIs in Go & SQL 2021"
	if got != expect {
		t.Fatalf("expected %q, got %q", expect, got)
	}
}

func TestExpandDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.txt", "notes.rtf", "c.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.txt"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	single := filepath.Join(dir, "notes.rtf")

	got, err := Expand([]string{dir, single})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "c.docx"),
		single,
	}
	if len(got) != len(expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
	for i := range expect {
		if got[i] != expect[i] {
			t.Fatalf("expected %v, got %v", expect, got)
		}
	}

	if _, err := Expand([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
