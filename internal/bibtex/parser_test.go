package bibtex

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleEntry = `@article{Smith2020DL,
  author = {Smith, John},
  title = {Deep Learning for Signal Processing},
  journal = {IEEE Transactions},
  year = {2020}
}`

func TestParse_SingleEntry(t *testing.T) {
	entries := Parse(sampleEntry)
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Type != "article" {
		t.Errorf("Type = %q, want article", e.Type)
	}
	if e.Key != "Smith2020DL" {
		t.Errorf("Key = %q, want Smith2020DL", e.Key)
	}
	if got := e.Field("author"); got != "Smith, John" {
		t.Errorf("author = %q, want Smith, John", got)
	}
	if got := e.Field("journal"); got != "IEEE Transactions" {
		t.Errorf("journal = %q, want IEEE Transactions", got)
	}
	if got := e.Year(); got != "2020" {
		t.Errorf("year = %q, want 2020", got)
	}
}

func TestParse_RawIsVerbatim(t *testing.T) {
	src := "junk before\n" + sampleEntry + "\njunk after\n"
	entries := Parse(src)
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if entries[0].Raw != sampleEntry {
		t.Errorf("Raw not preserved verbatim:\ngot:  %q\nwant: %q", entries[0].Raw, sampleEntry)
	}
}

func TestParse_QuotedFieldValues(t *testing.T) {
	src := `@book{Key1,
  title = "A Quoted Title",
  publisher = {Springer},
  year = "2021"
}`
	entries := Parse(src)
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if got := entries[0].Field("title"); got != "A Quoted Title" {
		t.Errorf("title = %q, want A Quoted Title", got)
	}
	if got := entries[0].Year(); got != "2021" {
		t.Errorf("year = %q, want 2021", got)
	}
}

func TestParse_FieldNamesCaseFolded(t *testing.T) {
	src := `@article{Key1,
  AUTHOR = {Doe, Jane},
  Title = {Mixed Case Fields},
  YEAR = {2022}
}`
	entries := Parse(src)
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if got := entries[0].Field("author"); got != "Doe, Jane" {
		t.Errorf("author = %q, want Doe, Jane", got)
	}
	if got := entries[0].Field("title"); got != "Mixed Case Fields" {
		t.Errorf("title = %q, want Mixed Case Fields", got)
	}
}

func TestParse_MultilineFieldValue(t *testing.T) {
	src := `@article{Key1,
  author = {Smith, John and
            Doe, Jane},
  year = {2020}
}`
	entries := Parse(src)
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	want := "Smith, John and\n            Doe, Jane"
	if got := entries[0].Field("author"); got != want {
		t.Errorf("author = %q, want %q", got, want)
	}
}

func TestParse_NoRecognizableFields(t *testing.T) {
	src := `@misc{OrphanKey,
just some free text with no assignments
}`
	entries := Parse(src)
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if entries[0].Key != "OrphanKey" {
		t.Errorf("Key = %q, want OrphanKey", entries[0].Key)
	}
	if len(entries[0].Fields) != 0 {
		t.Errorf("Fields = %v, want empty map", entries[0].Fields)
	}
}

func TestParse_MalformedBlocksSkipped(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"empty input", "", 0},
		{"plain text", "this is not bibtex at all", 0},
		{"missing key comma", "@article{NoComma\n  year = {2020}\n}", 0},
		{"valid among garbage", "%%% noise\n" + sampleEntry + "\n@broken{", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.src); len(got) != tt.want {
				t.Errorf("Parse() returned %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParse_MultipleEntries(t *testing.T) {
	src := sampleEntry + "\n\n" + `@book{Jones2021,
  author = {Jones, Mary},
  title = {A Book},
  publisher = {MIT Press},
  year = {2021}
}`
	entries := Parse(src)
	if len(entries) != 2 {
		t.Fatalf("Parse() returned %d entries, want 2", len(entries))
	}
	if entries[0].Key != "Smith2020DL" || entries[1].Key != "Jones2021" {
		t.Errorf("keys = %q, %q; want Smith2020DL, Jones2021", entries[0].Key, entries[1].Key)
	}
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.bib")
	if err := os.WriteFile(path, []byte(sampleEntry+"\n"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	entries, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ParseFile() returned %d entries, want 1", len(entries))
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile("/nonexistent/file.bib"); err == nil {
		t.Error("ParseFile() expected error for missing file")
	}
}

func TestField_AbsentIsEmpty(t *testing.T) {
	e := Entry{Type: "article", Key: "K", Fields: map[string]string{}}
	if got := e.Field("journal"); got != "" {
		t.Errorf("Field(journal) = %q, want empty", got)
	}
}
