package bibtex

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitRecordsSkipsCommentsAndBlanks(t *testing.T) {
	bib := `
% library export 2020-06-01
@ARTICLE{Watterson2015,
author = "Watterson, G. A.",
title = "On the number of segregating sites",
journal = "Theor. Popul. Biol.",
year = 2015,
}

% trailing comment
@BOOK{Nei1987,
title = "Molecular Evolutionary Genetics",
publisher = "Columbia Univ. Press",
year = 1987,
}
`
	chunks := SplitRecords(bib)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks got %d: %+v", len(chunks), chunks)
	}
	// Lines join with no separator; comments and blanks vanish.
	if !strings.HasPrefix(chunks[0], "@ARTICLE{Watterson2015,") || strings.Contains(chunks[0], "%") {
		t.Fatalf("unexpected chunk0: %q", chunks[0])
	}
	if !strings.HasPrefix(chunks[1], "@BOOK{Nei1987,") || !strings.HasSuffix(chunks[1], "}") {
		t.Fatalf("unexpected chunk1: %q", chunks[1])
	}

	// Stripping the comment and blank lines by hand must not change the split.
	var kept []string
	for _, line := range strings.Split(bib, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "%") {
			continue
		}
		kept = append(kept, line)
	}
	bare := SplitRecords(strings.Join(kept, "\n"))
	if len(bare) != len(chunks) {
		t.Fatalf("stripped input split differs: %+v vs %+v", bare, chunks)
	}
	for i := range bare {
		if bare[i] != chunks[i] {
			t.Fatalf("chunk %d differs: %q vs %q", i, bare[i], chunks[i])
		}
	}
}

func TestSplitRecordsEmptyAndCommentOnly(t *testing.T) {
	if got := SplitRecords(""); len(got) != 0 {
		t.Fatalf("empty input: expected 0 chunks got %+v", got)
	}
	if got := SplitRecords("% only a comment\n\n  \n% another\n"); len(got) != 0 {
		t.Fatalf("comment-only input: expected 0 chunks got %+v", got)
	}
}

func TestSplitRecordsPreambleBecomesChunk(t *testing.T) {
	chunks := SplitRecords("stray text before any record\n@misc{k}\n")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks got %+v", chunks)
	}
	if _, err := Decode(chunks[0]); err == nil {
		t.Fatalf("expected decode error for preamble chunk %q", chunks[0])
	}
	if _, err := Decode(chunks[1]); err != nil {
		t.Fatalf("decode record chunk: %v", err)
	}
}

func TestDecodeKeepsFieldOrderAndQuotedCommas(t *testing.T) {
	bib := `@ARTICLE{Watterson2015,
author = "Watterson, G. A.",
title = "On the number of segregating sites",
journal = "Theor. Popul. Biol.",
year = 2015,
}`
	chunks := SplitRecords(bib)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk got %+v", chunks)
	}
	rec, err := Decode(chunks[0])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Type != "ARTICLE" || rec.Key != "Watterson2015" {
		t.Fatalf("unexpected head: %+v", rec)
	}
	want := Fields{
		{Name: "author", Value: `"Watterson, G. A."`},
		{Name: "title", Value: `"On the number of segregating sites"`},
		{Name: "journal", Value: `"Theor. Popul. Biol."`},
		{Name: "year", Value: "2015"},
	}
	if len(rec.Fields) != len(want) {
		t.Fatalf("expected %d fields got %+v", len(want), rec.Fields)
	}
	for i, f := range rec.Fields {
		if f != want[i] {
			t.Fatalf("field %d: got %+v want %+v", i, f, want[i])
		}
	}
}

func TestDecodeValueSpanningLinesJoinsWithoutBreak(t *testing.T) {
	bib := "@book{k2,\ntitle = \"A Very\nLong Title\",\n}\n"
	chunks := SplitRecords(bib)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk got %+v", chunks)
	}
	rec, err := Decode(chunks[0])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The splitter concatenates lines, so the break inside the value is lost.
	if got, _ := rec.Fields.Get("title"); got != `"A VeryLong Title"` {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestDecodeKeyOnlyRecord(t *testing.T) {
	rec, err := Decode("@misc{solo}")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Type != "misc" || rec.Key != "solo" || len(rec.Fields) != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	rec, err = Decode("@misc{solo,}")
	if err != nil || rec.Key != "solo" || len(rec.Fields) != 0 {
		t.Fatalf("trailing comma variant: rec=%+v err=%v", rec, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name  string
		chunk string
		want  string
	}{
		{"no marker", "article{k,}", "missing record marker"},
		{"no brace", "@articlek,}", "missing '{'"},
		{"empty type", "@{k,}", "empty entry type"},
		{"unclosed body", "@article{k,", "not closed"},
		{"empty key", `@article{,title = "T",}`, "empty citation key"},
		{"missing key", "@article{}", "empty citation key"},
		{"no equals", "@article{k,garbage}", "no '=' value"},
		{"duplicate field", `@article{k,title = "A",title = "B",}`, `duplicate field "title"`},
		{"empty field name", `@article{k, = "v",}`, "empty field name"},
	}
	for _, c := range cases {
		_, err := Decode(c.chunk)
		if err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("%s: expected DecodeError got %T", c.name, err)
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: error %q missing %q", c.name, err, c.want)
		}
	}
}

func TestDecodeErrorSnippetTruncates(t *testing.T) {
	chunk := "article{" + strings.Repeat("x", 200)
	_, err := Decode(chunk)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "...") || len(err.Error()) > 120 {
		t.Fatalf("expected truncated snippet, got %q", err.Error())
	}
}

func TestEncodeCanonical(t *testing.T) {
	rec := Record{Type: "article", Key: "a1", Fields: Fields{
		{Name: "title", Value: `"Alpha"`},
		{Name: "year", Value: "2001"},
	}}
	want := "@article{a1,\ntitle = \"Alpha\",\nyear = 2001,\n}"
	if got := Encode(rec); got != want {
		t.Fatalf("encode mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestEncodeNoFields(t *testing.T) {
	if got := Encode(Record{Type: "misc", Key: "solo"}); got != "@misc{solo,\n}" {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	src := "@article{a1,\ntitle = \"Alpha\",\nyear = 2001,\n}"
	chunks := SplitRecords(src)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk got %+v", chunks)
	}
	rec, err := Decode(chunks[0])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := Encode(rec); got != src {
		t.Fatalf("round trip mismatch:\ngot  %q\nwant %q", got, src)
	}
}

func TestDecodeEqualsSignInsideValueParsesWrong(t *testing.T) {
	// A '=' inside a value is outside the grammar. The parse is deterministic
	// but wrong, and not an error.
	rec, err := Decode(`@misc{k,note = "a=b",}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Fields{
		{Name: "note", Value: ""},
		{Name: `"a`, Value: `b"`},
	}
	if len(rec.Fields) != 2 || rec.Fields[0] != want[0] || rec.Fields[1] != want[1] {
		t.Fatalf("unexpected fields: %+v", rec.Fields)
	}
}
