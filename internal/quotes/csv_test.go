package quotes

import (
	"strings"
	"testing"
)

func TestParseWellFormedDocument(t *testing.T) {
	doc := strings.Join([]string{
		"id,text,author,tags",
		"q1,First quote,Alice,funny",
		"q2,Second quote,,",
		"q3,Third quote,Bob,\"savage, funny\"",
	}, "\n")

	got, err := ParseCSV(doc)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(got))
	}

	// Row order is preserved.
	for i, wantID := range []string{"q1", "q2", "q3"} {
		if got[i].ID != wantID {
			t.Errorf("quote %d ID = %q, want %q", i, got[i].ID, wantID)
		}
	}

	// Optional fields are absent when empty.
	if got[1].Author != "" {
		t.Errorf("q2 author = %q, want empty", got[1].Author)
	}
	if got[1].Tags != nil {
		t.Errorf("q2 tags = %v, want nil", got[1].Tags)
	}

	// Tags are split, trimmed, lowercased.
	if len(got[2].Tags) != 2 || got[2].Tags[0] != "savage" || got[2].Tags[1] != "funny" {
		t.Errorf("q3 tags = %v, want [savage funny]", got[2].Tags)
	}
}

func TestParseRejectsBadRows(t *testing.T) {
	doc := strings.Join([]string{
		"id,text,author",
		"q1,Keep me,",
		",Missing id,",
		"q2,,",
		"q1,Duplicate id wins nothing,",
		"   ",
		"q3,Also kept,",
	}, "\n")

	got, err := ParseCSV(doc)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 accepted rows, got %d", len(got))
	}
	if got[0].ID != "q1" || got[0].Text != "Keep me" {
		t.Errorf("first row = %+v, want q1/Keep me", got[0])
	}
	if got[1].ID != "q3" {
		t.Errorf("second row ID = %q, want q3", got[1].ID)
	}
}

func TestParseQuotedCommas(t *testing.T) {
	doc := strings.Join([]string{
		"id,text,author",
		`id1,"hello, world","a,b"`,
	}, "\n")

	got, err := ParseCSV(doc)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(got))
	}
	if got[0].Text != "hello, world" {
		t.Errorf("text = %q, want %q", got[0].Text, "hello, world")
	}
	if got[0].Author != "a,b" {
		t.Errorf("author = %q, want %q", got[0].Author, "a,b")
	}
}

func TestParseHeaderCaseAndQuotes(t *testing.T) {
	doc := strings.Join([]string{
		`"ID","Text","AUTHOR"`,
		"q1,Works fine,Carol",
	}, "\n")

	got, err := ParseCSV(doc)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(got) != 1 || got[0].Author != "Carol" {
		t.Errorf("got %+v, want one quote by Carol", got)
	}
}

func TestParseMissingRequiredColumns(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no id column", "text,author\nhello,world"},
		{"no text column", "id,author\nq1,world"},
		{"empty document", ""},
		{"header only", "id,text"},
		{"all rows rejected", "id,text\n,missing\nq1,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCSV(tt.doc); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSplitFieldsEscapedQuote(t *testing.T) {
	// An escaped quote does not toggle the in-quotes state.
	fields := splitFields(`id1,"she said \"hi\", twice",x`)
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %v", len(fields), fields)
	}
	if !strings.Contains(fields[1], "twice") {
		t.Errorf("quoted field split on escaped quote: %v", fields)
	}
}

func TestShareText(t *testing.T) {
	withAuthor := ShareText(Quote{Text: "hi", Author: "Ann"})
	if withAuthor != "\"hi\" — Ann" {
		t.Errorf("ShareText = %q", withAuthor)
	}
	noAuthor := ShareText(Quote{Text: "hi"})
	if noAuthor != "\"hi\"" {
		t.Errorf("ShareText without author = %q", noAuthor)
	}
}

func TestHasTag(t *testing.T) {
	q := Quote{Tags: []string{"nsfw", "funny"}}
	if !q.HasTag("NSFW") {
		t.Error("HasTag should match case-insensitively")
	}
	if q.HasTag("savage") {
		t.Error("HasTag matched an absent tag")
	}
}
