package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csbailey5t/winnow/internal/config"
	"github.com/csbailey5t/winnow/internal/stats"
)

// writeCorpusDir lays out a small on-disk corpus and returns its path.
func writeCorpusDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	docs := map[string]string{
		"AndresenRuth_interview.txt": "Ruth Andresen Oral History\n\nDate: 1998\n\nthe cat sat on the mat",
		"BakerJohn_interview.txt":    "John Baker Oral History\n\nDate: 1999\n\nthe dog sat near the cat",
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	return dir
}

func TestOutputFormatString(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{Table, "Table"},
		{CSV, "CSV"},
		{JSON, "JSON"},
		{OutputFormat(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("OutputFormat(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestBuildCorpusSplitsDocuments(t *testing.T) {
	dir := writeCorpusDir(t)

	cfg := Config{
		Sources:  []string{dir},
		Pipeline: config.Default(),
		Quiet:    true,
	}

	c, err := BuildCorpus(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildCorpus() error = %v", err)
	}

	if c.Len() != 2 {
		t.Fatalf("corpus length = %d, want 2", c.Len())
	}

	doc := c.Documents[0]
	if doc.ID != "AndresenRuth_interview.txt" {
		t.Errorf("first document ID = %q, want AndresenRuth_interview.txt", doc.ID)
	}
	if doc.SeriesTitle != "Ruth Andresen Oral History" {
		t.Errorf("series title = %q", doc.SeriesTitle)
	}
	if doc.FrontMatter != "Date: 1998" {
		t.Errorf("front matter = %q", doc.FrontMatter)
	}
	if doc.Body != "the cat sat on the mat" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestBuildCorpusNoSources(t *testing.T) {
	_, err := BuildCorpus(context.Background(), Config{Quiet: true})
	if err == nil {
		t.Error("expected error for empty source list")
	}
}

func TestBuildCorpusExclusions(t *testing.T) {
	dir := writeCorpusDir(t)

	pipeline := config.Default()
	pipeline.ExcludedDocumentIDs = []string{"BakerJohn_interview.txt"}

	cfg := Config{
		Sources:  []string{dir},
		Pipeline: pipeline,
		Quiet:    true,
	}

	c, err := BuildCorpus(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildCorpus() error = %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("corpus length = %d, want 1", c.Len())
	}
	if c.Documents[0].ID != "AndresenRuth_interview.txt" {
		t.Errorf("remaining document = %q", c.Documents[0].ID)
	}
}

func TestTokenizeCorpusFiltersNames(t *testing.T) {
	dir := writeCorpusDir(t)

	pipeline := config.Default()
	pipeline.DeriveNames = true
	pipeline.ExtraStopwords = []string{"mat"}

	cfg := Config{
		Sources:  []string{dir},
		Pipeline: pipeline,
		Quiet:    true,
	}

	c, err := BuildCorpus(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildCorpus() error = %v", err)
	}

	tokens, err := tokenizeCorpus(c, cfg)
	if err != nil {
		t.Fatalf("tokenizeCorpus() error = %v", err)
	}

	for _, tok := range tokens {
		switch tok.Term {
		case "the", "on":
			t.Errorf("stopword %q survived filtering", tok.Term)
		case "ruth", "andresen", "john", "baker":
			t.Errorf("derived name %q survived filtering", tok.Term)
		case "mat":
			t.Errorf("extra stopword %q survived filtering", tok.Term)
		}
	}
}

func TestTermsTopN(t *testing.T) {
	dir := writeCorpusDir(t)

	cfg := Config{
		Sources:  []string{dir},
		Pipeline: config.Default(),
		Format:   CSV,
		TopN:     1,
		Quiet:    true,
	}

	out, err := Terms(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header plus one row per document
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3\noutput:\n%s", len(lines), out)
	}
	if lines[0] != "document,term,count" {
		t.Errorf("header = %q", lines[0])
	}
	// stopwords filtered; remaining counts all tie at 1, so the
	// lexicographically first term wins in each document
	if !strings.HasPrefix(lines[1], "AndresenRuth_interview.txt,cat,") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestTopCounts(t *testing.T) {
	counts := []stats.TermCount{
		{DocID: "a", Term: "x", Count: 1},
		{DocID: "a", Term: "y", Count: 3},
		{DocID: "a", Term: "z", Count: 3},
		{DocID: "b", Term: "w", Count: 2},
	}

	got := topCounts(counts, 2)
	want := []stats.TermCount{
		{DocID: "a", Term: "y", Count: 3},
		{DocID: "a", Term: "z", Count: 3},
		{DocID: "b", Term: "w", Count: 2},
	}

	if len(got) != len(want) {
		t.Fatalf("result length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopRecordsTieBreak(t *testing.T) {
	records := []stats.Record{
		{DocID: "a", Term: "zed", TFIDF: 0.5},
		{DocID: "a", Term: "apple", TFIDF: 0.5},
		{DocID: "a", Term: "mid", TFIDF: 0.2},
	}

	got := topRecords(records, 1)
	if len(got) != 1 {
		t.Fatalf("result length = %d, want 1", len(got))
	}
	if got[0].Term != "apple" {
		t.Errorf("kept term = %q, want apple (lexicographic tie-break)", got[0].Term)
	}
}

func TestTopRecordsUnlimited(t *testing.T) {
	records := []stats.Record{
		{DocID: "a", Term: "x", TFIDF: 0.5},
		{DocID: "a", Term: "y", TFIDF: 0.1},
	}
	if got := topRecords(records, 0); len(got) != 2 {
		t.Errorf("topN=0 should keep all records, got %d", len(got))
	}
}

func TestMatrixJSON(t *testing.T) {
	dir := writeCorpusDir(t)

	cfg := Config{
		Sources:  []string{dir},
		Pipeline: config.Default(),
		Format:   JSON,
		Quiet:    true,
	}

	out, err := Matrix(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	if !strings.Contains(out, `"docs"`) || !strings.Contains(out, `"terms"`) {
		t.Errorf("JSON matrix missing keys:\n%s", out)
	}
}

func TestRankDocsRequiresQuery(t *testing.T) {
	_, err := RankDocs(context.Background(), Config{Sources: []string{"x"}, Quiet: true})
	if err == nil {
		t.Error("expected error for empty query")
	}
}

func TestRankDocsOrdersByRelevance(t *testing.T) {
	dir := writeCorpusDir(t)

	cfg := Config{
		Sources:  []string{dir},
		Pipeline: config.Default(),
		Format:   CSV,
		Query:    "mat",
		Quiet:    true,
	}

	out, err := RankDocs(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RankDocs() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least a header and one row:\n%s", out)
	}
	// "mat" only appears in the Andresen document
	if !strings.HasPrefix(lines[1], "AndresenRuth_interview.txt,") {
		t.Errorf("top ranked = %q, want AndresenRuth_interview.txt first", lines[1])
	}
}

func TestSurveyGroupBy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.csv")
	csvData := "region,score\nnorth,2\nnorth,4\nsouth,10\n"
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	out, err := Survey(Config{Format: CSV, Quiet: true}, path, SurveyOptions{GroupBy: "region"})
	if err != nil {
		t.Fatalf("Survey() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3\noutput:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "north,2,3.000000") {
		t.Errorf("north row = %q, want mean 3.000000", lines[1])
	}
	if !strings.HasPrefix(lines[2], "south,1,10.000000") {
		t.Errorf("south row = %q, want mean 10.000000", lines[2])
	}
}

func TestSurveyFilterThenTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.csv")
	csvData := "region,score\nnorth,2\nnorth,4\nsouth,10\n"
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	out, err := Survey(Config{Format: CSV, Quiet: true}, path, SurveyOptions{
		FilterColumn: "score",
		FilterOp:     ">",
		FilterValue:  "3",
	})
	if err != nil {
		t.Fatalf("Survey() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("filtered line count = %d, want 3\noutput:\n%s", len(lines), out)
	}
}

func TestRenderRecordsTable(t *testing.T) {
	records := []stats.Record{
		{DocID: "a.txt", Term: "cat", Count: 2, TF: 0.5, DF: 0.5, TFIDF: 0.346574},
	}

	out, err := renderRecords(records, Table)
	if err != nil {
		t.Fatalf("renderRecords() error = %v", err)
	}
	if !strings.Contains(out, "document") || !strings.Contains(out, "cat") {
		t.Errorf("table output missing expected content:\n%s", out)
	}
}
