package template

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"edge-analysis/internal/models"
)

func TestScore(t *testing.T) {
	profile := models.MappingProfile{
		Columns: map[string]string{
			"Date": "Date",
			"Pair": "Pair",
		},
	}

	if got := Score([]string{"Date", "Pair"}, profile); got != 1.0 {
		t.Errorf("exact header set should score 1.0, got %v", got)
	}
	if got := Score([]string{"Alpha", "Beta"}, profile); got != 0.0 {
		t.Errorf("disjoint header set should score 0.0, got %v", got)
	}
	// 1 shared of 3 distinct headers: 1/3.
	if got := Score([]string{"Date", "Extra"}, profile); got < 0.33 || got > 0.34 {
		t.Errorf("partial overlap score = %v, want ~0.333", got)
	}
	// Case and whitespace folded.
	if got := Score([]string{" date ", "PAIR"}, profile); got != 1.0 {
		t.Errorf("folded header set should score 1.0, got %v", got)
	}
	if got := Score([]string{"Date"}, models.MappingProfile{}); got != 0.0 {
		t.Errorf("profile without columns should score 0, got %v", got)
	}
}

func TestChoose(t *testing.T) {
	profiles := []models.MappingProfile{
		{Name: "a", Columns: map[string]string{"Date": "Date"}},
		{Name: "b", Columns: map[string]string{"Date": "Date", "Pair": "Pair"}},
	}
	headers := []string{"Date", "Pair"}

	if got := Choose(headers, profiles, 0.15, ""); got == nil || got.Name != "b" {
		t.Errorf("Choose should pick the best-scoring profile, got %+v", got)
	}
	if got := Choose(headers, profiles, 0.15, "a"); got == nil || got.Name != "a" {
		t.Errorf("forced name should win, got %+v", got)
	}
	// Unknown forced name falls back to auto-choice.
	if got := Choose(headers, profiles, 0.15, "missing"); got == nil || got.Name != "b" {
		t.Errorf("unknown forced name should auto-choose, got %+v", got)
	}
	if got := Choose([]string{"X", "Y", "Z", "W", "V", "U", "T"}, profiles, 0.15, ""); got != nil {
		t.Errorf("below-threshold score should choose nothing, got %+v", got)
	}
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()

	good := `{"columns": {"Trade Date": "Date"}, "coercions": {"Closed RR": "float"}}`
	if err := os.WriteFile(filepath.Join(dir, "journal.json"), []byte(good), 0644); err != nil {
		t.Fatal(err)
	}
	// BOM-prefixed profiles must load too.
	bom := append([]byte{0xef, 0xbb, 0xbf}, []byte(`{"columns": {"Symbol": "Pair"}}`)...)
	if err := os.WriteFile(filepath.Join(dir, "export.json"), bom, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	profiles := LoadProfiles(dir, logger)
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles (bad one skipped), got %d", len(profiles))
	}
	// Sorted by file name: export.json before journal.json.
	if profiles[0].Name != "export" || profiles[1].Name != "journal" {
		t.Errorf("profile names = %q, %q", profiles[0].Name, profiles[1].Name)
	}
	if profiles[1].Coercions["Closed RR"] != "float" {
		t.Errorf("coercions not loaded: %+v", profiles[1].Coercions)
	}

	if got := LoadProfiles(filepath.Join(dir, "missing"), logger); got != nil {
		t.Errorf("missing directory should load nothing, got %v", got)
	}
}

func TestAdapt(t *testing.T) {
	profile := models.MappingProfile{
		Name: "test",
		Columns: map[string]string{
			"Trade Date": "Date",
			"Symbol":     "Pair",
			"R":          "Closed RR",
		},
		Normalizers: map[string]map[string][]string{
			"Pair": {"Gold": {"xau", "xauusd"}},
		},
		Coercions: map[string]string{
			"Date":      "date",
			"Closed RR": "float",
		},
	}

	in := &models.RawTable{
		Headers: []string{"Trade Date", "Symbol", "R", "Notes"},
		Rows: []models.RawRecord{
			{"Trade Date": "2025-03-14", "Symbol": "XAUUSD", "R": "+2.5R", "Notes": "clean"},
			{"Trade Date": "not a date", "Symbol": "eurusd", "R": "n/a", "Notes": ""},
		},
	}

	out := Adapt(in, profile)

	// Input not mutated.
	if in.Headers[0] != "Trade Date" {
		t.Fatal("Adapt mutated its input")
	}

	if !out.HasHeader("Date") || !out.HasHeader("Pair") || !out.HasHeader("Closed RR") {
		t.Fatalf("renames missing: %v", out.Headers)
	}
	// Canonical columns are guaranteed even when the source lacks them.
	for _, col := range models.CanonicalOrder {
		if !out.HasHeader(col) {
			t.Errorf("canonical column %q missing", col)
		}
	}
	// Canonical block leads the header order.
	if out.Headers[0] != "Date" || out.Headers[1] != "Pair" {
		t.Errorf("canonical columns not first: %v", out.Headers[:3])
	}

	row := out.Rows[0]
	if d, ok := row["Date"].(time.Time); !ok || d.Year() != 2025 {
		t.Errorf("date coercion failed: %v", row["Date"])
	}
	if row["Closed RR"] != 2.5 {
		t.Errorf("float coercion failed: %v", row["Closed RR"])
	}
	if row["DayName"] != "Friday" {
		t.Errorf("derived day = %v, want Friday", row["DayName"])
	}
	if row["Month"] != "2025-03" {
		t.Errorf("derived month = %v", row["Month"])
	}

	// Unparsable cells become nil rather than failing the pass.
	bad := out.Rows[1]
	if bad["Date"] != nil {
		t.Errorf("unparsable date should coerce to nil, got %v", bad["Date"])
	}
	if bad["Closed RR"] != nil {
		t.Errorf("unparsable float should coerce to nil, got %v", bad["Closed RR"])
	}
	if bad["DayName"] != nil {
		t.Errorf("derived fields of dateless row should be nil, got %v", bad["DayName"])
	}
}

func TestNormalizerAdaptTable(t *testing.T) {
	dir := t.TempDir()
	profile := `{"columns": {"Trade Date": "Date", "Symbol": "Pair"}}`
	if err := os.WriteFile(filepath.Join(dir, "journal.json"), []byte(profile), 0644); err != nil {
		t.Fatal(err)
	}

	n := New(dir, 0, zerolog.Nop())

	in := &models.RawTable{
		Headers: []string{"Trade Date", "Symbol"},
		Rows:    []models.RawRecord{{"Trade Date": "2025-01-02", "Symbol": "EURUSD"}},
	}
	out, name := n.AdaptTable(in, "")
	if name != "journal" {
		t.Errorf("profile name = %q, want journal", name)
	}
	if !out.HasHeader("Date") {
		t.Errorf("adapted table missing Date: %v", out.Headers)
	}

	// No qualifying profile: table passes through unchanged.
	odd := &models.RawTable{
		Headers: []string{"A", "B", "C", "D", "E", "F", "G", "H"},
		Rows:    []models.RawRecord{{"A": "1"}},
	}
	out, name = n.AdaptTable(odd, "")
	if name != "" || out != odd {
		t.Errorf("pass-through expected, got profile %q", name)
	}
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.csv")
	content := "Date,Pair,Closed RR\n2025-03-14,XAUUSD,+2-3\n2025-03-15,EURUSD,-1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadCSV(path, ',')
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Date", "Pair", "Closed RR"}
	for i, h := range want {
		if table.Headers[i] != h {
			t.Errorf("header[%d] = %q, want %q", i, table.Headers[i], h)
		}
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0].Text("Pair") != "XAUUSD" {
		t.Errorf("cell = %q", table.Rows[0].Text("Pair"))
	}
}
