package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"name", "branch"},
		{"alpha", "main"},
		{"a-longer-project", "fix"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft})
	want := []string{
		"name              branch",
		"alpha             main",
		"a-longer-project  fix",
	}
	if len(got) != len(want) {
		t.Fatalf("Format returned %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatRightAlignment(t *testing.T) {
	rows := [][]string{
		{"a", "10"},
		{"bb", "7"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"a   10",
		"bb   7",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatMeasuresDisplayWidth(t *testing.T) {
	rows := [][]string{
		{"日本語", "x"},
		{"ascii", "y"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft})
	// 日本語 occupies six display cells, same as "ascii " padded to six.
	if got[0] != "日本語  x" {
		t.Fatalf("row 0 = %q", got[0])
	}
	if got[1] != "ascii   y" {
		t.Fatalf("row 1 = %q", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("empty input must yield nil, got %v", got)
	}
}
