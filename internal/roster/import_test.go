package roster

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV_Roster(t *testing.T) {
	csv := "Name;Number;Position\n" +
		"Ivan Horvat;17;forward\n" +
		"Marko Kovač;30;GK\n" +
		";;\n"
	rows, err := parseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (nameless row dropped)", len(rows))
	}
	if rows[0].Name != "Ivan Horvat" || rows[0].JerseyNumber != 17 || rows[0].Position != PositionForward {
		t.Errorf("row 0 mapped wrong: %+v", rows[0])
	}
	if rows[1].Position != PositionGoalie {
		t.Errorf("GK alias not mapped: %+v", rows[1])
	}
}

func TestParseXLSX_Roster(t *testing.T) {
	f := excelize.NewFile()
	sh := f.GetSheetName(0)
	header := []string{"No.", "Player", "Pos"}
	data := []string{"4", "Petar Babić", "D"}
	if err := f.SetSheetRow(sh, "A1", &header); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sh, "A2", &data); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	rows, err := parseXLSX(buf.Bytes())
	if err != nil {
		t.Fatalf("parseXLSX: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	p := rows[0]
	if p.Name != "Petar Babić" || p.JerseyNumber != 4 || p.Position != PositionDefense {
		t.Errorf("row mapped wrong: %+v", p)
	}
}

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in   string
		want Position
	}{
		{"goalie", PositionGoalie},
		{"Vratar", PositionGoalie},
		{"D", PositionDefense},
		{"obrana", PositionDefense},
		{"forward", PositionForward},
		{"", PositionForward},
		{"whatever", PositionForward},
	}
	for _, c := range cases {
		if got := parsePosition(c.in); got != c.want {
			t.Errorf("parsePosition(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
