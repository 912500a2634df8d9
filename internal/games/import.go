package games

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// parseImport reads a season schedule from a CSV or XLSX upload and returns
// Game rows. Exports from league sites vary in casing, diacritics and
// delimiter, so headers are folded before matching.
func parseImport(fh *multipart.FileHeader) ([]Game, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch ext {
	case ".csv":
		return parseCSV(file)
	case ".xlsx":
		b, err := io.ReadAll(io.LimitReader(file, 10<<20))
		if err != nil {
			return nil, err
		}
		return parseXLSX(b)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func parseCSV(r io.Reader) ([]Game, error) {
	br := bufio.NewReader(r)
	// Peek the header line to sniff the delimiter, then put it back.
	line, _ := br.ReadString('\n')
	rest := io.MultiReader(strings.NewReader(line), br)
	reader := csv.NewReader(rest)
	reader.FieldsPerRecord = -1
	if strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty csv")
	}
	headers := normHeaders(rows[0])
	var out []Game
	for i := 1; i < len(rows); i++ {
		if len(strings.TrimSpace(strings.Join(rows[i], ""))) == 0 {
			continue
		}
		out = append(out, rowToGame(headers, rows[i]))
	}
	return out, nil
}

func parseXLSX(b []byte) ([]Game, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}
	headers := normHeaders(rows[0])
	var out []Game
	for i := 1; i < len(rows); i++ {
		out = append(out, rowToGame(headers, rows[i]))
	}
	return out, nil
}

// normHeaders lowercases, strips diacritics/punctuation and maps the common
// column names onto canonical keys, by index.
func normHeaders(hdr []string) map[int]string {
	aliases := map[string]string{
		"date":       "date",
		"datum":      "date",
		"time":       "time",
		"tid":        "time",
		"vrijeme":    "time",
		"opponent":   "opponent",
		"protivnik":  "opponent",
		"league":     "league",
		"liga":       "league",
		"venue":      "venue",
		"hall":       "venue",
		"dvorana":    "venue",
		"city":       "city",
		"grad":       "city",
		"result":     "result",
		"rezultat":   "result",
		"gather":     "gather",
		"gathertime": "gather",
		"notes":      "notes",
	}
	out := map[int]string{}
	for i, h := range hdr {
		key := foldHeader(h)
		if canon, ok := aliases[key]; ok {
			out[i] = canon
		}
	}
	return out
}

func foldHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsLetter(r):
			// fold diacritics to their base letter where trivial
			switch r {
			case 'å', 'ä', 'á', 'à', 'â':
				b.WriteRune('a')
			case 'ö', 'ó', 'ò', 'ô':
				b.WriteRune('o')
			case 'é', 'è', 'ê', 'ë':
				b.WriteRune('e')
			case 'č', 'ć', 'ç':
				b.WriteRune('c')
			case 'š':
				b.WriteRune('s')
			case 'ž':
				b.WriteRune('z')
			case 'đ':
				b.WriteRune('d')
			}
		}
	}
	return b.String()
}

func rowToGame(headers map[int]string, row []string) Game {
	var g Game
	for i, v := range row {
		v = strings.TrimSpace(v)
		switch headers[i] {
		case "date":
			g.DateRaw = v
		case "time":
			g.TimeRaw = v
		case "opponent":
			g.Opponent = v
		case "league":
			g.League = v
		case "venue":
			// "Hall, City" splits into venue + city when no city column exists
			if g.City == "" && strings.Contains(v, ",") {
				parts := strings.SplitN(v, ",", 2)
				g.Venue = strings.TrimSpace(parts[0])
				g.City = strings.TrimSpace(parts[1])
			} else {
				g.Venue = v
			}
		case "city":
			g.City = v
		case "gather":
			g.GatherTime = v
		case "notes":
			g.Notes = v
		case "result":
			applyResult(&g, v)
		}
	}
	return g
}

// applyResult parses "3-2", "3 - 2", optionally suffixed "OT" or "SO" (a
// shootout suffix attributes the winner's bonus goal to the shootout).
func applyResult(g *Game, v string) {
	s := strings.TrimSpace(v)
	if s == "" {
		return
	}
	shootout := false
	upper := strings.ToUpper(s)
	for _, suf := range []string{"SO", "OT"} {
		if strings.HasSuffix(upper, suf) {
			if suf == "SO" {
				shootout = true
			}
			s = strings.TrimSpace(s[:len(s)-len(suf)])
			break
		}
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return
	}
	gf, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	ga, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return
	}
	g.Played = true
	g.GoalsFor = gf
	g.GoalsAgainst = ga
	if shootout {
		if gf > ga {
			g.ShootoutWinner = ShootoutUs
		} else if ga > gf {
			g.ShootoutWinner = ShootoutThem
		}
	}
}
