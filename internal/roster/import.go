package roster

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

	"github.com/xuri/excelize/v2"
)

// parseImport reads a roster sheet (name, jersey number, position) from a
// CSV or XLSX upload.
func parseImport(fh *multipart.FileHeader) ([]Player, error) {
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

func parseCSV(r io.Reader) ([]Player, error) {
	br := bufio.NewReader(r)
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
	var out []Player
	for i := 1; i < len(rows); i++ {
		if p, ok := rowToPlayer(headers, rows[i]); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func parseXLSX(b []byte) ([]Player, error) {
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
	var out []Player
	for i := 1; i < len(rows); i++ {
		if p, ok := rowToPlayer(headers, rows[i]); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func normHeaders(hdr []string) map[int]string {
	aliases := map[string]string{
		"name":     "name",
		"player":   "name",
		"ime":      "name",
		"number":   "number",
		"jersey":   "number",
		"no":       "number",
		"broj":     "number",
		"position": "position",
		"pos":      "position",
		"pozicija": "position",
	}
	out := map[int]string{}
	for i, h := range hdr {
		key := strings.ToLower(strings.TrimSpace(strings.Trim(h, ".#|")))
		if canon, ok := aliases[key]; ok {
			out[i] = canon
		}
	}
	return out
}

func rowToPlayer(headers map[int]string, row []string) (Player, bool) {
	p := Player{Active: true}
	for i, v := range row {
		v = strings.TrimSpace(v)
		switch headers[i] {
		case "name":
			p.Name = v
		case "number":
			if n, err := strconv.Atoi(v); err == nil {
				p.JerseyNumber = n
			}
		case "position":
			p.Position = parsePosition(v)
		}
	}
	return p, p.Name != ""
}

func parsePosition(v string) Position {
	switch strings.ToLower(v) {
	case "goalie", "goalkeeper", "gk", "g", "vratar":
		return PositionGoalie
	case "defense", "defence", "d", "ld", "rd", "obrana":
		return PositionDefense
	default:
		return PositionForward
	}
}
