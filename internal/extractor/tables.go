package extractor

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// cellSplitRe splits a text line into cells on tabs or runs of two or
// more spaces. Single spaces stay inside a cell so narrations survive.
var cellSplitRe = regexp.MustCompile(`\t+|\s{2,}`)

// BuildTables reconstructs tabular blocks from extracted page text. A
// table is a maximal run of consecutive lines that each split into at
// least two cells; the first line of the run becomes the header. Runs
// shorter than two lines carry no data and are dropped.
func BuildTables(pages []string) []models.RawTable {
	var tables []models.RawTable
	for _, page := range pages {
		var block [][]string
		flush := func() {
			if len(block) >= 2 {
				tables = append(tables, models.RawTable{
					Header: block[0],
					Rows:   block[1:],
				})
			}
			block = nil
		}

		for _, line := range strings.Split(page, "\n") {
			cells := SplitCells(line)
			if len(cells) >= 2 {
				block = append(block, cells)
				continue
			}
			flush()
		}
		flush()
	}
	return tables
}

// SplitCells breaks one text line into trimmed cells.
func SplitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	raw := cellSplitRe.Split(line, -1)
	cells := make([]string, 0, len(raw))
	for _, c := range raw {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}
