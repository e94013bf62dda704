package tui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/aretw0/dianti/pkg/domain"
)

// PrintBuildings renders the known buildings as a table.
func PrintBuildings(w io.Writer, buildings []domain.Building) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Building", "Floors", "Elevators", "Requests", "Turns", "Pattern"})
	for _, b := range buildings {
		pattern := "random"
		if b.Clustered {
			pattern = "clustered"
		}
		t.AppendRow(table.Row{b.Name, b.Floors, b.Elevators, b.Requests, b.Turns, pattern})
	}
	t.Render()
}

// PrintStrategies renders strategy names with their descriptions.
func PrintStrategies(w io.Writer, names []string, describe func(string) string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Strategy", "Description"})
	for _, n := range names {
		t.AppendRow(table.Row{n, describe(n)})
	}
	t.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}
