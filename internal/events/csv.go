package events

import (
	"encoding/csv"
	"io"
)

var csvHeader = []string{"Título", "Início", "Fim", "Status", "Categoria", "Descrição"}

// WriteCSV renders events as the spreadsheet export, dates in Brazilian
// display format.
func WriteCSV(w io.Writer, list []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range list {
		row := []string{
			e.Title,
			FormatBRDate(e.Start, e.AllDay),
			FormatBRDate(e.End, e.AllDay),
			e.ExtendedProps.Status,
			e.ExtendedProps.Calendar,
			e.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
