// Package output печатает записи коллекций в форматах simple, table, json и csv.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/record"
)

type Format string

const (
	FormatSimple Format = "simple"
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
)

// ParseFormat проверяет имя формата.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatSimple, FormatTable, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatSimple, nil
	}
	return "", fmt.Errorf("неизвестный формат вывода %q (simple, table, json, csv)", s)
}

// Records печатает записи в выбранном формате.
func Records(w io.Writer, schema record.Schema, records []record.Record, format Format) error {
	switch format {
	case FormatJSON:
		return JSON(w, records)
	case FormatTable:
		return recordsTable(w, schema, records)
	case FormatCSV:
		return recordsCSV(w, schema, records)
	default:
		return recordsSimple(w, schema, records)
	}
}

func recordsSimple(w io.Writer, schema record.Schema, records []record.Record) error {
	for _, rec := range records {
		parts := make([]string, 0, len(schema.Fields))
		for _, f := range schema.Fields {
			if v := rec.String(f.Name); v != "" {
				parts = append(parts, f.Label+": "+v)
			}
		}
		mark := ""
		if rec.Provisional {
			mark = " (временный id)"
		}
		fmt.Fprintf(w, "[%s]%s %s\n", rec.ID, mark, strings.Join(parts, " | "))
	}
	return nil
}

func recordsTable(w io.Writer, schema record.Schema, records []record.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"ID"}
	sep := []string{"---"}
	for _, f := range schema.Fields {
		header = append(header, f.Label)
		sep = append(sep, "---")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	fmt.Fprintln(tw, strings.Join(sep, "\t")+"\t")

	for _, rec := range records {
		row := []string{rec.ID}
		for _, f := range schema.Fields {
			row = append(row, truncate(rec.String(f.Name), 30))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}

	return tw.Flush()
}

func recordsCSV(w io.Writer, schema record.Schema, records []record.Record) error {
	cw := csv.NewWriter(w)

	header := []string{"id"}
	for _, f := range schema.Fields {
		header = append(header, f.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{rec.ID}
		for _, f := range schema.Fields {
			row = append(row, rec.String(f.Name))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Record печатает одну запись построчно: метка поля и значение.
func Record(w io.Writer, schema record.Schema, rec record.Record, format Format) error {
	if format == FormatJSON {
		return JSON(w, rec)
	}
	if format == FormatCSV {
		return recordsCSV(w, schema, []record.Record{rec})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", rec.ID)
	for _, f := range schema.Fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, rec.String(f.Name))
	}
	if rec.Provisional {
		fmt.Fprintln(tw, "Внимание:\tid временный, обновите список")
	}
	return tw.Flush()
}

// JSON печатает значение с отступами.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

type viewJSON struct {
	State      string          `json:"state"`
	Message    string          `json:"message,omitempty"`
	Query      string          `json:"query,omitempty"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
	Filtered   int             `json:"filtered"`
	Records    []record.Record `json:"records"`
}

// View печатает страницу списка: записи и строку навигации, либо
// сообщение о пустом списке или ошибке.
func View(w io.Writer, schema record.Schema, v collection.View, format Format) error {
	if format == FormatJSON {
		records := v.Records
		if records == nil {
			records = []record.Record{}
		}
		return JSON(w, viewJSON{
			State:      v.State.String(),
			Message:    v.Message,
			Query:      v.Query,
			Page:       v.CurrentPage,
			TotalPages: v.TotalPages,
			Total:      v.Total,
			Filtered:   v.Filtered,
			Records:    records,
		})
	}

	if v.State != collection.ViewReady {
		if format == FormatCSV {
			return recordsCSV(w, schema, nil)
		}
		fmt.Fprintln(w, v.Message)
		return nil
	}

	if err := Records(w, schema, v.Records, format); err != nil {
		return err
	}
	if format == FormatCSV {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, Footer(v))
	return nil
}

// Footer - строка навигации: номера страниц и счетчики.
func Footer(v collection.View) string {
	var b strings.Builder

	if v.HasPrev {
		b.WriteString("« ")
	}
	for i, n := range v.PageRange {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case n < 0:
			b.WriteString("…")
		case n == v.CurrentPage:
			b.WriteString("[" + strconv.Itoa(n) + "]")
		default:
			b.WriteString(strconv.Itoa(n))
		}
	}
	if v.HasNext {
		b.WriteString(" »")
	}

	fmt.Fprintf(&b, "  Страница %d из %d", v.CurrentPage, v.TotalPages)
	if v.Query != "" {
		fmt.Fprintf(&b, ", найдено %d из %d", v.Filtered, v.Total)
	} else {
		fmt.Fprintf(&b, ", всего %d", v.Total)
	}
	return b.String()
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}
