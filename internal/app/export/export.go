// Package export renders ledger contents in the formats users save or
// download. All renderers are pure projections; they hold no state.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"

	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/recognition"
)

// Format names a supported export rendering.
type Format string

const (
	FormatText  Format = "txt"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatCSV, FormatExcel:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want txt, json, csv or xlsx)", s)
	}
}

// ContentType returns the MIME type served for downloads of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write renders entries to w in the given format.
func Write(w io.Writer, f Format, entries []ledger.Entry) error {
	switch f {
	case FormatText:
		return writeText(w, entries)
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatCSV:
		return writeCSV(w, entries)
	case FormatExcel:
		return writeExcel(w, entries)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

func writeText(w io.Writer, entries []ledger.Entry) error {
	if _, err := fmt.Fprintf(w, "Speech Recognition Transcription\nGenerated: %s\n%s\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		"=================================================="); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", e.Timestamp.Format("15:04:05"), e.Text); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, entries []ledger.Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if entries == nil {
		entries = []ledger.Entry{}
	}
	return enc.Encode(entries)
}

func writeCSV(w io.Writer, entries []ledger.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "text", "provider", "language", "source"}); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.Timestamp.Format(time.RFC3339),
			e.Text,
			e.Provider,
			recognition.LanguageName(e.Language),
			e.Source,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeExcel(w io.Writer, entries []ledger.Entry) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Timestamp"
	headerRow.AddCell().Value = "Text"
	headerRow.AddCell().Value = "Provider"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Source"

	for _, e := range entries {
		row := sheet.AddRow()
		row.AddCell().Value = e.Timestamp.Format(time.RFC3339)
		row.AddCell().Value = e.Text
		row.AddCell().Value = e.Provider
		row.AddCell().Value = recognition.LanguageName(e.Language)
		row.AddCell().Value = e.Source
	}

	return file.Write(w)
}
