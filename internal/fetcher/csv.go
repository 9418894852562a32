// Package fetcher reads and writes acquired match data as CSV files.
package fetcher

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/courtline/matchdata/internal/model"
)

// WriteMatches writes typed match rows to path with a header row, in
// canonical column order.
func WriteMatches(path string, rows []model.MatchRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "fetcher: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	// Header goes out even for zero rows so the file stays readable.
	if err := enc.EncodeHeader(model.MatchRecord{}); err != nil {
		return eris.Wrap(err, "fetcher: encode header")
	}
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return eris.Wrap(err, "fetcher: encode match row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "fetcher: flush csv")
	}
	return nil
}

// ReadMatches reads typed match rows from a CSV file previously produced
// by WriteMatches. Row order is preserved.
func ReadMatches(path string) ([]model.MatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read csv header %s", path)
	}

	var rows []model.MatchRecord
	for {
		var row model.MatchRecord
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "fetcher: decode match row %s", path)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFrame reads an arbitrary CSV file into a generic frame. The first
// record becomes the column header; every value stays a string.
func ReadFrame(path string) (*model.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read csv header %s", path)
	}

	frame := model.NewFrame(header...)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: read csv row %s", path)
		}
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}
		if err := frame.Append(row); err != nil {
			return nil, eris.Wrapf(err, "fetcher: malformed csv row %s", path)
		}
	}
	return frame, nil
}

// WriteFrame writes a generic frame to path with its column header.
// Values are rendered with their default formatting; nils become empty
// cells.
func WriteFrame(path string, frame *model.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "fetcher: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(frame.Columns); err != nil {
		return eris.Wrap(err, "fetcher: write header")
	}
	record := make([]string, len(frame.Columns))
	for _, row := range frame.Rows {
		for i, v := range row {
			if v == nil {
				record[i] = ""
				continue
			}
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "fetcher: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "fetcher: flush csv")
	}
	return nil
}
