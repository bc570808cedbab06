package delivery

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var ErrEmptyShot = errors.New("delivery row has an empty shot name")

// ShotRecord is one row of the delivery shot list. The CSV columns are
// positional: shot, version, artist, date, vendor, notes. Trailing
// columns may be omitted.
type ShotRecord struct {
	Shot    string `json:"shot"`
	Version string `json:"version"`
	Artist  string `json:"artist"`
	Date    string `json:"date"`
	Vendor  string `json:"vendor"`
	Notes   string `json:"notes"`
}

// ParseCSV reads a delivery shot list. A header row is detected by the
// literal "shot" in the first cell and skipped.
func ParseCSV(r io.Reader) ([]ShotRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []ShotRecord
	first := true

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if first {
			first = false
			if len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "shot") {
				continue
			}
		}

		if len(row) == 0 {
			continue
		}

		record := ShotRecord{Shot: strings.TrimSpace(field(row, 0))}
		if record.Shot == "" {
			return nil, ErrEmptyShot
		}

		record.Version = strings.TrimSpace(field(row, 1))
		record.Artist = strings.TrimSpace(field(row, 2))
		record.Date = strings.TrimSpace(field(row, 3))
		record.Vendor = strings.TrimSpace(field(row, 4))
		record.Notes = strings.TrimSpace(field(row, 5))

		records = append(records, record)
	}

	return records, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
