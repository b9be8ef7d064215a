// Package coverdata reads and writes cover lists in the formats a static
// site keeps its data files in: YAML (the usual _data/covers.yml), JSON
// and CSV.
package coverdata

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"coverhub/pkg/cover"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown cover data format")

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

func Load(path string) (cover.List, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cover data: %w", err)
	}
	defer f.Close()

	list, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Decode reads a cover list. Entries are trimmed and blank ones dropped;
// order and duplicates are kept.
func Decode(r io.Reader, format Format) (cover.List, error) {
	var raw []string
	switch format {
	case FormatYAML:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read yaml: %w", err)
		}
		if len(bytes.TrimSpace(b)) == 0 {
			return cover.List{}, nil
		}
		if err := yaml.Unmarshal(b, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return cover.List{}, nil
			}
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatCSV:
		rows, err := decodeCSV(r)
		if err != nil {
			return nil, err
		}
		raw = rows
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return clean(raw), nil
}

// decodeCSV takes the "url" column when a header names one, otherwise the
// first column of every row.
func decodeCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := 0
	start := 0
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(h), "url") {
			col = i
			start = 1
			break
		}
	}

	out := make([]string, 0, len(records)-start)
	for _, row := range records[start:] {
		if col < len(row) {
			out = append(out, row[col])
		}
	}
	return out, nil
}

func clean(raw []string) cover.List {
	out := make(cover.List, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func Save(path string, list cover.List) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cover data: %w", err)
	}
	if err := Encode(f, format, list); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func Encode(w io.Writer, format Format, list cover.List) error {
	if list == nil {
		list = cover.List{}
	}
	switch format {
	case FormatYAML:
		b, err := yaml.Marshal([]string(list))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode([]string(list)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"url"}); err != nil {
			return err
		}
		for _, s := range list {
			if err := cw.Write([]string{s}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
