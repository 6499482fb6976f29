package library

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yamasampo/bibmanager/src/internal/bibtex"
)

// DefaultField is the field that receives the citation key when the caller
// does not name one.
const DefaultField = "note"

var (
	// ErrOutputExists is returned when the output path already exists.
	ErrOutputExists = errors.New("output file already exists")
	// ErrDuplicateKey is returned when two records share a citation key.
	ErrDuplicateKey = errors.New("duplicate citation key")
)

// Read loads a bibliography file and decodes every record, in file order.
// Any malformed record fails the whole read, as does a citation key that
// appears more than once.
func Read(path string) ([]bibtex.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	chunks := bibtex.SplitRecords(string(b))
	recs := make([]bibtex.Record, 0, len(chunks))
	for i, chunk := range chunks {
		rec, err := bibtex.Decode(chunk)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i+1, err)
		}
		recs = append(recs, rec)
	}
	seen := map[string]bool{}
	for _, rec := range recs {
		if seen[rec.Key] {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrDuplicateKey, rec.Key)
		}
		seen[rec.Key] = true
	}
	slog.Debug("parsed bibliography", "path", path, "records", len(recs))
	return recs, nil
}

// Write renders records to a new file at path: a "% itemnum: N" count header
// followed by each record in canonical form. The file must not already
// exist. The content is staged in a temp file and renamed into place, so a
// failure leaves no partial output behind.
func Write(path string, recs []bibtex.Record) error {
	if err := EnsureAbsent(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%% itemnum: %d\n", len(recs))
	for _, rec := range recs {
		buf.WriteString(bibtex.Encode(rec))
		buf.WriteByte('\n')
	}
	if err := writeFileNew(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	slog.Debug("wrote bibliography", "path", path, "records", len(recs))
	return nil
}

// EnsureAbsent returns ErrOutputExists when path already names a file.
func EnsureAbsent(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// InsertCiteKeys applies the citation-key insertion to every record and
// returns the transformed list. The input slice and its records are left
// unchanged.
func InsertCiteKeys(recs []bibtex.Record, field, prefix, suffix string) []bibtex.Record {
	out := make([]bibtex.Record, len(recs))
	for i, rec := range recs {
		out[i] = bibtex.InsertCiteKey(rec, field, prefix, suffix)
	}
	return out
}

// writeFileNew writes data to a temp file in the target directory and
// renames it onto filename.
func writeFileNew(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, "bibman-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
