package topology

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/tmux-layout/internal/errors"
)

// Delimiter separates the fields of an encoded record.
const Delimiter = ";"

// fieldCount is the number of fields in an encoded record.
const fieldCount = 3

// Record is one window of the layout: the session that owns it, its name, and
// the working directory of its active pane. Records are comparable and are
// used directly as map keys.
type Record struct {
	Session   string `yaml:"session"`
	Window    string `yaml:"window"`
	Directory string `yaml:"directory"`
}

// Topology is an ordered sequence of records.
type Topology []Record

// Encode joins the record's fields with the delimiter.
func (r Record) Encode() string {
	return r.Session + Delimiter + r.Window + Delimiter + r.Directory
}

// String implements fmt.Stringer.
func (r Record) String() string {
	return r.Encode()
}

// Validate reports whether the record can be written and read back unchanged.
func (r Record) Validate() error {
	if r.Session == "" {
		return errors.NewRecordError(r.Encode()).WithReason("empty session name")
	}
	if r.Window == "" {
		return errors.NewRecordError(r.Encode()).WithReason("empty window name")
	}
	for _, field := range []string{r.Session, r.Window, r.Directory} {
		if strings.Contains(field, Delimiter) {
			return errors.NewRecordError(r.Encode()).
				WithReason(fmt.Sprintf("field %q contains delimiter %q", field, Delimiter))
		}
		if strings.ContainsAny(field, "\r\n") {
			return errors.NewRecordError(r.Encode()).
				WithReason(fmt.Sprintf("field %q contains a line break", field))
		}
	}
	return nil
}

// Decode parses a single encoded record. The line must split into exactly
// three fields.
func Decode(line string) (Record, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != fieldCount {
		return Record{}, errors.NewRecordError(line).
			WithReason(fmt.Sprintf("expected %d fields, got %d", fieldCount, len(parts)))
	}
	return Record{Session: parts[0], Window: parts[1], Directory: parts[2]}, nil
}

// Encode renders the topology one record per line with a trailing newline.
// An empty topology encodes to no bytes.
func Encode(t Topology) []byte {
	var buf bytes.Buffer
	for _, r := range t {
		buf.WriteString(r.Encode())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// DecodeTopology reads records one per line, skipping empty lines. The first
// malformed line aborts decoding; its error carries the 1-based line number.
func DecodeTopology(r io.Reader) (Topology, error) {
	var t Topology
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		rec, err := Decode(line)
		if err != nil {
			var recErr *errors.RecordError
			if errors.As(err, &recErr) {
				recErr.WithLine(lineNo)
			}
			return nil, err
		}
		t = append(t, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read topology")
	}
	return t, nil
}

// DecodeString is a convenience wrapper around DecodeTopology.
func DecodeString(s string) (Topology, error) {
	return DecodeTopology(strings.NewReader(s))
}

// Validate checks every record, returning the first failure with its
// 1-based position.
func (t Topology) Validate() error {
	for i, r := range t {
		if err := r.Validate(); err != nil {
			var recErr *errors.RecordError
			if errors.As(err, &recErr) {
				recErr.WithLine(i + 1)
			}
			return err
		}
	}
	return nil
}

// Sessions returns the distinct session names in first-seen order.
func (t Topology) Sessions() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range t {
		if !seen[r.Session] {
			seen[r.Session] = true
			names = append(names, r.Session)
		}
	}
	return names
}

// BySession groups records by session, preserving record order within each group.
func (t Topology) BySession() map[string]Topology {
	groups := make(map[string]Topology)
	for _, r := range t {
		groups[r.Session] = append(groups[r.Session], r)
	}
	return groups
}

// Counts returns the number of occurrences of each record.
func Counts(t Topology) map[Record]int {
	counts := make(map[Record]int, len(t))
	for _, r := range t {
		counts[r]++
	}
	return counts
}

// Difference returns the multiset difference target - live: every record
// present N times in target and M times in live maps to max(N-M, 0).
// Records with no shortfall are omitted.
func Difference(target, live Topology) map[Record]int {
	diff := Counts(target)
	for _, r := range live {
		if n, ok := diff[r]; ok {
			if n <= 1 {
				delete(diff, r)
			} else {
				diff[r] = n - 1
			}
		}
	}
	return diff
}
