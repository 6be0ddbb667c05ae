package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"
)

// MalformedInputError reports an input line that did not parse into two
// integer vertex identifiers.
type MalformedInputError struct {
	Line int
	Text string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ParseEdgeList reads newline-delimited "<src> <trg>" records. Blank
// lines are skipped; anything else that does not parse into two
// integers fails with a MalformedInputError carrying the line number.
func ParseEdgeList(r io.Reader) ([]Edge, error) {
	var edges []Edge

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		edge, err := parseEdgeLine(line)
		if err != nil {
			return nil, &MalformedInputError{Line: lineNo, Text: line, Err: err}
		}
		edges = append(edges, edge)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edge list: %w", err)
	}

	return edges, nil
}

func parseEdgeLine(line string) (Edge, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Edge{}, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}

	src, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Edge{}, fmt.Errorf("invalid source vertex: %w", err)
	}
	trg, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Edge{}, fmt.Errorf("invalid target vertex: %w", err)
	}

	return Edge{Src: src, Trg: trg}, nil
}

// LoadEdgeList reads an edge list from a file. Files with a ".sz"
// extension are decompressed with the snappy framing format, matching
// the compression used for archived graph dumps.
func LoadEdgeList(path string) ([]Edge, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open edge list: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".sz") {
		reader = snappy.NewReader(file)
	}

	return ParseEdgeList(reader)
}

// WriteEdgeList writes edges in the input file format. A ".sz" path
// produces a snappy-framed compressed file readable by LoadEdgeList.
func WriteEdgeList(path string, edges []Edge) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create edge list: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	var sw *snappy.Writer
	if strings.HasSuffix(path, ".sz") {
		sw = snappy.NewBufferedWriter(file)
		w = sw
	}

	bw := bufio.NewWriter(w)
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%d %d\n", e.Src, e.Trg); err != nil {
			return fmt.Errorf("failed to write edge: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush edge list: %w", err)
	}
	if sw != nil {
		if err := sw.Close(); err != nil {
			return fmt.Errorf("failed to close snappy writer: %w", err)
		}
	}

	return nil
}
