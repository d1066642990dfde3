// Package batch rewrites files of queries, one query per line.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eawag-rdm/lucparser/query"
	"github.com/eawag-rdm/lucparser/scanner"
)

// OutputSuffix is appended to the input path when results are written
// next to their input.
const OutputSuffix = ".out"

// Processor rewrites a single query.
type Processor interface {
	Process(q string) (string, error)
}

// RuleProcessor applies an ordered rule list to every query.
type RuleProcessor struct {
	Rules []query.Rule
}

func (p *RuleProcessor) Process(q string) (string, error) {
	return query.ApplyRules(q, p.Rules)
}

// LineError reports a query that could not be processed.
type LineError struct {
	Path  string `json:"path"`
	Line  int    `json:"line"`
	Query string `json:"query"`
	Err   error  `json:"-"`
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// FileResult holds the rewritten lines of one file. A line that failed is
// copied unchanged and reported in Errors.
type FileResult struct {
	Path   string       `json:"path"`
	Lines  []string     `json:"lines"`
	Errors []*LineError `json:"errors,omitempty"`
}

// ProcessLines rewrites every query line of r. Blank lines and lines
// starting with '#' are copied as they are.
func ProcessLines(p Processor, path string, r io.Reader) (*FileResult, error) {
	result := &FileResult{Path: path}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result.Lines = append(result.Lines, line)
			continue
		}

		out, err := p.Process(line)
		if err != nil {
			result.Errors = append(result.Errors, &LineError{Path: path, Line: n, Query: line, Err: err})
			result.Lines = append(result.Lines, line)
			continue
		}
		result.Lines = append(result.Lines, out)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return result, nil
}

// ProcessFile reads the file at path and rewrites its queries.
func ProcessFile(p Processor, path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ProcessLines(p, path, bytes.NewReader(data))
}

// WriteResult writes the rewritten lines to w, or next to the input file
// when w is nil.
func WriteResult(result *FileResult, w io.Writer) error {
	if w != nil {
		_, err := io.WriteString(w, joinLines(result.Lines))
		return err
	}
	return os.WriteFile(OutputPath(result.Path), []byte(joinLines(result.Lines)), 0o644)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// ProcessFiles runs ProcessPath for each path and concatenates the results.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	p Processor,
	paths []string,
	processor func(Processor, string) (*FileResult, error),
) ([]*FileResult, error) {
	var all []*FileResult
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, p, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// ProcessPath processes a single query file, or every query file below a
// directory on a bounded pool of workers. Results are sorted by path.
// Files that fail to load are logged and skipped. When ctx is cancelled
// the files finished so far are returned together with ctx.Err().
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	p Processor,
	path string,
	processor func(Processor, string) (*FileResult, error),
) ([]*FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		result, err := processor(p, path)
		if err != nil {
			return nil, err
		}
		return []*FileResult{result}, nil
	}

	files, err := scanner.New(path, scanner.DefaultExtensions...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	results := make([]*FileResult, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

dispatch:
	for i, file := range files {
		select {
		case <-ctx.Done():
			break dispatch
		default:
		}

		g.Go(func() error {
			defer bar.Add(1)

			result, err := processor(p, file.Path)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", file.Path), zap.Error(err))
				}
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()
	_ = bar.Finish()

	collected := make([]*FileResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			collected = append(collected, r)
		}
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].Path < collected[j].Path })

	return collected, ctx.Err()
}

// OutputPath returns where WriteResult stores the result for path.
func OutputPath(path string) string {
	return filepath.Clean(path) + OutputSuffix
}
