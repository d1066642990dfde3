package cmd

import (
	"errors"
	"io"
	"strings"
)

var errNoQuery = errors.New("no query given")

// readQuery joins args into a query, or reads it from in when there are
// no args.
func readQuery(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if in == nil {
		return "", errNoQuery
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	q := strings.TrimRight(string(data), "\r\n")
	if strings.TrimSpace(q) == "" {
		return "", errNoQuery
	}
	return q, nil
}
