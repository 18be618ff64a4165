package album

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Source provides the CSV content of one album table.
type Source interface {
	Table(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirSource reads tables already exported as <Dir>/<name>.csv.
type DirSource struct {
	Dir string
}

func (s DirSource) Table(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.Dir, name+".csv"))
}

// MDBSource exports tables from an Access database with mdb-export.
type MDBSource struct {
	Path    string
	Command string // defaults to "mdb-export"
}

func (s MDBSource) Table(ctx context.Context, name string) (io.ReadCloser, error) {
	command := s.Command
	if command == "" {
		command = "mdb-export"
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, s.Path, name)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s %s: %w: %s", command, s.Path, name, err, msg)
		}
		return nil, fmt.Errorf("%s %s %s: %w", command, s.Path, name, err)
	}
	return io.NopCloser(&stdout), nil
}
