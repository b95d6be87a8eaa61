package maincmd

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/lico-lang/lico/internal/filetest"
)

var update = flag.Bool("test.update-maincmd-tests", false, "update the run command's golden files")

// TestRunGoldenScripts drives every testdata/*.lico script through
// Cmd.Run and diffs its stdout against the matching golden file,
// grounded on the teacher's filetest-driven phase tests.
func TestRunGoldenScripts(t *testing.T) {
	const dir = "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".lico") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			c := &Cmd{}
			stdio := mainer.Stdio{Stdout: &stdout, Stderr: &stderr}
			_ = c.Run(context.Background(), stdio, []string{filepath.Join(dir, fi.Name())})
			filetest.DiffOutput(t, fi, stdout.String(), dir, update)
		})
	}
}
