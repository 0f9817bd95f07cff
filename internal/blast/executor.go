package blast

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// execute runs the command synchronously and returns captured stderr. When
// verbose, stderr is tee'd to os.Stderr in real time so remote-queue progress
// messages stay visible; otherwise it is captured silently for error reports.
func execute(ctx context.Context, args []string, verbose bool) (string, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return stderrBuf.String(), err
}
