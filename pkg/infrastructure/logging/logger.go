package logging

import (
	"io"
	"log"
	"os"
)

// Setup creates the run logger. Lines go to stderr when verbose and to
// logFile when set; otherwise they are discarded. The returned closer
// closes the log file.
func Setup(logFile string, verbose bool) (*log.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if verbose {
		writers = append(writers, os.Stderr)
	}
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, file)
		closer = file
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}

	return log.New(out, "reorder: ", log.LstdFlags), closer, nil
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
