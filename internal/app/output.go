package app

import (
	"bufio"
	"fmt"
	"io"

	"github.com/shenwei356/xopen"
)

// output is a buffered destination that must be closed.
type output struct {
	path string
	*bufio.Writer
	closer io.Closer
}

// create opens path for writing through xopen (.gz compresses). "-" is the
// runner's stdout, which is flushed but not closed.
func (r *runner) create(path string) (*output, error) {
	if path == "-" {
		return &output{path: path, Writer: bufio.NewWriter(r.stdout)}, nil
	}
	w, err := xopen.Wopen(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &output{path: path, Writer: bufio.NewWriter(w), closer: w}, nil
}

// Close flushes and closes the destination.
func (o *output) Close() error {
	err := o.Flush()
	if o.closer != nil {
		if cerr := o.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", o.path, err)
	}
	return nil
}

// closeAll closes every output and returns the first error.
func closeAll(outs ...*output) error {
	var first error
	for _, o := range outs {
		if o == nil {
			continue
		}
		if err := o.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// writerOrNil keeps a nil *output from becoming a non-nil io.Writer.
func writerOrNil(o *output) io.Writer {
	if o == nil {
		return nil
	}
	return o
}
