package export

import "fmt"

// RenderError is the single error category surfaced at a renderer boundary.
// Low-level library failures (image decode, workbook write, document pack)
// are wrapped here so callers never need to know which library failed.
type RenderError struct {
	Format Format
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s export failed: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Failed wraps err into the renderer-level error category for f.
func Failed(f Format, err error) error {
	return &RenderError{Format: f, Err: err}
}
