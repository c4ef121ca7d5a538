package mount

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Strict wraps a unit in a development guard. When enabled the unit is
// rendered twice; differing output or an empty render is reported as a
// warning. The first render is always what gets written, so enabling the
// guard never changes the page.
func Strict(unit string, child templ.Component, enabled bool, reporter Reporter) templ.Component {
	if !enabled || child == nil {
		return child
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var first bytes.Buffer
		if err := child.Render(ctx, &first); err != nil {
			return err
		}
		var second bytes.Buffer
		if err := child.Render(ctx, &second); err != nil {
			reportStrict(ctx, reporter, unit, fmt.Sprintf("unit %s failed on second render", unit), err)
		} else if !bytes.Equal(first.Bytes(), second.Bytes()) {
			reportStrict(ctx, reporter, unit, fmt.Sprintf("unit %s rendered differently on repeat render", unit), nil)
		}
		if len(bytes.TrimSpace(first.Bytes())) == 0 {
			reportStrict(ctx, reporter, unit, fmt.Sprintf("unit %s rendered no output", unit), nil)
		}
		_, err := w.Write(first.Bytes())
		return err
	})
}

func reportStrict(ctx context.Context, reporter Reporter, unit, message string, err error) {
	if reporter == nil {
		return
	}
	reporter.Report(ctx, Diagnostic{
		Severity: SeverityWarning,
		Event:    EventStrict,
		Unit:     unit,
		Message:  message,
		Err:      err,
	})
}
