package views

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"sysreport/internal/models"
)

var errEmptyReport = errors.New("no report was produced")

// JSON writes the report as indented JSON with fields in section order.
// A failed result is written as the same single error line Styled uses.
func JSON(w io.Writer, result models.Result) error {
	if msg := failureMessage(result); msg != "" {
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Report)
}
