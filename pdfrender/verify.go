package pdfrender

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Verification never needs pdfcpu's on-disk configuration directory.
	model.ConfigPath = "disable"
}

// Verify parses and validates a rendered PDF and returns its page count.
func Verify(blob []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(blob), conf)
	if err != nil {
		return 0, fmt.Errorf("pdfrender: read: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("pdfrender: validate: %w", err)
	}
	return ctx.PageCount, nil
}
