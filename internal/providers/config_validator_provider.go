package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"mfd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct tag rules plus the cross-field checks the tags
// cannot express.
func (v *CnfValidator) Validate() error {
	vld := validate.Struct(v.conf)
	if !vld.Validate() {
		return fmt.Errorf("invalid config: %s", vld.Errors.One())
	}

	d := v.conf.Detector
	if d.MinGapDays > d.MaxGapDays {
		return fmt.Errorf("invalid config: detector.minGapDays (%d) exceeds detector.maxGapDays (%d)", d.MinGapDays, d.MaxGapDays)
	}
	if v.conf.Input.Format != "" && v.conf.Input.Path == "" {
		return fmt.Errorf("invalid config: input.format set without input.path")
	}
	return nil
}
