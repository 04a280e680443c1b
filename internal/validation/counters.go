// Package validation checks raw counters before they reach the engine.
package validation

import (
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"slotsense/domain/core"
	"slotsense/domain/evidence"
	"slotsense/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize fills derived totals the caller left blank: voice and bell
// totals from their parts, and initial-hit total hits from cherry and
// non-cherry hits.
func Normalize(c evidence.Counters) evidence.Counters {
	if c.Voice.Total == 0 {
		c.Voice.Total = c.Voice.SubTotal()
	}
	if c.Bell.Total == 0 {
		c.Bell.Total = c.Bell.Diagonal + c.Bell.Middle
	}
	if c.InitialHit.TotalHits == 0 {
		c.InitialHit.TotalHits = c.InitialHit.CherryHits + c.InitialHit.NonCherryHits
	}
	return c
}

// Validate returns every violation in c joined into one VALIDATION_ERROR,
// or nil. Field rules come from the struct tags; totals are checked across
// fields only when the total is set.
func Validate(c evidence.Counters) error {
	violations := Violations(c)
	if len(violations) == 0 {
		return nil
	}
	return errors.ValidationError("invalid counters", stderrors.Join(violations...))
}

// Violations lists every rule c breaks, in field order
func Violations(c evidence.Counters) []error {
	var out []error

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(err, &fieldErrs) {
			return []error{err}
		}
		for _, fe := range fieldErrs {
			out = append(out, fieldError(fe))
		}
	}

	return append(out, crossField(c)...)
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "gte":
		return fmt.Errorf("%w: %s is %v", core.ErrNegativeCounter, fe.Namespace(), fe.Value())
	case "oneof":
		return fmt.Errorf("%w: %s is %q", core.ErrInvalidState, fe.Namespace(), fe.Value())
	}
	return fmt.Errorf("%s failed %s", fe.Namespace(), fe.Tag())
}

func crossField(c evidence.Counters) []error {
	var out []error

	if c.Voice.Total > 0 && c.Voice.SubTotal() != c.Voice.Total {
		out = append(out, core.NewInconsistencyError("voice.total",
			fmt.Sprintf("categories sum to %d, total is %d", c.Voice.SubTotal(), c.Voice.Total)))
	}
	if c.Bell.Total > 0 && c.Bell.Diagonal+c.Bell.Middle != c.Bell.Total {
		out = append(out, core.NewInconsistencyError("bell.total",
			fmt.Sprintf("diagonal+middle is %d, total is %d", c.Bell.Diagonal+c.Bell.Middle, c.Bell.Total)))
	}

	w := c.Watermelon
	if w.Normal.Hit > w.Normal.Total {
		out = append(out, core.NewInconsistencyError("watermelon.normal.hit",
			fmt.Sprintf("%d hits exceed %d trials", w.Normal.Hit, w.Normal.Total)))
	}
	if w.Heaven.Hit > w.Heaven.Total {
		out = append(out, core.NewInconsistencyError("watermelon.heaven.hit",
			fmt.Sprintf("%d hits exceed %d trials", w.Heaven.Hit, w.Heaven.Total)))
	}

	ih := c.InitialHit
	if ih.TotalHits > 0 && ih.CherryHits+ih.NonCherryHits != ih.TotalHits {
		out = append(out, core.NewInconsistencyError("initialHit.totalHits",
			fmt.Sprintf("cherry+nonCherry is %d, totalHits is %d", ih.CherryHits+ih.NonCherryHits, ih.TotalHits)))
	}
	if ih.NonCherryHits > 0 && ih.TotalGames == 0 {
		out = append(out, core.NewInconsistencyError("initialHit.totalGames",
			"hits recorded without games"))
	}

	mt := c.ModeTransition
	if mt.HeavenStarts+mt.JagiStageStarts > mt.TotalATEnds {
		out = append(out, core.NewInconsistencyError("modeTransition.totalATEnds",
			fmt.Sprintf("%d starts exceed %d AT ends", mt.HeavenStarts+mt.JagiStageStarts, mt.TotalATEnds)))
	}

	return out
}
