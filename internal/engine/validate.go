package engine

import "fmt"

// Validate performs the run-level policy checks: a malformed bracket table or
// a missing statutory rate set invalidates every result, so batch drivers must
// call this before processing any employee. Partial runs under corrupted
// policy data are worse than no run.
func (c PayrollPolicyConfig) Validate() error {
	if _, ok := c.Component(c.BasicComponentCode); !ok {
		return fmt.Errorf("%w: %q", ErrMissingBasicComponent, c.BasicComponentCode)
	}
	if err := ValidateBrackets(c.Tax.Brackets); err != nil {
		return err
	}
	if len(c.StatutoryRates) == 0 {
		return ErrNoStatutoryRates
	}
	return nil
}
