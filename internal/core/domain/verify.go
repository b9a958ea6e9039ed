package domain

// Check is one parity assertion.
type Check struct {
	Name string `json:"name" yaml:"name"`
	Want string `json:"want" yaml:"want"`
	Got  string `json:"got" yaml:"got"`
	Pass bool   `json:"pass" yaml:"pass"`
	// Digest marks Want and Got as hex digests.
	Digest bool `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// Verification is the outcome of a parity pass.
type Verification struct {
	Checks []Check `json:"checks" yaml:"checks"`
	Passed bool    `json:"passed" yaml:"passed"`
}

// Err returns ErrParityMismatch naming the first failed check, or nil.
func (v *Verification) Err() error {
	for _, c := range v.Checks {
		if !c.Pass {
			return ErrParityMismatch.WithDetails(c.Name + ": got " + c.Got + ", want " + c.Want)
		}
	}
	return nil
}

// FailedChecks returns the checks that did not pass.
func (v *Verification) FailedChecks() []Check {
	var out []Check
	for _, c := range v.Checks {
		if !c.Pass {
			out = append(out, c)
		}
	}
	return out
}
