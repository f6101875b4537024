package verify

import (
	"log/slog"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-organism/model"
)

// Generator builds generation sequences; *model.Stepper satisfies it
type Generator interface {
	Generate(initial *model.Grid, count int) (model.Sequence, error)
}

// Check compares seq, which starts at c.Given, against every expectation in c.
// It returns a *MismatchError for the first disagreement.
func Check(seq model.Sequence, c Case) error {
	if err := seq.ExpectLen(c.Depth() + 1); err != nil {
		return errors.Wrapf(err, "[Check] case %q", c.Name)
	}

	if c.Expected != nil && !c.Expected.Equal(seq[1]) {
		return &MismatchError{Case: c.Name, Comparison: "expected", Generation: 1,
			Want: c.Expected.String(), Got: seq[1].String()}
	}

	for i, want := range c.Generations {
		if got := seq[i+1]; !want.Equal(got) {
			return &MismatchError{Case: c.Name, Comparison: "generations[" + strconv.Itoa(i) + "]", Generation: i + 1,
				Want: want.String(), Got: got.String()}
		}
	}

	if tc := c.TestCell; tc != nil {
		got := seq[1].Resolve(model.Position{X: tc.X, Y: tc.Y})
		if got != tc.Value {
			return &MismatchError{Case: c.Name, Comparison: "testCell(" + strconv.Itoa(tc.X) + "," + strconv.Itoa(tc.Y) + ")",
				Generation: 1, Want: tc.Value.String(), Got: got.String()}
		}
	}

	return nil
}

// CaseResult is the outcome of one fixture case
type CaseResult struct {
	Name string
	Err  error
}

// Passed reports whether the case matched all expectations
func (r CaseResult) Passed() bool {
	return r.Err == nil
}

// Verifier runs fixture cases in order
type Verifier struct {
	gen    Generator
	logger *slog.Logger
}

// NewVerifier creates a verifier backed by gen
func NewVerifier(gen Generator, logger *slog.Logger) *Verifier {
	return &Verifier{gen: gen, logger: logger}
}

// VerifyCase generates as many generations as c needs and checks them
func (v *Verifier) VerifyCase(c Case) error {
	seq, err := v.gen.Generate(c.Given, c.Depth())
	if err != nil {
		return errors.Wrapf(err, "[VerifyCase] case %q", c.Name)
	}
	return Check(seq, c)
}

// Run verifies cases in order and stops at the first failure. The report
// holds every case attempted; the error is that case's failure.
func (v *Verifier) Run(cases []Case) (*Report, error) {
	report := &Report{}
	for _, c := range cases {
		v.logger.Info("testing fixture", "case", c.Name)
		err := v.VerifyCase(c)
		report.Results = append(report.Results, CaseResult{Name: c.Name, Err: err})
		if err != nil {
			v.logger.Error("fixture failed", "case", c.Name, "error", err)
			return report, err
		}
	}
	v.logger.Info("fixtures passed", "cases", len(cases))
	return report, nil
}
