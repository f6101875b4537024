package verify

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-organism/internal/logging"
	"github.com/sheikhrachel/go-organism/model"
)

var plusRows = [][]model.CellState{{0, 1, 0}, {1, 1, 1}, {0, 1, 0}}

func newVerifier() *Verifier {
	return NewVerifier(model.NewStepper(2), logging.NewNop())
}

func TestLoadFixtures_RepositoryData(t *testing.T) {
	cases, err := LoadFixtures(filepath.Join("..", "test-data.json"))
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	report, err := newVerifier().Run(cases)
	require.NoError(t, err)
	assert.True(t, report.Passed())
	assert.Len(t, report.Results, len(cases))
}

func TestLoadFixtures_YAML(t *testing.T) {
	cases, err := LoadFixtures(filepath.Join("testdata", "fixtures.yaml"))
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "corner block", cases[1].Name)
	assert.Equal(t, &CellAssertion{X: 0, Y: 0, Value: model.Alive}, cases[1].TestCell)

	_, err = newVerifier().Run(cases)
	assert.NoError(t, err)
}

func TestLoadFixtures_RaggedGridRejected(t *testing.T) {
	_, err := LoadFixtures(filepath.Join("testdata", "ragged.json"))
	assert.True(t, errors.Is(err, model.ErrInvalidGrid), "got %v", err)
}

func TestParseFixtures_BadTestCell(t *testing.T) {
	_, err := ParseFixtures([]byte(`[{"name":"x","given":[[1]],"testCell":[0,0]}]`), false)
	assert.True(t, errors.Is(err, ErrBadFixture))

	_, err = ParseFixtures([]byte(`[{"name":"x","given":[[1]],"testCell":[0,0,7]}]`), false)
	assert.True(t, errors.Is(err, ErrBadFixture))

	_, err = ParseFixtures([]byte(`{`), false)
	assert.True(t, errors.Is(err, ErrBadFixture))
}

func TestVerifyCase_ExpectedMismatch(t *testing.T) {
	c := Case{
		Name:     "plus survives",
		Given:    model.MustGrid(plusRows),
		Expected: model.MustGrid(plusRows),
	}
	err := newVerifier().VerifyCase(c)
	require.True(t, errors.Is(err, ErrFixtureMismatch))

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "plus survives", mismatch.Case)
	assert.Equal(t, "expected", mismatch.Comparison)
	assert.Equal(t, 1, mismatch.Generation)
}

func TestVerifyCase_GenerationsMismatch(t *testing.T) {
	dead := model.MustGrid([][]model.CellState{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})
	c := Case{
		Name:        "revives",
		Given:       model.MustGrid(plusRows),
		Generations: []*model.Grid{dead, model.MustGrid(plusRows)},
	}
	var mismatch *MismatchError
	require.True(t, errors.As(newVerifier().VerifyCase(c), &mismatch))
	assert.Equal(t, "generations[1]", mismatch.Comparison)
	assert.Equal(t, 2, mismatch.Generation)
}

func TestVerifyCase_TestCellMismatch(t *testing.T) {
	c := Case{
		Name:     "center lives",
		Given:    model.MustGrid(plusRows),
		TestCell: &CellAssertion{X: 1, Y: 1, Value: model.Alive},
	}
	var mismatch *MismatchError
	require.True(t, errors.As(newVerifier().VerifyCase(c), &mismatch))
	assert.Equal(t, "testCell(1,1)", mismatch.Comparison)
	assert.Equal(t, "alive", mismatch.Want)
	assert.Equal(t, "dead", mismatch.Got)
}

func TestCheck_SequenceTooShort(t *testing.T) {
	c := Case{
		Name:        "needs two",
		Given:       model.MustGrid(plusRows),
		Generations: []*model.Grid{model.MustGrid(plusRows), model.MustGrid(plusRows)},
	}
	err := Check(model.Sequence{c.Given, c.Given}, c)
	assert.True(t, errors.Is(err, model.ErrSequenceLength))
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	good := Case{Name: "good", Given: model.MustGrid(plusRows),
		Expected: model.MustGrid([][]model.CellState{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})}
	bad := Case{Name: "bad", Given: model.MustGrid(plusRows), Expected: model.MustGrid(plusRows)}
	never := Case{Name: "never", Given: model.MustGrid(plusRows)}

	report, err := newVerifier().Run([]Case{good, bad, never})
	assert.True(t, errors.Is(err, ErrFixtureMismatch))
	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].Passed())
	assert.False(t, report.Results[1].Passed())
	assert.False(t, report.Passed())

	md := report.Markdown()
	assert.Contains(t, md, "| good | pass |")
	assert.Contains(t, md, "| bad | FAIL |")
	assert.NotContains(t, md, "never")
}
