package verify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-organism/model"
)

// CellAssertion expects the cell at (X, Y) of generation 1 to hold Value
type CellAssertion struct {
	X, Y  int
	Value model.CellState
}

// Case is one named fixture. Any of Expected, Generations and TestCell may be set.
type Case struct {
	Name        string
	Given       *model.Grid
	Expected    *model.Grid   // generation 1
	Generations []*model.Grid // generations 1..k
	TestCell    *CellAssertion
}

// Depth is how many generations past Given the case needs
func (c Case) Depth() int {
	return max(1, len(c.Generations))
}

type rawCase struct {
	Name        string                `json:"name" yaml:"name"`
	Given       [][]model.CellState   `json:"given" yaml:"given"`
	Expected    [][]model.CellState   `json:"expected" yaml:"expected"`
	Generations [][][]model.CellState `json:"generations" yaml:"generations"`
	TestCell    []int                 `json:"testCell" yaml:"testCell"`
}

// LoadFixtures reads a fixture file, YAML for .yaml/.yml and JSON otherwise
func LoadFixtures(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadFixtures] failed to read file: %+v", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	cases, err := ParseFixtures(data, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadFixtures] %+v", path)
	}
	return cases, nil
}

// ParseFixtures decodes a list of cases and validates every grid in them
func ParseFixtures(data []byte, isYAML bool) ([]Case, error) {
	var raw []rawCase
	if isYAML {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(ErrBadFixture, "[ParseFixtures] yaml: %v", err)
		}
	} else {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(ErrBadFixture, "[ParseFixtures] json: %v", err)
		}
	}

	cases := make([]Case, 0, len(raw))
	for i, rc := range raw {
		c, err := rc.toCase()
		if err != nil {
			return nil, errors.Wrapf(err, "[ParseFixtures] case %d (%q)", i, rc.Name)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (rc rawCase) toCase() (Case, error) {
	c := Case{Name: rc.Name}

	given, err := model.NewGrid(rc.Given)
	if err != nil {
		return c, errors.Wrap(err, "given")
	}
	c.Given = given

	if rc.Expected != nil {
		if c.Expected, err = model.NewGrid(rc.Expected); err != nil {
			return c, errors.Wrap(err, "expected")
		}
	}

	for i, rows := range rc.Generations {
		g, err := model.NewGrid(rows)
		if err != nil {
			return c, errors.Wrapf(err, "generations[%d]", i)
		}
		c.Generations = append(c.Generations, g)
	}

	if rc.TestCell != nil {
		if len(rc.TestCell) != 3 {
			return c, errors.Wrapf(ErrBadFixture, "testCell has %d values, want [x, y, value]", len(rc.TestCell))
		}
		value := model.CellState(rc.TestCell[2])
		if value != model.Dead && value != model.Alive {
			return c, errors.Wrapf(ErrBadFixture, "testCell value %d is not 0 or 1", rc.TestCell[2])
		}
		c.TestCell = &CellAssertion{X: rc.TestCell[0], Y: rc.TestCell[1], Value: value}
	}

	return c, nil
}
