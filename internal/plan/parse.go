package plan

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// planFile is the on-disk TOML shape of a plan document.
type planFile struct {
	Plan struct {
		Name    string `toml:"name"`
		Summary string `toml:"summary"`
		Goal    string `toml:"goal"`
	} `toml:"plan"`
	Settings Settings `toml:"settings"`
	Tasks    []Task   `toml:"tasks"`
}

// Load reads a plan.toml file into a Plan.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoPlanFile, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var pf planFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &Plan{
		Name:     pf.Plan.Name,
		Summary:  pf.Plan.Summary,
		Goal:     pf.Plan.Goal,
		Settings: pf.Settings,
		Tasks:    pf.Tasks,
	}, nil
}
