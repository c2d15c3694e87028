package config

import (
	"github.com/oncokb/kbtip/internal/levels"
)

// LevelDescriptions builds the level table: entries from LevelsFile (if set),
// overlaid by inline Levels.
func (c *Config) LevelDescriptions() (levels.Descriptions, error) {
	var table levels.Descriptions
	if c.LevelsFile != "" {
		loaded, err := levels.Load(c.LevelsFile)
		if err != nil {
			return levels.Descriptions{}, err
		}
		table = loaded
	}
	return table.Merge(levels.New(c.Levels)), nil
}
