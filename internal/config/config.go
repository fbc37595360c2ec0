// Package config provides YAML-based configuration loading for the game:
// data paths and timing knobs.
package config

// Config is the full runtime configuration.
type Config struct {
	Paths PathsConfig `yaml:"paths"`
	Game  GameConfig  `yaml:"game"`
}

// PathsConfig defines where persistent data lives. A leading ~ expands to
// the user's home directory.
type PathsConfig struct {
	Database string `yaml:"database"`
	Replays  string `yaml:"replays"`
	Levels   string `yaml:"levels"` // empty means the embedded level set
}

// GameConfig defines the simulation timing and scoring knobs.
type GameConfig struct {
	TickRate  int `yaml:"tick_rate"`  // simulation ticks per second
	MinThrows int `yaml:"min_throws"` // quitting after this many throws counts as a failed attempt
}

// DefaultConfig returns the hardcoded fallback configuration.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			Database: "~/.unblocked/scores.db",
			Replays:  "~/.unblocked/replays",
			Levels:   "",
		},
		Game: GameConfig{
			TickRate:  60,
			MinThrows: 3,
		},
	}
}
