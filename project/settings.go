package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dhamidi/smartenter/repair"
)

// SettingsFile is the name of the file holding per-project settings.
const SettingsFile = "sai.toml"

// ErrNoSettings is returned when no settings file exists between a
// directory and the filesystem root.
var ErrNoSettings = errors.New("no " + SettingsFile + " found")

// Settings are the smart enter settings of a project.
type Settings struct {
	// Path is the file the settings were read from, empty for defaults.
	Path  string        `toml:"-"`
	Style StyleSettings `toml:"style"`
	Enter EnterSettings `toml:"enter"`
}

type StyleSettings struct {
	IndentSize                int  `toml:"indent_size"`
	UseTabs                   bool `toml:"use_tabs"`
	SpaceAfterSemicolon       bool `toml:"space_after_semicolon"`
	KeepSimpleBlocksInOneLine bool `toml:"keep_simple_blocks_in_one_line"`
}

type EnterSettings struct {
	MaxAttempts int `toml:"max_attempts"`
}

func DefaultSettings() Settings {
	style := repair.DefaultStyle()
	return Settings{
		Style: StyleSettings{
			IndentSize:                style.IndentSize,
			UseTabs:                   style.UseTabs,
			SpaceAfterSemicolon:       style.SpaceAfterSemicolon,
			KeepSimpleBlocksInOneLine: style.KeepSimpleBlocksInOneLine,
		},
		Enter: EnterSettings{MaxAttempts: repair.DefaultMaxAttempts},
	}
}

// RepairStyle converts the style section for the engine.
func (s Settings) RepairStyle() repair.Style {
	return repair.Style{
		IndentSize:                s.Style.IndentSize,
		UseTabs:                   s.Style.UseTabs,
		SpaceAfterSemicolon:       s.Style.SpaceAfterSemicolon,
		KeepSimpleBlocksInOneLine: s.Style.KeepSimpleBlocksInOneLine,
	}
}

// FindSettings walks up from startDir to the first directory containing a
// settings file.
func FindSettings(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, SettingsFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoSettings
		}
		dir = parent
	}
}

// LoadSettings reads a settings file. Keys it does not know are an error,
// keys it does not set keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Settings{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if s.Style.IndentSize < 0 {
		return Settings{}, fmt.Errorf("%s: style.indent_size must not be negative", path)
	}
	if s.Enter.MaxAttempts < 0 {
		return Settings{}, fmt.Errorf("%s: enter.max_attempts must not be negative", path)
	}
	s.Path = path
	return s, nil
}

// DiscoverSettings loads the settings that apply to startDir, falling back
// to the defaults when there is no settings file.
func DiscoverSettings(startDir string) (Settings, error) {
	path, err := FindSettings(startDir)
	if errors.Is(err, ErrNoSettings) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return LoadSettings(path)
}
