package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/smartenter/repair"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverSettingsWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, SettingsFile), `
[style]
indent_size = 2
use_tabs = true

[enter]
max_attempts = 5
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	s, err := DiscoverSettings(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, SettingsFile), s.Path)
	assert.Equal(t, 2, s.Style.IndentSize)
	assert.True(t, s.Style.UseTabs)
	assert.True(t, s.Style.SpaceAfterSemicolon, "unset keys keep defaults")
	assert.Equal(t, 5, s.Enter.MaxAttempts)
	assert.Equal(t, "\t", s.RepairStyle().Unit())
}

func TestDiscoverSettingsDefaults(t *testing.T) {
	_, err := FindSettings(t.TempDir())
	if err == nil {
		t.Skip("a settings file exists above the temporary directory")
	}
	assert.ErrorIs(t, err, ErrNoSettings)

	s, err := DiscoverSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, repair.DefaultStyle(), s.RepairStyle())
}

func TestLoadSettingsRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	writeFile(t, path, "[style]\nindent = 3\n\n[other]\nx = 1\n")
	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "other.x")
	assert.Contains(t, err.Error(), "style.indent")
}

func TestLoadSettingsRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	writeFile(t, path, "[enter]\nmax_attempts = -1\n")
	_, err := LoadSettings(path)
	assert.Error(t, err)

	writeFile(t, path, "[style\n")
	_, err = LoadSettings(path)
	assert.Error(t, err)
}

func TestLoadFindsModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, SettingsFile), "")
	writeFile(t, filepath.Join(root, "src", "app", "core", "module-info.java"), "module app.core {}\n")
	writeFile(t, filepath.Join(root, "src", "app", "core", "app", "core", "A.java"), "class A {}\n")
	writeFile(t, filepath.Join(root, "src", "app", "notes", "README.md"), "")

	p, err := Load(filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.Equal(t, root, p.RootDir)
	require.Len(t, p.Modules, 1)
	assert.Equal(t, "app.core", p.Modules[0].Name)

	files, err := p.JavaFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, p.Modules[0].ModuleInfo, files[0])
	assert.Equal(t, "A.java", filepath.Base(files[1]))
}

func TestLoadWithoutModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, SettingsFile), "")
	writeFile(t, filepath.Join(root, "B.java"), "class B {}\n")
	writeFile(t, filepath.Join(root, ".git", "C.java"), "class C {}\n")

	p, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, p.Modules)
	files, err := p.JavaFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "B.java")}, files)
}
