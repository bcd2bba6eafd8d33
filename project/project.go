package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Project is a directory tree of Java sources together with the settings
// that apply to it.
type Project struct {
	RootDir  string
	Settings Settings
	Modules  []*Module
}

// Module is a Java module laid out as src/<project>/<module>/module-info.java.
type Module struct {
	Name       string
	SrcDir     string
	ModuleInfo string
}

// Load finds the project containing dir. The root is the directory of the
// nearest settings file, or dir itself when there is none.
func Load(dir string) (*Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	settings := DefaultSettings()
	path, err := FindSettings(root)
	switch {
	case err == nil:
		if settings, err = LoadSettings(path); err != nil {
			return nil, err
		}
		root = filepath.Dir(path)
	case !errors.Is(err, ErrNoSettings):
		return nil, err
	}

	modules, err := scanModules(filepath.Join(root, "src"))
	if err != nil {
		return nil, err
	}
	return &Project{RootDir: root, Settings: settings, Modules: modules}, nil
}

func scanModules(srcDir string) ([]*Module, error) {
	projects, err := os.ReadDir(srcDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read src directory: %w", err)
	}

	var modules []*Module
	for _, p := range projects {
		if !p.IsDir() {
			continue
		}
		projectDir := filepath.Join(srcDir, p.Name())
		entries, err := os.ReadDir(projectDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			moduleDir := filepath.Join(projectDir, entry.Name())
			moduleInfo := filepath.Join(moduleDir, "module-info.java")
			if _, err := os.Stat(moduleInfo); err != nil {
				continue
			}
			modules = append(modules, &Module{
				Name:       p.Name() + "." + entry.Name(),
				SrcDir:     moduleDir,
				ModuleInfo: moduleInfo,
			})
		}
	}
	return modules, nil
}

// JavaFiles returns the .java files of the module, module-info.java first.
func (m *Module) JavaFiles() ([]string, error) {
	files, err := javaFiles(m.SrcDir)
	if err != nil {
		return nil, err
	}
	out := []string{m.ModuleInfo}
	for _, f := range files {
		if f != m.ModuleInfo {
			out = append(out, f)
		}
	}
	return out, nil
}

// JavaFiles returns the .java files of all modules, or of the whole root
// when the project has no modules.
func (p *Project) JavaFiles() ([]string, error) {
	if len(p.Modules) == 0 {
		return javaFiles(p.RootDir)
	}
	var out []string
	for _, m := range p.Modules {
		files, err := m.JavaFiles()
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

func javaFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".java") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan java files in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
