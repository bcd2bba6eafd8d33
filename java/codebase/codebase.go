// Package codebase keeps the Java documents an editor has open and runs
// smart enter on them for the language server.
package codebase

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/smartenter/java/smartenter"
	"github.com/dhamidi/smartenter/project"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/text"
)

var ErrUnknownFile = errors.New("file is not open")

type Codebase struct {
	mu       sync.RWMutex
	rootDir  string
	settings project.Settings
	engine   *repair.Engine
	files    map[string]*FileInfo
}

// FileInfo is one document. Its lock serialises smart enter invocations
// on it.
type FileInfo struct {
	mu      sync.Mutex
	path    string
	content []byte
	version int32
}

// Snapshot is a copy of a document's state.
type Snapshot struct {
	Path    string
	Content []byte
	Version int32
}

// New creates a codebase rooted at rootDir, using the settings that apply
// to that directory.
func New(rootDir string) (*Codebase, error) {
	settings, err := project.DiscoverSettings(rootDir)
	if err != nil {
		return nil, err
	}
	return NewWithSettings(rootDir, settings), nil
}

func NewWithSettings(rootDir string, settings project.Settings) *Codebase {
	engine := smartenter.NewEngine(smartenter.Options{
		Style:       settings.RepairStyle(),
		MaxAttempts: settings.Enter.MaxAttempts,
		Logger:      commonlog.GetLogger("smartenter.lsp.engine"),
	})
	return &Codebase{
		rootDir:  rootDir,
		settings: settings,
		engine:   engine,
		files:    make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Settings() project.Settings {
	return c.settings
}

// ScanFile reads a document from disk.
func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content, 0)
	return nil
}

func (c *Codebase) UpdateFile(path string, content []byte, version int32) {
	f := c.file(path, true)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = append([]byte(nil), content...)
	f.version = version
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

// GetFile returns a snapshot of a document, or nil if it is not open.
func (c *Codebase) GetFile(path string) *Snapshot {
	f := c.file(path, false)
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &Snapshot{Path: f.path, Content: append([]byte(nil), f.content...), Version: f.version}
}

func (c *Codebase) file(path string, create bool) *FileInfo {
	c.mu.RLock()
	f := c.files[path]
	c.mu.RUnlock()
	if f != nil || !create {
		return f
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if f = c.files[path]; f == nil {
		f = &FileInfo{path: path}
		c.files[path] = f
	}
	return f
}

// EnterResult is the outcome of smart enter on a document.
type EnterResult struct {
	Old, New []byte
	// Line and Character locate the new caret, zero-based, with the
	// character counted in UTF-16 code units.
	Line, Character int
	Outcome         repair.Outcome
}

// SmartEnter runs smart enter at a zero-based line and UTF-16 character
// and stores the new content.
func (c *Codebase) SmartEnter(path string, line, character int, afterCompletion bool) (EnterResult, error) {
	f := c.file(path, false)
	if f == nil {
		return EnterResult{}, fmt.Errorf("%s: %w", path, ErrUnknownFile)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	caret, err := OffsetOf(f.content, line, character)
	if err != nil {
		return EnterResult{}, fmt.Errorf("%s: %w", path, err)
	}
	buf := text.NewBuffer(string(f.content))
	res, err := c.engine.Run(repair.Request{Buffer: buf, Caret: caret, AfterCompletion: afterCompletion})
	if err != nil {
		return EnterResult{}, err
	}

	out := EnterResult{Old: f.content, New: buf.Bytes(), Outcome: res.Outcome}
	out.Line, out.Character = PositionOf(out.New, res.Caret)
	f.content = append([]byte(nil), out.New...)
	return out, nil
}

// OffsetOf converts a zero-based line and UTF-16 character to a byte
// offset. A character past the end of the line is clamped to it.
func OffsetOf(src []byte, line, character int) (int, error) {
	if line < 0 || character < 0 {
		return 0, fmt.Errorf("position %d:%d: %w", line, character, text.ErrOutOfRange)
	}
	i := 0
	for l := 0; l < line; l++ {
		for i < len(src) && src[i] != '\n' {
			i++
		}
		if i == len(src) {
			return 0, fmt.Errorf("line %d: %w", line, text.ErrOutOfRange)
		}
		i++
	}
	for units := 0; units < character && i < len(src) && src[i] != '\n'; {
		r, size := utf8.DecodeRune(src[i:])
		units += utf16Len(r)
		i += size
	}
	return i, nil
}

// PositionOf converts a byte offset to a zero-based line and UTF-16
// character.
func PositionOf(src []byte, offset int) (int, int) {
	offset = min(max(offset, 0), len(src))
	line, character := 0, 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(src[i:])
		if r == '\n' {
			line++
			character = 0
		} else {
			character += utf16Len(r)
		}
		i += size
	}
	return line, character
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
