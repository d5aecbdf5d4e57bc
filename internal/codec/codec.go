// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/fsutil"
	"github.com/specialistvlad/hilseq/internal/model"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

const extension = ".json"

// Codec reads and writes test cases in one directory.
type Codec struct {
	dir      string
	resolver model.Resolver
}

// New returns a codec for the test cases in dir. Imported steps are resolved
// through resolver.
func New(dir string, resolver model.Resolver) *Codec {
	return &Codec{dir: dir, resolver: resolver}
}

// Dir returns the test-case directory.
func (c *Codec) Dir() string {
	return c.dir
}

// Stem converts a display name into a file stem: lower case, spaces replaced
// by underscores.
func Stem(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: '%s' contains a path separator", ErrInvalidName, name)
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "_"), nil
}

// DisplayName converts a file stem back into the name shown in listings:
// underscores become spaces and the first letter is capitalised.
func DisplayName(stem string) string {
	name := strings.ReplaceAll(stem, "_", " ")
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Path returns the file a test-case name is stored in.
func (c *Codec) Path(name string) (string, error) {
	stem, err := Stem(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.dir, stem+extension), nil
}

// Export writes the bound steps of s to the file for name and returns its
// path. The file is replaced atomically.
func (c *Codec) Export(ctx context.Context, s *model.Session, name string) (string, error) {
	path, err := c.Path(name)
	if err != nil {
		return "", err
	}

	data, err := Marshal(s, c.resolver)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create test case directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to export test case '%s': %w", name, err)
	}

	ctxlog.FromContext(ctx).Info("Test case exported.", "name", name, "path", path, "steps", s.BoundStepCount())
	return path, nil
}

// Marshal encodes the bound steps of s. Inputs are written as an object keyed
// by input name; null inputs and blocks without inputs produce no "inputs"
// member. When resolver is nil or a block is unknown, input names fall back
// to their position.
func Marshal(s *model.Session, resolver model.Resolver) ([]byte, error) {
	doc := document{Containers: make([]containerDoc, 0, len(s.Containers))}
	for _, c := range s.Containers {
		cd := containerDoc{Name: c.Name, Steps: []stepDoc{}}
		for _, step := range c.BoundSteps() {
			sd := stepDoc{Module: step.Ref.Module, Block: step.Ref.Block}
			var block *model.Block
			if resolver != nil {
				block, _ = resolver.Lookup(*step.Ref)
			}
			for i, v := range step.Inputs {
				if v.IsNull() {
					continue
				}
				raw, err := ctyjson.Marshal(v, v.Type())
				if err != nil {
					return nil, fmt.Errorf("failed to encode input %d of %s: %w", i, step.Ref, err)
				}
				if sd.Inputs == nil {
					sd.Inputs = make(map[string]json.RawMessage)
				}
				sd.Inputs[inputName(block, i)] = raw
			}
			cd.Steps = append(cd.Steps, sd)
		}
		doc.Containers = append(doc.Containers, cd)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode test case: %w", err)
	}
	return append(data, '\n'), nil
}

func inputName(b *model.Block, i int) string {
	if b != nil && i < len(b.Inputs) {
		return b.Inputs[i].Name
	}
	return strconv.Itoa(i)
}

// Load imports the test case stored under name.
func (c *Codec) Load(ctx context.Context, name string) (*model.Session, error) {
	path, err := c.Path(name)
	if err != nil {
		return nil, err
	}
	return c.Import(ctx, path)
}

// Import reads a test-case file into a new session. Steps referencing blocks
// that are not registered are dropped, and steps whose stored inputs no longer
// fit the block's schema get the block defaults; both are logged as warnings.
// A container left without steps receives a placeholder.
func (c *Codec) Import(ctx context.Context, path string) (*model.Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read test case: %w", err)
	}

	s, err := Unmarshal(ctx, data, c.resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("Test case imported.", "path", path, "containers", len(s.Containers), "steps", s.BoundStepCount())
	return s, nil
}

// Unmarshal decodes a test-case document, resolving steps through resolver.
func Unmarshal(ctx context.Context, data []byte, resolver model.Resolver) (*model.Session, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Containers) == 0 && len(doc.Step) > 0 {
		doc.Containers = []containerDoc{{Name: model.DefaultContainerName, Steps: legacySteps(doc.Step)}}
	}

	logger := ctxlog.FromContext(ctx)
	s := &model.Session{}
	for _, cd := range doc.Containers {
		name := cd.Name
		if name == "" {
			name = "Unnamed Test Case"
		}
		container := s.AddContainer(name)
		for _, sd := range cd.Steps {
			ref := model.BlockRef{Module: sd.Module, Block: sd.Block}
			block, ok := resolver.Lookup(ref)
			if !ok {
				logger.Warn(fmt.Sprintf("Block '%s' from module '%s' not found.", sd.Block, sd.Module), "test_case", name)
				continue
			}
			step := container.Append(block)
			if err := decodeInputs(step, block, sd.Inputs); err != nil {
				logger.Warn("Stored inputs do not match the block, using defaults.", "block", ref.String(), "test_case", name, "error", err)
				step.Inputs = block.DefaultInputs()
			}
		}
	}
	if len(s.Containers) == 0 {
		s.Clear()
	}
	return s, nil
}

func decodeInputs(step *model.Step, block *model.Block, raw map[string]json.RawMessage) error {
	for name, msg := range raw {
		i, spec, ok := block.Input(name)
		if !ok {
			return fmt.Errorf("%w: '%s'", model.ErrUnknownInput, name)
		}
		v, err := ctyjson.Unmarshal(msg, spec.Type)
		if err != nil {
			return fmt.Errorf("input '%s': %w", name, err)
		}
		step.Inputs[i] = v
	}
	return nil
}

// legacySteps orders the numbered steps of the single-container layout.
func legacySteps(steps map[string]stepDoc) []stepDoc {
	keys := make([]string, 0, len(steps))
	for k := range steps {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	out := make([]stepDoc, 0, len(keys))
	for _, k := range keys {
		out = append(out, steps[k])
	}
	return out
}

// Entry describes one stored test case.
type Entry struct {
	Name     string
	Stem     string
	Path     string
	Size     int64
	Modified time.Time
}

// List returns the stored test cases sorted by name. A missing directory is
// an empty library.
func (c *Codec) List() ([]Entry, error) {
	files, err := fsutil.FindFilesByExtension(os.DirFS(c.dir), ".", extension)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list test cases: %w", err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if strings.Contains(f, "/") {
			continue
		}
		info, err := os.Stat(filepath.Join(c.dir, f))
		if err != nil {
			return nil, fmt.Errorf("failed to list test cases: %w", err)
		}
		stem := strings.TrimSuffix(f, extension)
		entries = append(entries, Entry{
			Name:     DisplayName(stem),
			Stem:     stem,
			Path:     filepath.Join(c.dir, f),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Remove deletes the test case stored under name.
func (c *Codec) Remove(ctx context.Context, name string) error {
	path, err := c.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to remove test case '%s': %w", name, err)
	}
	ctxlog.FromContext(ctx).Info("Test case removed.", "name", name, "path", path)
	return nil
}
