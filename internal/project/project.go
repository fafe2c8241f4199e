// internal/project/project.go

// Package project persists edit sets as HCL files. A project declares
// optional metadata and an ordered list of edit blocks:
//
//	name   = "harder zombies"
//	source = "data0.pak"
//
//	edit "data/scripts/ai.scr" "Zombie.Health" {
//	  set = [250]
//	}
//	edit "data/scripts/ai.scr" "Zombie.Scream" {
//	  delete  = true
//	  enabled = false
//	  note    = "too quiet without it"
//	}
//
// Exactly one of `set` and `delete` appears per edit. A project loads
// from a single file or from a directory, where every .hcl file is read
// in name order and the edit logs concatenate.
package project

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/PakBeast/PakBeast/internal/ctxlog"
	"github.com/PakBeast/PakBeast/internal/edit"
	"github.com/PakBeast/PakBeast/internal/fsutil"
)

// File is one loaded project: metadata plus the ordered edit log.
type File struct {
	Name   string
	Author string
	Source string
	Edits  []edit.Edit
}

// fileRoot is the gohcl decode target for a single project file.
type fileRoot struct {
	Name   string       `hcl:"name,optional"`
	Author string       `hcl:"author,optional"`
	Source string       `hcl:"source,optional"`
	Edits  []*editBlock `hcl:"edit,block"`
	Remain hcl.Body     `hcl:",remain"`
}

// editBlock is the HCL form of one edit: two labels address the target,
// the body carries the operation.
type editBlock struct {
	File    string         `hcl:"file,label"`
	Address string         `hcl:"address,label"`
	Set     hcl.Expression `hcl:"set,optional"`
	Delete  bool           `hcl:"delete,optional"`
	Enabled *bool          `hcl:"enabled,optional"`
	Note    string         `hcl:"note,optional"`
}

// Load reads a project from a file, or from every .hcl file under a
// directory in name order.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing project path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindByExtensions(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("scanning project directory %s: %w", path, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no .hcl project files under %s", path)
		}
	}
	logger.Debug("Loading project.", "path", path, "files", len(files))

	merged := &File{}
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading project file %s: %w", name, err)
		}
		f, err := Decode(name, src)
		if err != nil {
			return nil, err
		}
		merged.merge(f)
	}
	logger.Debug("Project loaded.", "edits", len(merged.Edits))
	return merged, nil
}

// Decode parses one project file from memory.
func Decode(filename string, src []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse project file %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project file %s: %w", filename, diags)
	}

	f := &File{Name: root.Name, Author: root.Author, Source: root.Source}
	for _, blk := range root.Edits {
		e, err := translateEdit(filename, blk)
		if err != nil {
			return nil, err
		}
		f.Edits = append(f.Edits, e)
	}
	return f, nil
}

// merge folds another file into this one: the first non-empty metadata
// wins, edit logs concatenate.
func (f *File) merge(other *File) {
	if f.Name == "" {
		f.Name = other.Name
	}
	if f.Author == "" {
		f.Author = other.Author
	}
	if f.Source == "" {
		f.Source = other.Source
	}
	f.Edits = append(f.Edits, other.Edits...)
}
