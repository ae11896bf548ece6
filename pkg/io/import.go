// Package io loads tree documents from JSON, TOML, and YAML files.
//
// A document is any nested value the format can express; the decoded value
// is adapted with [tree.Any], so objects become keyed children, arrays
// become positional children, and scalars become leaves. [Import] picks
// the decoder from the file extension; the Read functions take explicit
// readers for streaming or testing.
package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// ReadJSON decodes a JSON document from r into a tree.
// Numbers decode as json.Number so they render exactly as written.
func ReadJSON(r io.Reader) (tree.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode JSON")
	}
	return tree.Any(doc), nil
}

// ReadTOML decodes a TOML document from r into a tree. The document root
// is always a table, so the root node is always keyed.
func ReadTOML(r io.Reader) (tree.Node, error) {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode TOML")
	}
	return tree.Any(doc), nil
}

// ReadYAML decodes a YAML document from r into a tree.
func ReadYAML(r io.Reader) (tree.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read YAML")
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode YAML")
	}
	return tree.Any(doc), nil
}

// readers maps file extensions to decoders.
var readers = map[string]func(io.Reader) (tree.Node, error){
	".json": ReadJSON,
	".toml": ReadTOML,
	".yaml": ReadYAML,
	".yml":  ReadYAML,
}

// Import reads the document at path, choosing the decoder from the file
// extension (.json, .toml, .yaml, .yml). Unknown extensions fail with an
// INVALID_FORMAT error; missing files with FILE_NOT_FOUND.
func Import(path string) (tree.Node, error) {
	read, ok := readers[filepath.Ext(path)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension: %q", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	return read(f)
}
