package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/render/text"
)

func TestReadJSON(t *testing.T) {
	doc := `{"name": "api", "replicas": 3, "ports": [80, 443]}`

	root, err := ReadJSON(strings.NewReader(doc))
	require.NoError(t, err)

	out, err := text.RenderString(root)
	require.NoError(t, err)

	want := "map[3]\n" +
		"├─ name ⇒ api\n" +
		"├─ ports ⇒ list[2]\n" +
		"│          ├─ 80\n" +
		"│          └─ 443\n" +
		"└─ replicas ⇒ 3\n"
	assert.Equal(t, want, out)
}

func TestReadJSONPreservesNumberText(t *testing.T) {
	root, err := ReadJSON(strings.NewReader(`{"ratio": 1.50}`))
	require.NoError(t, err)

	out, err := text.RenderString(root)
	require.NoError(t, err)
	assert.Contains(t, out, "1.50")
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"broken":`))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidDocument, errors.GetCode(err))
}

func TestReadTOML(t *testing.T) {
	doc := "title = \"demo\"\n[server]\nport = 8080\n"

	root, err := ReadTOML(strings.NewReader(doc))
	require.NoError(t, err)

	out, err := text.RenderString(root)
	require.NoError(t, err)
	assert.Contains(t, out, "title ⇒ demo")
	assert.Contains(t, out, "server ⇒ map[1]")
	assert.Contains(t, out, "port ⇒ 8080")
}

func TestReadTOMLInvalid(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("= nope"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidDocument, errors.GetCode(err))
}

func TestReadYAML(t *testing.T) {
	doc := "name: worker\ntags:\n  - batch\n  - cron\n"

	root, err := ReadYAML(strings.NewReader(doc))
	require.NoError(t, err)

	out, err := text.RenderString(root)
	require.NoError(t, err)
	assert.Contains(t, out, "name ⇒ worker")
	assert.Contains(t, out, "├─ batch")
	assert.Contains(t, out, "└─ cron")
}

func TestImportDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok": true}`), 0o600))

	root, err := Import(path)
	require.NoError(t, err)

	out, err := text.RenderString(root)
	require.NoError(t, err)
	assert.Contains(t, out, "ok ⇒ true")
}

func TestImportUnknownExtension(t *testing.T) {
	_, err := Import("doc.xml")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetCode(err))
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetCode(err))
}
