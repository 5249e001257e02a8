package fieldspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "optionfield/internal/errors"
)

const astraFields = `
fields:
  - name: database_name
    display_name: Database
    info: Select a database in **Astra DB**.
    options: [prod, staging]
    options_metadata:
      - {records: 1200, icon: Database, collections: 3, region: us-east1}
      - {collections: 1, icon: null, provider: null, ratio: 0.5}
    value: prod
    dialog_inputs:
      title: Create New Database
      description: Create a new database.
      fields:
        - {name: name, label: Name, placeholder: my-db}
        - {name: region, label: Region, options: [us-east1, eu-west1]}
  - name: operation
    options: [Add, Subtract]
    combobox: true
    value: Multiply
`

func TestParse(t *testing.T) {
	fields, err := Parse([]byte(astraFields))
	require.NoError(t, err)
	require.Len(t, fields, 2)

	db := fields[0]
	assert.Equal(t, "Database", db.Label())
	assert.Equal(t, LayoutDetailed, db.Layout())
	assert.Equal(t, []string{"prod", "staging"}, db.Options)
	assert.Equal(t, "prod", db.Value)
	assert.Empty(t, db.Warnings)

	require.NotNil(t, db.DialogInputs)
	assert.Equal(t, "Create New Database", db.DialogInputs.Title)
	require.Len(t, db.DialogInputs.Fields, 2)
	assert.Equal(t, []string{"us-east1", "eu-west1"}, db.DialogInputs.Fields[1].Options)

	op := fields[1]
	assert.Equal(t, "operation", op.Label())
	assert.Equal(t, LayoutPlain, op.Layout())
	assert.True(t, op.Combobox)
	assert.Empty(t, op.Warnings, "free-text values need not be options")
}

func TestParseMetadataKeepsOrder(t *testing.T) {
	fields, err := Parse([]byte(astraFields))
	require.NoError(t, err)

	meta := fields[0].OptionsMetadata
	require.Len(t, meta, 2)

	assert.Equal(t, "Database", meta[0].Icon)
	assert.Equal(t, []Attr{
		{Key: "records", Value: int64(1200)},
		{Key: "collections", Value: int64(3)},
		{Key: "region", Value: "us-east1"},
	}, meta[0].Attrs)

	assert.Empty(t, meta[1].Icon)
	assert.Equal(t, []Attr{
		{Key: "collections", Value: int64(1)},
		{Key: "provider", Value: nil},
		{Key: "ratio", Value: 0.5},
	}, meta[1].Attrs)
}

func TestParseWarnings(t *testing.T) {
	fields, err := Parse([]byte(`
fields:
  - name: collection_name
    options: [a, b, a]
    options_metadata:
      - {records: 1}
    value: c
`))
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, []string{
		"options_metadata has 1 entries for 3 options",
		`option "a" is listed more than once`,
		`value "c" is not one of the options`,
	}, fields[0].Warnings)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code appErrors.Code
	}{
		{"malformed yaml", "fields: [", appErrors.CodeParseFailed},
		{"metadata not a mapping", "fields:\n  - name: a\n    options_metadata: [3]\n", appErrors.CodeParseFailed},
		{"nested metadata value", "fields:\n  - name: a\n    options_metadata:\n      - {x: [1]}\n", appErrors.CodeParseFailed},
		{"missing name", "fields:\n  - options: [a]\n", appErrors.CodeInvalidField},
		{"duplicate name", "fields:\n  - name: a\n  - name: a\n", appErrors.CodeInvalidField},
		{"unnamed dialog input", "fields:\n  - name: a\n    dialog_inputs:\n      fields:\n        - label: X\n", appErrors.CodeInvalidField},
		{"duplicate dialog input", "fields:\n  - name: a\n    dialog_inputs:\n      fields: [{name: x}, {name: x}]\n", appErrors.CodeInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, tt.code, appErrors.CodeOf(err), "error: %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "fields.yaml")
		require.NoError(t, os.WriteFile(path, []byte(astraFields), 0o600))
		fields, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, fields, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeNotFound))
	})

	t.Run("invalid file keeps code", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fields:\n  - name: \"\"\n"), 0o600))
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidField))
		assert.Contains(t, err.Error(), path)
	})

	t.Run("empty document", func(t *testing.T) {
		fields, err := Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, fields)
	})
}
