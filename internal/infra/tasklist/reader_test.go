package tasklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

func descriptions(specs []domain.TaskSpec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Description)
	}
	return out
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "   ", []string{}},
		{"single", "implement auth", []string{"implement auth"}},
		{"comma", "implement auth, test auth ,, deploy", []string{"implement auth", "test auth", "deploy"}},
		{"newline", "1. implement auth\n- [ ] test auth\n* deploy\n\n", []string{"implement auth", "test auth", "deploy"}},
		{"checked box", "- [x] done item\n- [ ] open item", []string{"done item", "open item"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, descriptions(ParseString(tt.input)))
		})
	}
}

func TestParseMarkdown(t *testing.T) {
	content := `# Sprint

Some prose that is not a task.

## Backend
- [ ] implement auth API
- [x] fix cart bug
* review payment module
1. deploy
`

	got := descriptions(ParseMarkdown(content))

	assert.Equal(t, []string{"implement auth API", "fix cart bug", "review payment module", "deploy"}, got)
}

func TestReader_Read(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("json list of strings", func(t *testing.T) {
		specs, err := Reader{}.Read(write("a.json", `["implement auth", "test auth"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"implement auth", "test auth"}, descriptions(specs))
	})

	t.Run("json objects with cost", func(t *testing.T) {
		specs, err := Reader{}.Read(write("b.json", `{"tasks": [{"task": "implement auth", "cost": 3}, "test auth"]}`))
		require.NoError(t, err)
		assert.Equal(t, []domain.TaskSpec{
			{Description: "implement auth", Cost: 3},
			{Description: "test auth"},
		}, specs)
	})

	t.Run("yaml", func(t *testing.T) {
		specs, err := Reader{}.Read(write("c.yaml", "- implement auth\n- task: test auth\n  cost: 2\n"))
		require.NoError(t, err)
		assert.Equal(t, []domain.TaskSpec{
			{Description: "implement auth"},
			{Description: "test auth", Cost: 2},
		}, specs)
	})

	t.Run("yaml wrapped", func(t *testing.T) {
		specs, err := Reader{}.Read(write("d.yml", "tasks:\n  - build api\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"build api"}, descriptions(specs))
	})

	t.Run("markdown", func(t *testing.T) {
		specs, err := Reader{}.Read(write("e.md", "# T\n- [ ] one\n- [ ] two\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, descriptions(specs))
	})

	t.Run("plain text", func(t *testing.T) {
		specs, err := Reader{}.Read(write("f.txt", "one\ntwo\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, descriptions(specs))
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := Reader{}.Read(write("g.json", `{"tasks": 3}`))
		assert.ErrorIs(t, err, domain.ErrUnsupportedTaskSrc)
	})

	t.Run("yaml scalar document", func(t *testing.T) {
		_, err := Reader{}.Read(write("h.yaml", "just text"))
		assert.ErrorIs(t, err, domain.ErrUnsupportedTaskSrc)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Reader{}.Read(filepath.Join(dir, "missing.md"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
