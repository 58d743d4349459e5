package host

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// host, state and glimpse must build without cgo windowing libraries
func TestPackagesDoNotDependOnGLFW(t *testing.T) {
	for _, dir := range []string{".", "../state", "../glimpse"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		require.NoError(t, err)
		require.NotEmpty(t, files)

		for _, file := range files {
			parsed, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
			require.NoError(t, err)

			for _, spec := range parsed.Imports {
				path, err := strconv.Unquote(spec.Path.Value)
				require.NoError(t, err)

				assert.False(t, strings.Contains(path, "glfw"), "%s imports %s", file, path)
				assert.False(t, strings.HasSuffix(path, "glimpse/desktop"), "%s imports %s", file, path)
			}
		}
	}
}
