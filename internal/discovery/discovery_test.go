package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for file discovery:
// - Source patterns select files anywhere in the tree, including the root
// - Ignore patterns exclude files and whole directory subtrees
// - Matches filters single relative paths the same way the walk does
// - Invalid glob patterns fail at construction

func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("export {};\n"), 0o644))
	}
}

func TestDiscover_SelectsSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"App.tsx",
		"src/components/Greeting.jsx",
		"src/util.ts",
		"src/types.d.ts",
		"node_modules/react-intl/index.js",
		"dist/bundle.js",
		"README.md",
	)

	fd, err := New(root,
		[]string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx"},
		[]string{"node_modules/**", "dist/**", "**/*.d.ts"},
	)
	require.NoError(t, err)

	files, err := fd.Discover()
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}

	assert.ElementsMatch(t, []string{
		"App.tsx",
		"src/components/Greeting.jsx",
		"src/util.ts",
	}, rel)
}

func TestDiscover_IgnoresDirectorySubtrees(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/App.jsx",
		"coverage/lcov-report/block.js",
	)

	fd, err := New(root, []string{"**/*.js", "**/*.jsx"}, []string{"coverage/**"})
	require.NoError(t, err)

	files, err := fd.Discover()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(root, "src", "App.jsx"), files[0])
}

func TestMatches_FiltersSinglePaths(t *testing.T) {
	fd, err := New("/unused",
		[]string{"**/*.jsx", "**/*.tsx"},
		[]string{"node_modules/**"},
	)
	require.NoError(t, err)

	assert.True(t, fd.Matches("src/App.jsx"))
	assert.True(t, fd.Matches("App.tsx"))
	assert.False(t, fd.Matches("src/App.css"))
	assert.False(t, fd.Matches("node_modules/pkg/index.jsx"))
}

func TestNew_InvalidPatternFails(t *testing.T) {
	_, err := New("/unused", []string{"[invalid"}, nil)
	assert.Error(t, err)
}
