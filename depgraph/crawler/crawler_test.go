package crawler

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/crawlgraph/depgraph"
	"github.com/LegacyCodeHQ/crawlgraph/source"
)

func crawl(t *testing.T, fsys source.FileSystem, entries ...string) *Result {
	t.Helper()

	logger := slog.New(discardHandler)
	r, err := NewResolver(fsys, nil, logger)
	require.NoError(t, err)

	result, err := New(r, logger).Crawl(context.Background(), entries...)
	require.NoError(t, err)
	return result
}

func TestCrawl_CycleTerminates(t *testing.T) {
	fsys := &fakeFS{files: map[string]string{
		"/proj/a.js": "import b from './b.js';\n",
		"/proj/b.js": "import a from './a.js';\n",
	}}

	result := crawl(t, fsys, "/proj/a.js")

	assert.Equal(t, depgraph.ImportGraph{
		"/proj/a.js": {"/proj/b.js"},
		"/proj/b.js": {"/proj/a.js"},
	}, result.Graph)
	assert.Equal(t, []string{"/proj/a.js", "/proj/b.js"}, result.Visited)
}

func TestCrawl_SelfImport(t *testing.T) {
	fsys := &fakeFS{files: map[string]string{
		"/proj/a.js": "import self from './a.js';\n",
	}}

	result := crawl(t, fsys, "/proj/a.js")

	assert.Equal(t, depgraph.ImportGraph{"/proj/a.js": {"/proj/a.js"}}, result.Graph)
	assert.Equal(t, 1, result.Stats.FilesExtracted)
}

func TestCrawl_DuplicateImportRecordedOnce(t *testing.T) {
	fsys := &fakeFS{files: map[string]string{
		"/proj/a.js": "import b from './b.js';\nimport { c } from './b.js';\n",
		"/proj/b.js": "",
	}}

	result := crawl(t, fsys, "/proj/a.js")

	assert.Equal(t, depgraph.ImportGraph{"/proj/a.js": {"/proj/b.js"}}, result.Graph)
	assert.Equal(t, 1, result.Stats.Edges)
}

func TestCrawl_DiamondExtractsSharedDependencyOnce(t *testing.T) {
	fsys := &fakeFS{files: map[string]string{
		"/proj/a.js": "import b from './b.js';\nimport c from './c.js';\n",
		"/proj/b.js": "import d from './d.js';\n",
		"/proj/c.js": "import d from './d.js';\n",
		"/proj/d.js": "export default 1;\n",
	}}

	result := crawl(t, fsys, "/proj/a.js")

	assert.Equal(t, depgraph.ImportGraph{
		"/proj/a.js": {"/proj/b.js", "/proj/c.js"},
		"/proj/b.js": {"/proj/d.js"},
		"/proj/c.js": {"/proj/d.js"},
	}, result.Graph)
	assert.Equal(t, []string{"/proj/a.js", "/proj/b.js", "/proj/d.js", "/proj/c.js"}, result.Visited)
	assert.Equal(t, 4, result.Stats.FilesExtracted)
	assert.Equal(t, 5, result.Stats.Outcomes[StatusFound])
}

func TestCrawl_MissingImportKeepsEdge(t *testing.T) {
	fsys := &fakeFS{files: map[string]string{
		"/proj/a.js": "import m from './missing';\nimport b from './b.js';\n",
		"/proj/b.js": "",
	}}

	result := crawl(t, fsys, "/proj/a.js")

	assert.Equal(t, depgraph.ImportGraph{
		"/proj/a.js": {"/proj/missing", "/proj/b.js"},
	}, result.Graph)
	assert.NotContains(t, result.Graph, "/proj/missing")
	assert.Equal(t, 1, result.Stats.Outcomes[StatusNotFound])
	assert.Equal(t, []string{"/proj/a.js", "/proj/b.js"}, result.Visited)
}

func TestCrawl_NonModuleTargetsHaveNoOutgoingEdges(t *testing.T) {
	fsys := &fakeFS{
		files: map[string]string{
			"/proj/a.js":      "import s from './style.css';\nimport w from './widgets';\n",
			"/proj/style.css": "import x from './x.js';\n",
		},
		dirs: map[string]bool{"/proj/widgets": true},
	}

	result := crawl(t, fsys, "/proj/a.js")

	assert.Equal(t, depgraph.ImportGraph{
		"/proj/a.js": {"/proj/style.css", "/proj/widgets"},
	}, result.Graph)
	assert.Equal(t, 1, result.Stats.Outcomes[StatusUnsupportedType])
	assert.Equal(t, 1, result.Stats.Outcomes[StatusDirectory])
	assert.Zero(t, fsys.reads["/proj/style.css"])
}

func TestCrawl_ResolvesRelativeToImportingFile(t *testing.T) {
	fsys := &fakeFS{files: map[string]string{
		"/proj/src/a.js":        "import b from '../lib/b.js';\n",
		"/proj/lib/b.js":        "import c from './nested/c.js';\n",
		"/proj/lib/nested/c.js": "",
	}}

	result := crawl(t, fsys, "/proj/src/a.js")

	assert.Equal(t, depgraph.ImportGraph{
		"/proj/src/a.js": {"/proj/lib/b.js"},
		"/proj/lib/b.js": {"/proj/lib/nested/c.js"},
	}, result.Graph)
}

func TestCrawl_UnresolvedEntryYieldsEmptyGraph(t *testing.T) {
	result := crawl(t, &fakeFS{}, "/proj/missing.js")

	assert.Empty(t, result.Graph)
	assert.Empty(t, result.Visited)
	assert.Equal(t, 1, result.Stats.Outcomes[StatusNotFound])
}

func TestCrawl_MultipleEntriesShareVisitedSet(t *testing.T) {
	fsys := &fakeFS{files: map[string]string{
		"/proj/a.js":      "import s from './shared.js';\n",
		"/proj/b.js":      "import s from './shared.js';\n",
		"/proj/shared.js": "",
	}}

	result := crawl(t, fsys, "/proj/a.js", "/proj/b.js")

	assert.Equal(t, depgraph.ImportGraph{
		"/proj/a.js": {"/proj/shared.js"},
		"/proj/b.js": {"/proj/shared.js"},
	}, result.Graph)
	assert.Equal(t, []string{"/proj/a.js", "/proj/shared.js", "/proj/b.js"}, result.Visited)
}

func TestCrawl_FatalErrorAborts(t *testing.T) {
	fsys := &fakeFS{
		files: map[string]string{
			"/proj/a.js": "import b from './b.js';\nimport c from './c.js';\n",
			"/proj/c.js": "",
		},
		statErr: map[string]error{"/proj/b.js": fs.ErrPermission},
	}
	logger := slog.New(discardHandler)
	r, err := NewResolver(fsys, nil, logger)
	require.NoError(t, err)

	result, err := New(r, logger).Crawl(context.Background(), "/proj/a.js")

	require.ErrorIs(t, err, fs.ErrPermission)
	assert.Nil(t, result)
	assert.Zero(t, fsys.reads["/proj/c.js"])
}

func TestCrawl_OnDisk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.js"), "import Bar from './widgets/bar.js';\nimport { style } from \"./style.js\";\n")
	writeFile(t, filepath.Join(dir, "widgets", "bar.js"), "import { style } from '../style.js';\nimport Gtk from 'gi://Gtk';\n")
	writeFile(t, filepath.Join(dir, "style.js"), "export const style = {};\n")

	result := crawl(t, source.OS{}, filepath.Join(dir, "config.js"))

	assert.Equal(t, depgraph.ImportGraph{
		filepath.Join(dir, "config.js"):         {filepath.Join(dir, "widgets", "bar.js"), filepath.Join(dir, "style.js")},
		filepath.Join(dir, "widgets", "bar.js"): {filepath.Join(dir, "style.js")},
	}, result.Graph)
	assert.Positive(t, result.Stats.BytesRead)
}
