package tree

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadView(t *testing.T, content string, opts ...Option) *View {
	t.Helper()
	ix := New(writeFixture(t, content), opts...)
	require.NoError(t, ix.Load())
	v, err := ix.View()
	require.NoError(t, err)
	return v
}

func names(recs []*Record) []string {
	out := []string{}
	for _, r := range recs {
		out = append(out, r.Name())
	}
	return out
}

func TestScenarioA_Siblings(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nA|C\n")

	assert.Equal(t, []string{"B", "C"}, names(v.Leaves()))
	assert.Equal(t, []string{"B", "C"}, names(v.DeepestNodes()))
	assert.Equal(t, 1, v.MaxDepth())
}

func TestScenarioB_Chain(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nB|C\n")

	assert.Equal(t, 2, v.MaxDepth())
	assert.Equal(t, []string{"C"}, names(v.DeepestNodes()))
	assert.Equal(t, []string{"C"}, names(v.Leaves()))
}

func TestScenarioC_MalformedLineKeepsIndexEmpty(t *testing.T) {
	for _, content := range []string{
		"onlyonefield\nA|B\n",
		"ROOT|A\nonlyonefield\n",
		"ROOT|A\nA|B\nonlyonefield",
		"ROOT|A\nA|B|C\n",
	} {
		ix := New(writeFixture(t, content))
		err := ix.Load()

		var malformed *MalformedLineError
		require.ErrorAs(t, err, &malformed, "content %q", content)
		assert.Equal(t, Empty, ix.State())

		_, err = ix.Leaves()
		assert.ErrorIs(t, err, ErrNotLoaded)
	}
}

func TestScenarioD_FindByDeclaredParentName(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nA|C\n")
	assert.Equal(t, []string{"B", "C"}, names(v.FindByDeclaredParentName("A")))

	// Matches on the declared string even when the parent never resolved.
	v = loadView(t, "ROOT|A\nX|B\nX|C\n")
	assert.Equal(t, []string{"B", "C"}, names(v.FindByDeclaredParentName("X")))
}

func TestMalformedLineErrorDetails(t *testing.T) {
	path := writeFixture(t, "ROOT|A\n\nA|B\n")
	err := New(path).Load()

	var malformed *MalformedLineError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, "", malformed.Text)
	assert.Equal(t, 1, malformed.Fields)
	assert.Equal(t, path, malformed.Path)
	assert.Contains(t, err.Error(), path+":2")
}

func TestLoad_LineTooLongNamesTheLine(t *testing.T) {
	long := strings.Repeat("x", MaxLineBytes+1)
	path := writeFixture(t, "ROOT|A\nA|B\nB|"+long+"\n")
	ix := New(path)
	err := ix.Load()

	var tooLong *LineTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 3, tooLong.Line)
	assert.Equal(t, path, tooLong.Path)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Contains(t, err.Error(), path+":3")
	assert.Equal(t, Empty, ix.State())
}

func TestLoad_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	ix := New(path)
	err := ix.Load()

	var notFound *FileNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, path, notFound.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, Empty, ix.State())
}

func TestLoad_DirectoryIsNotAFile(t *testing.T) {
	err := New(t.TempDir()).Load()

	var notFound *FileNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLoad_EmptyInput(t *testing.T) {
	ix := New(writeFixture(t, ""))
	assert.ErrorIs(t, ix.Load(), ErrEmptyInput)
	assert.Equal(t, Empty, ix.State())
}

func TestLoad_SecondLoadRejected(t *testing.T) {
	ix := New(writeFixture(t, "ROOT|A\n"))
	require.NoError(t, ix.Load())
	assert.ErrorIs(t, ix.Load(), ErrAlreadyLoaded)
	assert.ErrorIs(t, ix.LoadFrom(strings.NewReader("X|Y\n")), ErrAlreadyLoaded)
	assert.Equal(t, Loaded, ix.State())
}

func TestLoad_TrimsFieldsAndCRLF(t *testing.T) {
	v := loadView(t, "  ROOT | A \r\n A |  B\r\n")

	root := v.Root()
	assert.Equal(t, "A", root.Name())
	assert.Equal(t, "ROOT", root.ParentName())
	b := root.Next()
	require.NotNil(t, b)
	assert.Equal(t, "B", b.Name())
	assert.Same(t, root, b.Parent())
}

func TestLoad_RootParentFieldNeverResolved(t *testing.T) {
	// The root's declared parent is stored but not looked up.
	v := loadView(t, "A|A\nA|B\n")

	root := v.Root()
	assert.True(t, root.IsRoot())
	assert.False(t, root.Resolved())
	assert.Equal(t, 0, root.Depth())
	assert.Equal(t, "A", root.ParentName())
}

func TestQueriesBeforeLoad(t *testing.T) {
	ix := New("unused.txt")

	_, err := ix.View()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = ix.ResolveParentByName("A")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = ix.FindByName("A")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = ix.FindByDeclaredParentName("A")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = ix.IsLeaf(nil)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = ix.Leaves()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = ix.MaxDepth()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = ix.DeepestNodes()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = ix.PrintableTree()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestIndexQueriesAfterLoad(t *testing.T) {
	ix := New(writeFixture(t, "ROOT|A\nA|B\nB|C\n"))
	require.NoError(t, ix.Load())

	depth, err := ix.MaxDepth()
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	leaves, err := ix.Leaves()
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, names(leaves))

	b, err := ix.ResolveParentByName("B")
	require.NoError(t, err)
	leaf, err := ix.IsLeaf(b)
	require.NoError(t, err)
	assert.False(t, leaf)

	lines, err := ix.PrintableTree()
	require.NoError(t, err)
	assert.Len(t, lines, 3)
}

func TestLegacyOrphanLoadsAtDepthZero(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nZ|Q\nQ|R\n")

	q := v.ResolveParentByName("Q")
	require.NotNil(t, q)
	assert.Nil(t, q.Parent())
	assert.False(t, q.Resolved())
	assert.False(t, q.IsRoot())
	assert.Equal(t, 0, q.Depth())
	assert.Equal(t, 1, v.ResolveParentByName("R").Depth())
	assert.Equal(t, []string{"Q"}, names(v.Orphans()))
}

func TestStrictModeRejectsOrphan(t *testing.T) {
	ix := New(writeFixture(t, "ROOT|A\nA|B\nZ|Q\n"), WithStrict(true))
	err := ix.Load()

	var unresolved *UnresolvedParentError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, 3, unresolved.Line)
	assert.Equal(t, "Q", unresolved.Name)
	assert.Equal(t, "Z", unresolved.ParentName)
	assert.Equal(t, Empty, ix.State())
}

func TestDepthInvariant(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nA|C\nB|D\nD|E\nC|F\nNOPE|G\nG|H\n")

	assert.Equal(t, 0, v.Root().Depth())
	for _, rec := range v.Records() {
		if rec.Parent() == nil {
			continue
		}
		assert.Equal(t, rec.Parent().Depth()+1, rec.Depth(), rec.String())
		assert.Equal(t, rec.ParentName(), rec.Parent().Name())
		assert.Less(t, rec.Parent().Line(), rec.Line())
	}
}

func TestDuplicateNamesFirstMatchWins(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nA|B\nB|C\n")

	bs := v.FindByName("B")
	require.Len(t, bs, 2)
	assert.Equal(t, []int{2, 3}, []int{bs[0].Line(), bs[1].Line()})

	c := v.ResolveParentByName("C")
	assert.Same(t, bs[0], c.Parent())
	assert.False(t, v.IsLeaf(bs[0]))
	assert.True(t, v.IsLeaf(bs[1]))
	assert.Equal(t, []string{"B", "C"}, names(v.Leaves()))
}

func TestFindByNameAbsent(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\n")

	got := v.FindByName("missing")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Nil(t, v.ResolveParentByName("missing"))
	assert.Empty(t, v.FindByDeclaredParentName("missing"))
}

func TestRootOnlyTree(t *testing.T) {
	v := loadView(t, "ROOT|A")

	assert.Equal(t, 0, v.MaxDepth())
	assert.Equal(t, []string{"A"}, names(v.DeepestNodes()))
	assert.Empty(t, v.Leaves())
	assert.Equal(t, 1, v.Len())
}

func TestLeavesNeverIncludeRootOrParents(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nA|C\nB|D\nC|E\nC|F\n")

	leaves := v.Leaves()
	assert.Equal(t, []string{"D", "E", "F"}, names(leaves))
	for _, leaf := range leaves {
		assert.False(t, leaf.IsRoot())
		for _, rec := range v.Records() {
			assert.NotSame(t, leaf, rec.Parent())
		}
	}
}

func TestDeepestNodesMatchMaxDepth(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nB|C\nA|D\nD|E\n")

	deepest := v.DeepestNodes()
	require.NotEmpty(t, deepest)
	for _, rec := range deepest {
		assert.Equal(t, v.MaxDepth(), rec.Depth())
	}
	assert.Equal(t, []string{"C", "E"}, names(deepest))
}

func TestPrintableTree(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nB|C\nA|D\n")

	var got []string
	for _, line := range v.PrintableTree() {
		got = append(got, line.String())
	}
	assert.Equal(t, []string{"A", "-B", "--C", "-D"}, got)

	v = loadView(t, "ROOT|A\nA|B\nB|C\n", WithMarker(".."))
	assert.Equal(t, "....", v.PrintableTree()[2].Indent)
}

func TestLoadFromReader(t *testing.T) {
	ix := New("-")
	require.NoError(t, ix.LoadFrom(strings.NewReader("ROOT|A\nA|B\n")))
	v, err := ix.View()
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "A|B", v.Records()[1].String())
}

func TestViewConcurrentQueries(t *testing.T) {
	v := loadView(t, "ROOT|A\nA|B\nA|C\nB|D\nC|E\n")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, []string{"D", "E"}, names(v.Leaves()))
				assert.Equal(t, 2, v.MaxDepth())
				assert.Len(t, v.FindByDeclaredParentName("A"), 2)
				assert.Len(t, v.PrintableTree(), 5)
			}
		}()
	}
	wg.Wait()
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Empty", Empty.String())
	assert.Equal(t, "Loaded", Loaded.String())
	assert.Equal(t, "State(7)", State(7).String())
}
