package diff_test

import (
	"testing"

	"github.com/roasbeef/remerge/diff"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/main.go b/main.go
index 1234567..89abcde 100644
--- a/main.go
+++ b/main.go
@@ -1,5 +1,6 @@
 package main

+// Added comment.
 func main() {
-	println("old")
+	println("new")
 }
diff --git a/removed.txt b/removed.txt
deleted file mode 100644
index 1234567..0000000
--- a/removed.txt
+++ /dev/null
@@ -1,1 +0,0 @@
-goodbye
`

func TestParse(t *testing.T) {
	parsed, err := diff.Parse(sampleDiff)
	require.NoError(t, err)
	require.Equal(t, 2, parsed.FileCount())

	added, deleted := parsed.Stats()
	require.Equal(t, 2, added)
	require.Equal(t, 2, deleted)
}

func TestParseEmpty(t *testing.T) {
	parsed, err := diff.Parse("")
	require.NoError(t, err)
	require.Equal(t, 0, parsed.FileCount())

	parsed, err = diff.Parse("   \n  ")
	require.NoError(t, err)
	require.Equal(t, 0, parsed.FileCount())
}

func TestFileByPath(t *testing.T) {
	parsed, err := diff.Parse(sampleDiff)
	require.NoError(t, err)

	file := parsed.FileByPath("main.go")
	require.NotNil(t, file)
	require.Equal(t, 2, file.Added)
	require.Equal(t, 1, file.Deleted)
	require.False(t, file.IsDeleted)

	require.Nil(t, parsed.FileByPath("missing.go"))
}

func TestDeletedFile(t *testing.T) {
	parsed, err := diff.Parse(sampleDiff)
	require.NoError(t, err)

	file := parsed.FileByPath("removed.txt")
	require.NotNil(t, file)
	require.True(t, file.IsDeleted)
	require.Equal(t, "removed.txt", file.Path())

	added, deleted := file.Stats()
	require.Equal(t, 0, added)
	require.Equal(t, 1, deleted)
}

func TestRenameDetection(t *testing.T) {
	const renameDiff = `diff --git a/old.go b/new.go
similarity index 90%
rename from old.go
rename to new.go
index 1234567..89abcde 100644
--- a/old.go
+++ b/new.go
@@ -1,1 +1,1 @@
-old line
+new line
`

	parsed, err := diff.Parse(renameDiff)
	require.NoError(t, err)
	require.Equal(t, 1, parsed.FileCount())

	file := parsed.FileByPath("new.go")
	require.NotNil(t, file)
	require.True(t, file.IsRenamed)
	require.Equal(t, "old.go", file.OldName)
	require.Equal(t, "new.go", file.NewName)
}

func TestFilesIterator(t *testing.T) {
	parsed, err := diff.Parse(sampleDiff)
	require.NoError(t, err)

	var paths []string
	for file := range parsed.Files() {
		paths = append(paths, file.Path())
	}

	require.Equal(t, []string{"main.go", "removed.txt"}, paths)
}
