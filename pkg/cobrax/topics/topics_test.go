package topics

import (
	"io"
	"os"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicsFS() fstest.MapFS {
	return fstest.MapFS{
		"farm.md":        &fstest.MapFile{Data: []byte("# Farm\n\nHow the link farm works")},
		"watch-mode.txt": &fstest.MapFile{Data: []byte("Watch mode details")},
		"legacy.rst":     &fstest.MapFile{Data: []byte("This should be ignored")},
	}
}

func TestLoadDefaultExtensions(t *testing.T) {
	tm := New(topicsFS())
	require.NoError(t, tm.Load())

	tests := []struct {
		name   string
		exists bool
	}{
		{"farm", true},
		{"watch-mode", true},
		{"legacy", false}, // .rst not in defaults
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, exists := tm.GetTopic(tt.name)
			assert.Equal(t, tt.exists, exists)
		})
	}
}

func TestLoadCustomExtensions(t *testing.T) {
	tm := NewWithOptions(topicsFS(), Options{
		Extensions: []string{".rst"},
	})
	require.NoError(t, tm.Load())

	topic, exists := tm.GetTopic("legacy")
	require.True(t, exists)
	assert.Equal(t, "This should be ignored", topic.Content)

	_, exists = tm.GetTopic("farm")
	assert.False(t, exists)
}

func TestListTopicsSorted(t *testing.T) {
	tm := New(topicsFS())
	require.NoError(t, tm.Load())

	assert.Equal(t, []string{"farm", "watch-mode"}, tm.ListTopics())
}

func TestTopicsInSubdirectories(t *testing.T) {
	fsys := fstest.MapFS{
		"guides/collisions.md": &fstest.MapFile{Data: []byte("Collision handling")},
	}

	tm := New(fsys)
	require.NoError(t, tm.Load())

	topic, exists := tm.GetTopic("collisions")
	require.True(t, exists)
	assert.Equal(t, "Collision handling", topic.Content)
	assert.Equal(t, "guides/collisions.md", topic.Path)
}

func TestEmptyFS(t *testing.T) {
	tm := New(fstest.MapFS{})
	require.NoError(t, tm.Load())
	assert.Empty(t, tm.ListTopics())
}

func TestInitialize(t *testing.T) {
	rootCmd := &cobra.Command{
		Use:   "testapp",
		Short: "Test application",
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "link",
		Short: "Link something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	tm, err := Initialize(rootCmd, topicsFS(), Options{})
	require.NoError(t, err)
	require.NotNil(t, tm)
	assert.Len(t, tm.ListTopics(), 2)

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help", helpCmd.Name())
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestHelpCommandRendersTopic(t *testing.T) {
	rootCmd := &cobra.Command{
		Use:   "testapp",
		Short: "Test application",
	}

	_, err := Initialize(rootCmd, topicsFS(), Options{})
	require.NoError(t, err)

	output := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"help", "watch-mode"})
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "Watch mode details")
}

func TestHelpTopicsListsEverything(t *testing.T) {
	rootCmd := &cobra.Command{
		Use:   "testapp",
		Short: "Test application",
	}

	_, err := Initialize(rootCmd, topicsFS(), Options{})
	require.NoError(t, err)

	output := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"help", "topics"})
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "farm")
	assert.Contains(t, output, "watch-mode")
	assert.Contains(t, output, "testapp help <topic>")
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer(80)
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}

func TestPlainRendererReturnsContentUnchanged(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Heading", r.Render("# Heading", ".md"))
}

// captureStdout runs f with os.Stdout redirected to a pipe and returns
// everything written. The help machinery prints straight to stdout.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	f()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}
