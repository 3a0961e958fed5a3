package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/anerkennung/internal/generate"
)

type env struct {
	dir    string
	config string
	db     string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	return env{
		dir:    dir,
		config: filepath.Join(dir, "anerkennung.yaml"),
		db:     filepath.Join(dir, "test.db"),
	}
}

// run executes the root command with fresh flag state and returns stdout
// and stderr.
func (e env) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", e.config, "--db", e.db}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestGenerateWorkflow(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.run(t, "", "template", "init")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(e.dir, "template.docx"))

	out, _, err := e.run(t, "", "student", "--name", "Max Muster", "--matrikel", "3012345")
	require.NoError(t, err)
	assert.Contains(t, out, "Max Muster")

	for _, a := range [][]string{
		{"Elements of Mathematics", "2,0"},
		{"Elements of Statistics", "1,0"},
		{"Elements of Computer Science (Part 1)", "1,3"},
		{"Data Mining", "1,7"},
	} {
		_, _, err := e.run(t, "", "add", a[0], a[1])
		require.NoError(t, err)
	}

	out, _, err = e.run(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Ignoriert (Limit)"))
	assert.Contains(t, out, "3 von 4 Einträgen zählen")

	out, stderr, err := e.run(t, "", "generate", "--open=false")
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "Dokument erstellt:")

	matches, err := filepath.Glob(filepath.Join(e.dir, "Anerkennung_Max_Muster_*.docx"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	out, _, err = e.run(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Max Muster")
	assert.Contains(t, out, "3/4")
}

func TestGenerateWithoutStudent(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run(t, "", "add", "Data Mining", "1,7")
	require.NoError(t, err)

	_, stderr, err := e.run(t, "", "generate", "--open=false")
	require.Error(t, err)
	assert.True(t, errors.Is(err, generate.ErrMissingField))
	assert.Contains(t, stderr, "Bitte Name und Matrikelnummer ausfüllen")
}

func TestEditAndRemove(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run(t, "", "add", "Data Mining", "2,7")
	require.NoError(t, err)
	_, _, err = e.run(t, "", "add", "Big Data Analytics", "1,0")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "edit", "1", "1,3")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Big Data Analytics"), strings.Index(out, "Data Mining  "), "edited entry moves to the end")

	out, _, err = e.run(t, "", "remove", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "Data Mining  ")

	_, _, err = e.run(t, "", "remove", "5")
	assert.ErrorContains(t, err, "out of range")
}

func TestAddUnknownCourse(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run(t, "", "add", "Underwater Basket Weaving", "1,0")
	assert.ErrorContains(t, err, "unknown course")
}

func TestClearAsksFirst(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run(t, "", "add", "Data Mining", "2,7")
	require.NoError(t, err)

	out, _, err := e.run(t, "n\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Abgebrochen.")

	out, _, err = e.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Data Mining")

	out, _, err = e.run(t, "j\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Alle Einträge gelöscht.")

	out, _, err = e.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Noch keine Kurse eingetragen.")
}

func TestCoursesHidesUsed(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run(t, "", "add", "Data Mining", "2,7")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "courses")
	require.NoError(t, err)
	assert.NotContains(t, out, "Data Mining")
	assert.Contains(t, out, "15 Kurse")

	out, _, err = e.run(t, "", "courses", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Data Mining")
}

func TestMappingCheck(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run(t, "", "mapping", "init")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "mapping", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "16 Kurse")
	assert.Contains(t, out, "MA4DSC1002 wird von 2 Kursen belegt")

	broken := filepath.Join(e.dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"Data Mining": {"id": 7}}`), 0o644))
	_, _, err = e.run(t, "", "mapping", "check", broken)
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config erstellt")
	require.FileExists(t, e.config)

	out, _, err = e.run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(e.dir, "template.docx"))
}

func TestStudentRejectsUnknownGender(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run(t, "", "student", "--gender", "Divers")
	assert.ErrorContains(t, err, "gender")
}
