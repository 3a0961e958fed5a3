package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvTemplate, EnvMapping, EnvOutputDir} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DefaultTemplateName), cfg.TemplatePath())
	assert.Equal(t, filepath.Join(dir, DefaultMappingName), cfg.MappingPath())
	assert.Equal(t, dir, cfg.OutputDirFor(cfg.TemplatePath()))
	assert.True(t, cfg.OpenAfterGenerate)
	assert.Empty(t, cfg.LogPath())
	assert.Equal(t, Defaults{
		PreviousStudies: DefaultPreviousStudies,
		TargetProgram:   DefaultTargetProgram,
		Gender:          DefaultGender,
	}, cfg.Defaults)
}

func TestEnsureFileWritesLoadableDefault(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", FileName)

	created, err := EnsureFile(path)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureFile(path)
	require.NoError(t, err)
	assert.False(t, created)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(filepath.Dir(path)), cfg)
}

func TestLoadFileValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	out := filepath.Join(t.TempDir(), "out")
	yml := "template: vorlagen/anerkennung.docx\n" +
		"mapping: /etc/anerkennung/mapping.json\n" +
		"output_dir: " + out + "\n" +
		"open_after_generate: false\n" +
		"log_file: logs/app.log\n" +
		"defaults:\n  gender: Frau\n  target_program: M.Sc. Linguistik\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "vorlagen", "anerkennung.docx"), cfg.TemplatePath())
	assert.Equal(t, "/etc/anerkennung/mapping.json", cfg.MappingPath())
	assert.Equal(t, out, cfg.OutputDirFor(cfg.TemplatePath()))
	assert.False(t, cfg.OpenAfterGenerate)
	assert.Equal(t, filepath.Join(dir, "logs", "app.log"), cfg.LogPath())
	assert.Equal(t, "Frau", cfg.Defaults.Gender)
	assert.Equal(t, "M.Sc. Linguistik", cfg.Defaults.TargetProgram)
	assert.Equal(t, DefaultPreviousStudies, cfg.Defaults.PreviousStudies)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	tpl := filepath.Join(t.TempDir(), "other.docx")
	t.Setenv(EnvTemplate, tpl)
	t.Setenv(EnvOutputDir, dir)

	cfg, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, tpl, cfg.TemplatePath())
	assert.Equal(t, dir, cfg.OutputDirFor(tpl))
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"malformed yaml", "template: [unclosed\n"},
		{"unknown gender", "defaults:\n  gender: Divers\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yml), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestResolvePath(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "x.yaml", ResolvePath("x.yaml", "/base"))
	assert.Equal(t, filepath.Join("/base", FileName), ResolvePath("", "/base"))

	t.Setenv(EnvConfig, "/env/anerkennung.yaml")
	assert.Equal(t, "/env/anerkennung.yaml", ResolvePath("", "/base"))
}

func TestBaseDirOf(t *testing.T) {
	tests := []struct {
		exe  string
		want string
	}{
		{"/opt/anerkennung/anerkennung", "/opt/anerkennung"},
		{"/Applications/Tools/Anerkennung.app/Contents/MacOS/anerkennung", "/Applications/Tools"},
	}
	for _, tt := range tests {
		t.Run(tt.exe, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), baseDirOf(filepath.FromSlash(tt.exe)))
		})
	}
}
