package resolve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berth-cli/berth/internal/config"
)

func docWith(t *testing.T, envs map[string]config.EnvironmentSpec, presets map[string]config.PresetSpec) *config.Document {
	t.Helper()
	return &config.Document{
		Environments: envs,
		Presets:      presets,
		Path:         filepath.Join(t.TempDir(), "config.toml"),
	}
}

func TestResolve_MinimalImageEnvironment(t *testing.T) {
	doc := docWith(t, map[string]config.EnvironmentSpec{
		"e": {Image: "alpine:edge", EntryCmd: "/bin/ash"},
	}, nil)

	res, err := Resolve(doc, "e", &Expander{Lookup: lookupFrom(nil)})
	require.NoError(t, err)

	env := res.Environment
	assert.Equal(t, "alpine:edge", env.Image)
	assert.Equal(t, "/bin/ash", env.EntryCmd)
	assert.Empty(t, env.Dockerfile)
	assert.Empty(t, env.EntryOptions)
	assert.Empty(t, env.ExecCmds)

	assert.Regexp(t, `^berth-e-[0-9a-f]{16}$`, res.Names.Container)
	assert.Equal(t, "alpine:edge", res.Names.Image)
}

func TestResolve_UnknownEnvironment(t *testing.T) {
	doc := docWith(t, map[string]config.EnvironmentSpec{
		"e": {Image: "alpine:edge", EntryCmd: "/bin/ash"},
	}, nil)

	_, err := Resolve(doc, "missing", &Expander{Lookup: lookupFrom(nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestResolve_RepeatedResolutionIsStable(t *testing.T) {
	doc := docWith(t, map[string]config.EnvironmentSpec{
		"dev": {
			Image:         "ubuntu:24.04",
			EntryCmd:      "bash",
			CreateOptions: []string{"-v $WORK:/src"},
			Presets:       []string{"tools"},
		},
	}, map[string]config.PresetSpec{
		"tools": {ExecCmds: []string{"apt update"}},
	})
	lookup := lookupFrom(map[string]string{"WORK": "/home/user/project"})

	first, err := Resolve(doc, "dev", &Expander{Lookup: lookup})
	require.NoError(t, err)
	second, err := Resolve(doc, "dev", &Expander{Lookup: lookup})
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.Names, second.Names)
	assert.Equal(t, first.Environment, second.Environment)
}

func TestResolve_FingerprintTracksVariableValue(t *testing.T) {
	doc := docWith(t, map[string]config.EnvironmentSpec{
		"dev": {
			Image:         "ubuntu:24.04",
			EntryCmd:      "bash",
			CreateOptions: []string{"-v $WORK:/src"},
		},
	}, nil)

	here, err := Resolve(doc, "dev", &Expander{Lookup: lookupFrom(map[string]string{"WORK": "/home/user/a"})})
	require.NoError(t, err)
	there, err := Resolve(doc, "dev", &Expander{Lookup: lookupFrom(map[string]string{"WORK": "/home/user/b"})})
	require.NoError(t, err)

	// One definition, two expansion outcomes, two physical containers.
	assert.NotEqual(t, here.Fingerprint, there.Fingerprint)
	assert.NotEqual(t, here.Names.Container, there.Names.Container)
}

func TestResolve_UnsetVariableFailsBeforeNaming(t *testing.T) {
	doc := docWith(t, map[string]config.EnvironmentSpec{
		"dev": {
			Image:       "ubuntu:24.04",
			EntryCmd:    "bash",
			ExecOptions: []string{"-e V=$BERTH_UNSET"},
		},
	}, nil)

	_, err := Resolve(doc, "dev", &Expander{Lookup: lookupFrom(nil)})

	var expErr *ExpansionError
	require.ErrorAs(t, err, &expErr)
	assert.Equal(t, "BERTH_UNSET", expErr.Variable)
}

func TestResolve_DockerfileContentBinding(t *testing.T) {
	dir := t.TempDir()
	dockerfile := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(dockerfile, []byte("FROM alpine:edge\n"), 0o644))

	doc := &config.Document{
		Environments: map[string]config.EnvironmentSpec{
			"built": {Dockerfile: "Dockerfile", EntryCmd: "sh"},
		},
		Path: filepath.Join(dir, "config.toml"),
	}
	x := &Expander{Lookup: lookupFrom(nil)}

	before, err := Resolve(doc, "built", x)
	require.NoError(t, err)
	assert.True(t, before.Environment.BuildsFromSource())
	assert.Equal(t, dockerfile, before.Environment.Dockerfile)
	assert.True(t, strings.HasPrefix(before.Names.Image, "berth-built-"))
	assert.True(t, strings.HasSuffix(before.Names.Image, ":latest"))
	assert.Equal(t, before.Names.Image, before.Environment.Image+":latest")

	// A one-byte Dockerfile change moves both the image name and,
	// transitively, the container name.
	require.NoError(t, os.WriteFile(dockerfile, []byte("FROM alpine:3.20\n"), 0o644))
	after, err := Resolve(doc, "built", x)
	require.NoError(t, err)

	assert.NotEqual(t, before.Names.Image, after.Names.Image)
	assert.NotEqual(t, before.Fingerprint, after.Fingerprint)
	assert.NotEqual(t, before.Names.Container, after.Names.Container)
}

func TestResolve_DockerfilePathExpanded(t *testing.T) {
	dir := t.TempDir()
	dockerfile := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(dockerfile, []byte("FROM alpine:edge\n"), 0o644))

	doc := docWith(t, map[string]config.EnvironmentSpec{
		"built": {Dockerfile: "$BUILD_DIR/Dockerfile", EntryCmd: "sh"},
	}, nil)

	res, err := Resolve(doc, "built", &Expander{Lookup: lookupFrom(map[string]string{"BUILD_DIR": dir})})
	require.NoError(t, err)
	assert.Equal(t, dockerfile, res.Environment.Dockerfile)
}

func TestResolve_MissingDockerfile(t *testing.T) {
	doc := docWith(t, map[string]config.EnvironmentSpec{
		"built": {Dockerfile: "Dockerfile", EntryCmd: "sh"},
	}, nil)

	_, err := Resolve(doc, "built", &Expander{Lookup: lookupFrom(nil)})

	var dfErr *DockerfileError
	require.ErrorAs(t, err, &dfErr)
}

func TestResolve_RejectsDelimiterInName(t *testing.T) {
	doc := docWith(t, map[string]config.EnvironmentSpec{
		"my-env": {Image: "alpine:edge", EntryCmd: "sh"},
	}, nil)

	_, err := Resolve(doc, "my-env", &Expander{Lookup: lookupFrom(nil)})

	var bad *BadNameError
	require.ErrorAs(t, err, &bad)
}
