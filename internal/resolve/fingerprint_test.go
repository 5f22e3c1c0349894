package resolve

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]{16}$`)

func baseEnvironment() *Environment {
	return &Environment{
		Name:          "dev",
		Image:         "alpine:edge",
		EntryCmd:      "/bin/ash",
		EntryOptions:  []string{"-it"},
		ExecCmds:      []string{"apk add git"},
		ExecOptions:   []string{"-u root"},
		CreateOptions: []string{"-v", "/tmp:/tmp"},
	}
}

func TestFingerprint_Format(t *testing.T) {
	fp := Fingerprint(baseEnvironment())
	assert.Regexp(t, hexRe, fp)
}

func TestFingerprint_Stable(t *testing.T) {
	assert.Equal(t, Fingerprint(baseEnvironment()), Fingerprint(baseEnvironment()))
}

func TestFingerprint_SensitiveToEachField(t *testing.T) {
	base := Fingerprint(baseEnvironment())

	mutations := map[string]func(*Environment){
		"name":           func(e *Environment) { e.Name = "dev2" },
		"image":          func(e *Environment) { e.Image = "alpine:3.20" },
		"dockerfile":     func(e *Environment) { e.Dockerfile = "/tmp/Dockerfile" },
		"entry_cmd":      func(e *Environment) { e.EntryCmd = "/bin/sh" },
		"entry_options":  func(e *Environment) { e.EntryOptions = append(e.EntryOptions, "-e A=1") },
		"cp_cmds":        func(e *Environment) { e.CopyCmds = []string{"a b"} },
		"exec_cmds":      func(e *Environment) { e.ExecCmds = []string{"apk add curl"} },
		"exec_options":   func(e *Environment) { e.ExecOptions = nil },
		"create_options": func(e *Environment) { e.CreateOptions = []string{"-v", "/opt:/opt"} },
	}

	for field, mutate := range mutations {
		env := baseEnvironment()
		mutate(env)
		assert.NotEqual(t, base, Fingerprint(env), "mutating %s must change the fingerprint", field)
	}
}

func TestFingerprint_SensitiveToListOrder(t *testing.T) {
	a := baseEnvironment()
	a.EntryOptions = []string{"-i", "-t"}
	b := baseEnvironment()
	b.EntryOptions = []string{"-t", "-i"}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_BoundarySensitive(t *testing.T) {
	a := baseEnvironment()
	a.ExecCmds = []string{"ab", "c"}
	b := baseEnvironment()
	b.ExecCmds = []string{"a", "bc"}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_EmptyVersusAbsentList(t *testing.T) {
	a := baseEnvironment()
	a.ExecCmds = nil
	b := baseEnvironment()
	b.ExecCmds = []string{""}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestHashDockerfile_ContentAddressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM alpine:edge\n"), 0o644))

	first, err := HashDockerfile(path)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{64}$`, first)

	again, err := HashDockerfile(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// One byte changed, new digest.
	require.NoError(t, os.WriteFile(path, []byte("FROM alpine:edgf\n"), 0o644))
	changed, err := HashDockerfile(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestHashDockerfile_Missing(t *testing.T) {
	_, err := HashDockerfile(filepath.Join(t.TempDir(), "nope"))

	var dfErr *DockerfileError
	require.ErrorAs(t, err, &dfErr)
}
