package resolve

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Byte separators keep the serialization boundary-sensitive: moving a
// suffix between adjacent fields or list elements always changes the
// hashed bytes.
const (
	sepValue = 0x00 // between field tag and value
	sepElem  = 0x1f // after each list element
	sepField = 0x1e // after each field
)

// Fingerprint derives the environment's identity: a 16-character lowercase
// hex string from a 64-bit xxhash over a canonical serialization of every
// resolved field, scalars and list elements in their resolved order. It is
// seedless and therefore stable across process restarts and machines. Not
// a security boundary; used only for change detection and naming.
func Fingerprint(env *Environment) string {
	h := xxhash.New()

	writeScalar(h, "name", env.Name)
	writeScalar(h, "image", env.Image)
	writeScalar(h, "dockerfile", env.Dockerfile)
	writeScalar(h, "entry_cmd", env.EntryCmd)
	writeList(h, "entry_options", env.EntryOptions)
	writeList(h, "cp_cmds", env.CopyCmds)
	writeList(h, "exec_cmds", env.ExecCmds)
	writeList(h, "exec_options", env.ExecOptions)
	writeList(h, "create_options", env.CreateOptions)

	return fmt.Sprintf("%016x", h.Sum64())
}

func writeScalar(h *xxhash.Digest, tag, value string) {
	_, _ = h.WriteString(tag)
	_, _ = h.Write([]byte{sepValue})
	_, _ = h.WriteString(value)
	_, _ = h.Write([]byte{sepField})
}

func writeList(h *xxhash.Digest, tag string, values []string) {
	_, _ = h.WriteString(tag)
	_, _ = h.Write([]byte{sepValue})
	for _, v := range values {
		_, _ = h.WriteString(v)
		_, _ = h.Write([]byte{sepElem})
	}
	_, _ = h.Write([]byte{sepField})
}

// HashDockerfile returns the sha256 digest of the file's raw bytes as
// lowercase hex. Any byte change yields a new digest and therefore a new
// image name.
func HashDockerfile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &DockerfileError{Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &DockerfileError{Path: path, Err: err}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
