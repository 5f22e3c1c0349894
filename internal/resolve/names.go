package resolve

import (
	"strings"
)

const (
	namePrefix    = "berth"
	nameDelimiter = "-"

	// ImageTag is the fixed tag applied to every image built from source.
	ImageTag = "latest"
)

// Names are the canonical runtime resource names for one resolved
// environment. They are recomputed fresh on every invocation and compared
// against what currently exists in the runtime, never cached across runs.
type Names struct {
	// Container is "berth-<environment>-<fingerprint>".
	Container string

	// Image is "berth-<environment>-<dockerfile sha256>:latest" when the
	// environment builds from source, otherwise the provided reference.
	Image string
}

// ContainerName derives the container name from the environment name and
// its fingerprint. Environment names containing the delimiter are rejected
// rather than escaped, keeping the three-component grammar unambiguous.
func ContainerName(envName, fingerprint string) (string, error) {
	if err := CheckName(envName); err != nil {
		return "", err
	}
	return namePrefix + nameDelimiter + envName + nameDelimiter + fingerprint, nil
}

// ImageName derives the content-addressed image name for an environment
// built from a Dockerfile with the given sha256 digest. The tag is always
// "latest"; the digest in the name is what distinguishes builds.
func ImageName(envName, dockerfileDigest string) string {
	return namePrefix + nameDelimiter + strings.ToLower(envName) + nameDelimiter + dockerfileDigest
}

// CheckName rejects environment names the naming grammar cannot represent.
func CheckName(envName string) error {
	if envName == "" || strings.Contains(envName, nameDelimiter) {
		return &BadNameError{Name: envName}
	}
	return nil
}
