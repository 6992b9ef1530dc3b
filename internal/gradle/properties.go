package gradle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/symhook/symhook/internal/constants"
	"github.com/symhook/symhook/internal/safe"
)

// Properties are the upload tool settings written to sentry.properties.
type Properties struct {
	URL       string
	Org       string
	Project   string
	AuthToken string
}

// Render returns the properties file content. Empty values are omitted.
func (p Properties) Render() string {
	var sb strings.Builder
	write := func(key, value string) {
		if value == "" {
			return
		}
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(escapeProperty(value))
		sb.WriteString("\n")
	}
	write("defaults.url", p.URL)
	write("defaults.org", p.Org)
	write("defaults.project", p.Project)
	write("auth.token", p.AuthToken)
	return sb.String()
}

// WriteProperties writes sentry.properties into gradleProject. The file holds
// an auth token and is created with mode 0600.
func WriteProperties(gradleProject string, p Properties) (string, error) {
	path := filepath.Join(gradleProject, constants.PropertiesFile)
	if err := safe.WriteFileAtomicPerm(path, []byte(p.Render()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// escapeProperty escapes characters with special meaning in Java properties
// values.
func escapeProperty(v string) string {
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	v = r.Replace(v)
	if strings.HasPrefix(v, " ") {
		v = `\` + v
	}
	return v
}
