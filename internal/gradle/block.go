package gradle

import (
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/symhook/symhook/internal/build"
	"github.com/symhook/symhook/internal/constants"
)

// Arg is one element of the upload tool's Groovy argument list.
type Arg struct {
	Value string
	// Raw args are Groovy expressions emitted without quotes.
	Raw bool
}

// Groovy renders the argument as Groovy source.
func (a Arg) Groovy() string {
	if a.Raw {
		return a.Value
	}
	return quote(a.Value)
}

// Block holds everything needed to render the upload block.
type Block struct {
	Executable string
	Args       []Arg
	Exporting  bool
	// LogFile is the absolute, slash-separated log path (non-export only).
	LogFile string
	// LogName is the log path relative to the project root, for the message.
	LogName string
}

var blockTemplate = template.Must(template.New("upload").Funcs(template.FuncMap{
	"quote": quote,
	"args":  renderArgs,
}).Parse(`{{.Start}}
// Credentials and project settings information are stored in the {{.PropertiesFile}} file
gradle.taskGraph.whenReady {
    gradle.taskGraph.allTasks[-1].doLast {
{{- if .Exporting}}
        println 'Uploading symbols to Sentry.'
{{- else}}
        println {{quote .Message}}
        def sentryLogFile = new FileOutputStream({{quote .LogFile}})
{{- end}}
        exec {
            environment {{quote .PropertiesEnv}}, {{quote .PropertiesPath}}
            executable {{quote .Executable}}
            args = [{{args .Args}}]
{{- if not .Exporting}}
            standardOutput sentryLogFile
            errorOutput sentryLogFile
{{- end}}
        }
    }
}
{{.End}}
`))

// Render produces the block text, markers included, ending in a newline.
func (b Block) Render() (string, error) {
	data := struct {
		Block
		Start, End     string
		PropertiesFile string
		PropertiesEnv  string
		PropertiesPath string
		Message        string
	}{
		Block:          b,
		Start:          constants.BlockStartMarker,
		End:            constants.BlockEndMarker,
		PropertiesFile: constants.PropertiesFile,
		PropertiesEnv:  constants.PropertiesEnvVar,
		PropertiesPath: "./" + constants.PropertiesFile,
		Message: fmt.Sprintf("Uploading symbols to Sentry. You can find the full log in ./%s "+
			"(the file content may not be strictly sequential because it's a merge of two streams).", b.LogName),
	}

	var sb strings.Builder
	if err := blockTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render upload block: %w", err)
	}
	return sb.String(), nil
}

// UploadArgs assembles the upload-dif argument list: command, mapping flag,
// optional include-sources flag, extra arguments, then either the exported
// project root or one argument per symbol directory.
func UploadArgs(uc build.UploadContext, paths []string) []Arg {
	args := []Arg{
		{Value: constants.UploadCommand},
		{Value: constants.MappingFlag},
	}
	if uc.UploadSources() {
		args = append(args, Arg{Value: constants.IncludeSourcesFlag})
	}
	for _, extra := range uc.ExtraArgs() {
		args = append(args, Arg{Value: extra})
	}

	if uc.Exporting {
		return append(args, Arg{Value: constants.ExportRootArg, Raw: true})
	}
	for _, p := range paths {
		args = append(args, Arg{Value: build.ToSlash(p)})
	}
	return args
}

// ExportedExecutable is how the exported project refers to the upload tool:
// the tool ships next to the exported build script.
func ExportedExecutable(toolPath string) string {
	return "./" + path.Base(build.ToSlash(toolPath))
}

func renderArgs(args []Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Groovy()
	}
	return strings.Join(parts, ", ")
}

// quote renders s as a single-quoted Groovy string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
