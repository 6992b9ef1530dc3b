package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/symhook/symhook/internal/cli/helpers"
	"github.com/symhook/symhook/internal/config"
	"github.com/symhook/symhook/internal/symbols"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(16)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)
)

// oldLayoutWarning is shown for Unity versions that build under Temp.
const oldLayoutWarning = "Unity versions before 2021.2 build under Temp, which the editor clears on exit. " +
	"Run the build before closing Unity so the symbols are still there."

// projectStatus is the report printed by status.
type projectStatus struct {
	Project       string      `json:"project" yaml:"project"`
	OptionsFile   string      `json:"options_file" yaml:"options_file"`
	OptionsFound  bool        `json:"options_found" yaml:"options_found"`
	UnityVersion  string      `json:"unity_version" yaml:"unity_version"`
	Layout        string      `json:"layout" yaml:"layout"`
	Backend       string      `json:"scripting_backend" yaml:"scripting_backend"`
	Exporting     bool        `json:"exporting" yaml:"exporting"`
	UploadEnabled bool        `json:"upload_symbols" yaml:"upload_symbols"`
	CLIPath       string      `json:"cli_path,omitempty" yaml:"cli_path,omitempty"`
	CLIFound      bool        `json:"cli_found" yaml:"cli_found"`
	BuildScript   string      `json:"build_script" yaml:"build_script"`
	Installed     bool        `json:"installed" yaml:"installed"`
	ScriptError   string      `json:"script_error,omitempty" yaml:"script_error,omitempty"`
	SymbolDirs    []symbolDir `json:"symbol_dirs" yaml:"symbol_dirs"`
	Warnings      []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	ExtraArgs []string            `json:"extra_args,omitempty" yaml:"extra_args,omitempty"`
	Sentry    config.SentryConfig `json:"sentry" yaml:"sentry"`
}

var statusFormats = []helpers.OutputFormat{
	helpers.FormatTable,
	helpers.FormatJSON,
	helpers.FormatYAML,
}

func newStatusCmd() *cobra.Command {
	var (
		format  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the symbol upload state of the project",
		Long: `Display the resolved Unity version and build layout, the symbol directories,
whether the upload task is present in build.gradle and whether the upload tool
can be found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			st, err := collectStatus(s)
			if err != nil {
				return err
			}

			if format != string(helpers.FormatTable) {
				return helpers.Write(cmd, format, statusFormats, st)
			}
			renderStatus(cmd.OutOrStdout(), st, verbose)
			return nil
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatTable, statusFormats)
	helpers.AddVerboseFlag(cmd, &verbose)
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func collectStatus(s *session) (*projectStatus, error) {
	opts := s.options.Redacted()
	st := &projectStatus{
		Project:       s.projectRoot,
		OptionsFile:   s.optionsPath,
		OptionsFound:  fileExists(s.optionsPath),
		Backend:       opts.ScriptingBackend,
		Exporting:     opts.Exporting,
		UploadEnabled: opts.UploadSymbols,
		CLIPath:       opts.CLIPath,
		CLIFound:      opts.CLIPath != "" && fileExists(opts.CLIPath),
		ExtraArgs:     opts.ExtraArgs,
		Sentry:        opts.Sentry,
	}

	if v, err := opts.VersionProvider(s.projectRoot).EngineVersion(); err == nil {
		st.UnityVersion = v
	}

	u, err := s.uploader()
	if err != nil {
		return nil, err
	}

	st.Layout = u.Layout().String()
	if u.Layout() == symbols.LayoutOld {
		st.Warnings = append(st.Warnings, oldLayoutWarning)
	}

	for _, p := range u.SymbolPaths() {
		info, err := os.Stat(p)
		st.SymbolDirs = append(st.SymbolDirs, symbolDir{
			Path:   p,
			Layout: st.Layout,
			Exists: err == nil && info.IsDir(),
		})
	}

	st.BuildScript = u.Context().BuildScript()
	installed, err := u.Installed()
	if err != nil {
		st.ScriptError = err.Error()
	}
	st.Installed = installed

	if opts.UploadSymbols && opts.CLIPath != "" && !st.CLIFound && !opts.Exporting {
		st.Warnings = append(st.Warnings, fmt.Sprintf("upload tool not found at %s", opts.CLIPath))
	}
	return st, nil
}

func renderStatus(w io.Writer, st *projectStatus, verbose bool) {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	yesNo := func(v bool, yes, no string, bad lipgloss.Style) string {
		if v {
			return okStyle.Render(yes)
		}
		return bad.Render(no)
	}

	b.WriteString(titleStyle.Render("symhook status"))
	b.WriteString("\n")

	row("Project", st.Project)
	row("Options", st.OptionsFile+" "+yesNo(st.OptionsFound, "(found)", "(defaults)", warnStyle))
	version := st.UnityVersion
	if version == "" {
		version = errStyle.Render("unknown")
	}
	row("Unity version", version)
	row("Layout", st.Layout)
	row("Backend", st.Backend)
	mode := "in place"
	if st.Exporting {
		mode = "export"
	}
	row("Mode", mode)
	row("Upload", yesNo(st.UploadEnabled, "enabled", "disabled", warnStyle))
	if st.CLIPath != "" {
		row("Upload tool", st.CLIPath+" "+yesNo(st.CLIFound, "(found)", "(missing)", errStyle))
	}

	script := yesNo(st.Installed, "installed", "not installed", warnStyle)
	if st.ScriptError != "" {
		script = errStyle.Render(st.ScriptError)
	}
	row("Build script", st.BuildScript)
	row("Upload task", script)

	for i, d := range st.SymbolDirs {
		label := ""
		if i == 0 {
			label = "Symbol dirs"
		}
		row(label, d.Path+" "+yesNo(d.Exists, "(exists)", "(missing)", warnStyle))
	}

	if verbose {
		row("Extra args", strings.Join(st.ExtraArgs, " "))
		row("Sentry URL", st.Sentry.URL)
		row("Organization", st.Sentry.Org)
		row("Sentry project", st.Sentry.Project)
		row("Auth token", st.Sentry.AuthToken)
	}

	for _, warning := range st.Warnings {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("! " + warning))
		b.WriteString("\n")
	}

	_, _ = fmt.Fprint(w, b.String())
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
