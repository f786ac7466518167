package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"git-guide/pkg/guide"
	"git-guide/pkg/guidefmt"
)

func newListCmd(a *app) *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sections, or the commands in one section",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			git := guide.GitCatalog()
			if section == "" {
				return guide.WriteSections(a.out, git)
			}
			if _, ok := git.Section(section); !ok {
				return &ExitError{Code: exitNotFound, Err: fmt.Errorf("unknown section %q", section)}
			}
			return guide.WriteEntries(a.out, guide.ResolveVisibleEntries(git, section, ""), false)
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", "", "print the commands of this section")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search titles, commands and descriptions across all sections",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			entries := guide.ResolveVisibleEntries(guide.GitCatalog(), "", q)
			if err := guide.WriteEntries(a.out, entries, true); err != nil {
				return err
			}
			if len(entries) == 0 {
				return &ExitError{Code: exitNotFound}
			}
			return nil
		},
	}
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy SECTION TITLE",
		Short: "Copy one command to the clipboard",
		Example: `  git-guide copy "Getting Started" "Check status"
  git-guide --clipboard osc52 copy Cleanup "Prune deleted branches"`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			logger := a.stderrLogger(cfg)

			e, ok := guide.GitCatalog().Lookup(args[0], args[1])
			if !ok {
				return &ExitError{Code: exitNotFound, Err: fmt.Errorf("%w: %s / %s", guide.ErrEntryNotFound, args[0], args[1])}
			}
			cb, err := a.newClipboard(cfg)
			if err != nil {
				return err
			}
			res := guide.Copy(cb, e.Command)
			if !res.OK() {
				logger.Error("copy failed", "section", args[0], "title", args[1], "err", res.Err)
				return fmt.Errorf("copy %q: %w", e.Title, res.Err)
			}
			logger.Debug("copied", "section", args[0], "title", args[1], "bytes", len(res.Text))
			fmt.Fprintf(a.errOut, "Copied! %s\n", e.Title)
			return nil
		},
	}
}

func newSSHCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ssh",
		Short: "Print the GitHub SSH key setup steps",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return guide.WritePage(a.out, guide.PathSSH, guide.UIOptions{})
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format  string
		output  string
		section string
		noSSH   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the guides as a Markdown cheat sheet, YAML or JSON",
		Example: `  git-guide export > git-cheatsheet.md
  git-guide export -o guide.json
  git-guide export --format yaml -o ~/notes/
  git-guide export --format yaml --section Branching --no-ssh`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := guidefmt.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}
			if !cmd.Flags().Changed("format") && output != "" {
				if guessed, ok := guidefmt.FormatFromPath(output); ok {
					f = guessed
				}
			}

			doc, err := guidefmt.BuildDocument(guide.GitCatalog(), guide.SSHCatalog(), guidefmt.Options{
				Section:    section,
				IncludeSSH: !noSSH,
			})
			if err != nil {
				return usageError(err)
			}
			if output == "" || output == "-" {
				return guidefmt.Encode(a.out, f, doc)
			}
			path := exportPath(output, f)
			if err := guidefmt.WriteFile(path, f, doc); err != nil {
				return err
			}
			fmt.Fprintf(a.errOut, "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: md|yaml|json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (default stdout)")
	cmd.Flags().StringVarP(&section, "section", "s", "", "export only this section of the command guide")
	cmd.Flags().BoolVar(&noSSH, "no-ssh", false, "leave out the SSH setup steps")
	return cmd
}

// exportPath expands output and puts the default file name under it when it
// names a directory.
func exportPath(output string, f guidefmt.OutputFormat) string {
	p := guide.ExpandPath(output)
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(p, guidefmt.DefaultFilename(f))
	}
	if st, err := os.Stat(p); err == nil && st.IsDir() {
		return filepath.Join(p, guidefmt.DefaultFilename(f))
	}
	return p
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file candidates and the one in use",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, used, err := guide.LoadConfig(a.configPath)
			if err != nil && !errors.Is(err, guide.ErrConfigNotFound) {
				return usageError(fmt.Errorf("load config: %w", err))
			}
			for _, p := range guide.ConfigPathCandidates(a.configPath) {
				p = guide.ExpandPath(p)
				marker := " "
				if p == used {
					marker = "*"
				} else if _, statErr := os.Stat(p); statErr != nil {
					marker = "-"
				}
				fmt.Fprintf(a.out, "%s %s\n", marker, p)
			}
			if used == "" {
				fmt.Fprintln(a.out, "no config file found; using defaults")
			}
			return nil
		},
	})
	return cmd
}
