package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daipendency/daipendency/pkg/library"
	"github.com/daipendency/daipendency/pkg/render/markdown"
)

// extractOpts holds the flags shared by extract and extract-dep.
type extractOpts struct {
	language  languageFlag
	output    string // output file path (stdout if empty)
	dependant string // extract-dep only; cwd if empty
}

func (o *extractOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().VarP(&o.language, "language", "l", "library language (auto-detected if omitted)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (stdout if empty)")
}

// extractCommand creates the extract command.
func (c *CLI) extractCommand() *cobra.Command {
	var opts extractOpts

	cmd := &cobra.Command{
		Use:   "extract <path>",
		Short: "Document the library at a path",
		Long: `Extract the public API and README of the library at <path> and print
them as a single markdown document.

Examples:
  daipendency extract .
  daipendency extract ~/src/my-crate --language rust -o api.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd.Context(), cmd.OutOrStdout(), &opts, func(l *library.Loader) (*library.Library, error) {
				return l.Load(cmd.Context(), args[0], opts.language.value())
			})
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// extractDepCommand creates the extract-dep command.
func (c *CLI) extractDepCommand() *cobra.Command {
	var opts extractOpts

	cmd := &cobra.Command{
		Use:   "extract-dep <dependency>",
		Short: "Document a dependency of a library",
		Long: `Locate <dependency> of the library at --dependant (the current directory by
default) and print its documentation. The dependency is assumed to be written
in the same language as the dependant.

Rust dependencies are looked up in Cargo.toml path dependencies, then in the
local cargo registry at the version pinned by Cargo.lock, and finally
downloaded from crates.io unless --offline is set.

Examples:
  daipendency extract-dep serde
  daipendency extract-dep tokio --dependant ~/src/my-app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dependant := opts.dependant
			if dependant == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				dependant = wd
			}
			return c.runExtract(cmd.Context(), cmd.OutOrStdout(), &opts, func(l *library.Loader) (*library.Library, error) {
				return l.LoadDependency(cmd.Context(), args[0], dependant, opts.language.value())
			})
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.dependant, "dependant", "d", "", "path to the library that depends on <dependency> (default: current directory)")
	return cmd
}

// runExtract loads a library with load and writes its document. Nothing is
// written when loading fails.
func (c *CLI) runExtract(ctx context.Context, stdout io.Writer, opts *extractOpts, load func(*library.Loader) (*library.Library, error)) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	loader, err := c.newLoader(cfg)
	if err != nil {
		return err
	}

	st := startStage(logger)
	sp := startSpinner(ctx, "Extracting public API...")
	lib, err := load(loader)
	sp.Stop()
	if err != nil {
		return err
	}
	st.done("extracted", "library", lib.Name, "version", lib.Version, "namespaces", len(lib.Namespaces))

	return writeDocument(stdout, markdown.Format(lib), opts.output)
}

// writeDocument writes doc to path, or to stdout when path is empty.
func writeDocument(stdout io.Writer, doc, path string) error {
	if path == "" {
		_, err := io.WriteString(stdout, doc)
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return err
	}
	printSuccess("Wrote documentation")
	printFile(path)
	return nil
}
