package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cargoassist/pkg/manifest"
)

// workspaceCommand creates the workspace command.
func (c *CLI) workspaceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "workspace [DIR]",
		Short: "Discover the manifests below a directory",
		Long: `Walk DIR (default: the current directory) for Cargo.toml files, skipping
target and hidden directories, and list them. The workspace head, the
manifest declaring [workspace], is marked with ★.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", root, err)
			}

			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			ws := c.scanner()
			found, err := manifest.Discover(ctx, root, ws)
			if err != nil {
				return err
			}
			prog.done("Discovered manifests", "count", len(found))

			out := cmd.OutOrStdout()
			if len(found) == 0 {
				printInfo(out, "No %s below %s", manifest.ManifestName, root)
				return nil
			}
			head, _ := ws.Head()
			renderWorkspace(out, root, found, head)
			if head != "" {
				printSuccess(out, "Workspace head: %s", head)
			}
			return nil
		},
	}
}

// scanner returns a fresh structure memo logging through the CLI logger.
func (c *CLI) scanner() *manifest.Workspace {
	return manifest.NewWorkspace(c.Logger)
}
