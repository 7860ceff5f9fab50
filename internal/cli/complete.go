package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargoassist/pkg/completion"
	"github.com/matzehuels/cargoassist/pkg/errors"
	"github.com/matzehuels/cargoassist/pkg/manifest"
)

type completeOpts struct {
	line      int
	character int
	json      bool
	pick      bool
}

// completeOutput is the --json form of a completion.
type completeOutput struct {
	Kind       string             `json:"kind"`
	Context    completion.Context `json:"context"`
	Items      []completion.Item  `json:"items"`
	Incomplete bool               `json:"incomplete"`
}

// completeCommand creates the complete command.
func (c *CLI) completeCommand() *cobra.Command {
	opts := completeOpts{}

	cmd := &cobra.Command{
		Use:   "complete FILE",
		Short: "Print suggestions for a cursor position in a manifest",
		Long: `Resolve the cursor position in a Cargo.toml and print the crate names,
versions or features that fit there. Lines and characters are zero-based.`,
		Example: `  cargoassist complete Cargo.toml --line 7 --char 10
  cargoassist complete Cargo.toml -l 7 -c 10 --json
  cargoassist complete Cargo.toml -l 7 -c 10 --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runComplete(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.line, "line", "l", 0, "zero-based line of the cursor")
	cmd.Flags().IntVarP(&opts.character, "char", "c", 0, "zero-based character of the cursor")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose a suggestion interactively and print its insert text")
	cmd.MarkFlagsMutuallyExclusive("json", "pick")
	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("char")

	return cmd
}

func (c *CLI) runComplete(cmd *cobra.Command, path string, opts completeOpts) error {
	if opts.line < 0 || opts.character < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "position must not be negative (line %d, character %d)", opts.line, opts.character)
	}
	req, err := readRequest(path, opts.line, opts.character)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := c.newStack(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	var spin *Spinner
	if !opts.json {
		spin = newSpinner(ctx, cmd.ErrOrStderr(), "Querying crates.io...")
		spin.Start()
	}
	prog := newProgress(loggerFromContext(ctx))
	list, resolved := st.engine.CompleteContext(ctx, req)
	if spin != nil {
		spin.Stop()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done("Completed", "kind", resolved.Kind(), "items", len(list.Items))

	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(completeOutput{
			Kind:       resolved.Kind(),
			Context:    resolved,
			Items:      list.Items,
			Incomplete: list.Incomplete,
		})
	case opts.pick:
		return pickItem(cmd, resolved, list)
	default:
		renderItems(out, resolved, list)
		return nil
	}
}

// readRequest loads a manifest and keys the request by its absolute path.
func readRequest(path string, line, character int) (completion.Request, error) {
	if err := errors.ValidateManifestFilename(path); err != nil {
		return completion.Request{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return completion.Request{}, fmt.Errorf("read manifest: %w", err)
	}
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	return completion.Request{
		Key:      key,
		Document: manifest.NewTextDocument(string(data)),
		Position: manifest.Position{Line: line, Character: character},
	}, nil
}

func pickItem(cmd *cobra.Command, resolved completion.Context, list completion.List) error {
	if len(list.Items) == 0 {
		printInfo(cmd.ErrOrStderr(), "No suggestions for %s", resolved.Kind())
		return nil
	}

	model := NewItemListModel("Select "+string(list.Items[0].Kind), list.Items)
	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}
	if m, ok := final.(ItemListModel); ok && m.Selected != nil {
		fmt.Fprintln(cmd.OutOrStdout(), m.Selected.InsertText)
	}
	return nil
}
