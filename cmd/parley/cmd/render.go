package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/fsnotify/fsnotify"
	"github.com/russross/blackfriday"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/parley/internal/ui/message"
	"github.com/nfrund/parley/internal/view"
)

type renderOptions struct {
	content  string
	input    string
	user     bool
	class    string
	id       string
	attrs    []string
	raw      bool
	markdown bool
	out      string
	watch    bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single message body to HTML",
		Long: `Render a single message body to HTML, the same markup the server uses
for a transcript row.

Examples:
  parley render --content "Hello"                   # assistant styling
  parley render --content "Hi" --user --class mt-4  # user styling, extra class
  parley render --input msg.html --raw --out out.html
  parley render --input msg.md --markdown
  parley render --input msg.txt --watch --out out.html
  parley render --content "Hi" --id m1 --attr data-role=user`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				if opts.input == "" {
					return errors.New("--watch requires --input")
				}
				return watchAndRender(cmd.Context(), cmd.OutOrStdout(), opts)
			}
			return renderOnce(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.content, "content", "", "message text")
	f.StringVar(&opts.input, "input", "", "read the message text from a file")
	f.BoolVar(&opts.user, "user", false, "render with the user styling")
	f.StringVar(&opts.class, "class", "", "extra classes, merged last")
	f.StringVar(&opts.id, "id", "", "id attribute of the container")
	f.StringArrayVar(&opts.attrs, "attr", nil, "extra attribute as key=value (repeatable)")
	f.BoolVar(&opts.raw, "raw", false, "treat the content as pre-rendered HTML")
	f.BoolVar(&opts.markdown, "markdown", false, "convert the content from Markdown to HTML")
	f.StringVar(&opts.out, "out", "", "write to a file instead of stdout")
	f.BoolVar(&opts.watch, "watch", false, "re-render whenever --input changes")
	cmd.MarkFlagsMutuallyExclusive("content", "input")
	cmd.MarkFlagsOneRequired("content", "input")
	cmd.MarkFlagsMutuallyExclusive("raw", "markdown")

	return cmd
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
}

// parseAttrs turns key=value pairs into attributes. A bare key is a boolean
// attribute.
func parseAttrs(pairs []string) ([]g.Node, error) {
	nodes := make([]g.Node, 0, len(pairs))
	for _, pair := range pairs {
		key, value, hasValue := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		switch {
		case key == "":
			return nil, fmt.Errorf("invalid attribute %q: missing name", pair)
		case strings.EqualFold(key, "class"):
			return nil, fmt.Errorf("invalid attribute %q: use --class", pair)
		case hasValue:
			nodes = append(nodes, g.Attr(key, value))
		default:
			nodes = append(nodes, g.Attr(key))
		}
	}
	return nodes, nil
}

func buildContent(opts *renderOptions, text string) (g.Node, error) {
	attrs, err := parseAttrs(opts.attrs)
	if err != nil {
		return nil, err
	}
	if opts.id != "" {
		attrs = append([]g.Node{h.ID(opts.id)}, attrs...)
	}

	child := g.Text(text)
	switch {
	case opts.raw:
		child = view.AdaptTemplToGomponent(templ.Raw(text))
	case opts.markdown:
		html := blackfriday.Run([]byte(text), blackfriday.WithExtensions(blackfriday.CommonExtensions))
		child = view.AdaptTemplToGomponent(templ.Raw(string(html)))
	}

	return message.Content(message.ContentProps{
		IsUser: opts.user,
		Class:  opts.class,
		Attrs:  attrs,
	}, child), nil
}

func readContent(opts *renderOptions) (string, error) {
	if opts.input == "" {
		return opts.content, nil
	}
	data, err := afero.ReadFile(appFs, opts.input)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func renderOnce(stdout io.Writer, opts *renderOptions) error {
	text, err := readContent(opts)
	if err != nil {
		return err
	}
	node, err := buildContent(opts, text)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	if opts.out == "" {
		buf.WriteByte('\n')
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := afero.WriteFile(appFs, opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// watchAndRender renders once, then again on every change to opts.input
// until ctx is canceled. The parent directory is watched so editors that
// replace the file on save are picked up.
func watchAndRender(ctx context.Context, stdout io.Writer, opts *renderOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(opts.input)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", target, err)
	}

	if err := renderOnce(stdout, opts); err != nil {
		return err
	}
	slog.Info("Watching for changes", "input", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if err := renderOnce(stdout, opts); err != nil {
				slog.Warn("Re-render failed", "input", target, "error", err)
				continue
			}
			slog.Debug("Re-rendered", "input", target)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}
