package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	schemata "github.com/persistx/schemata"
)

const watchDebounce = 100 * time.Millisecond

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [model]",
		Short: "Print the properties of a model, or of every model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := modelNames()
			if len(args) == 1 {
				names = args
			}
			for _, n := range names {
				m, err := lookupModel(n)
				if err != nil {
					return err
				}
				s := m.schema()
				if a.format() == formatRecord {
					s = m.records()
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.String())
			}
			return nil
		},
	}
}

func (a *app) decodeCmd() *cobra.Command {
	var dump, watch bool
	cmd := &cobra.Command{
		Use:   "decode <model> <file>",
		Short: "Decode a file as a model and print its canonical encoding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := lookupModel(args[0])
			if err != nil {
				return err
			}
			path := args[1]
			f, err := resolveFormat(a.format(), path)
			if err != nil {
				return err
			}
			run := func() error {
				x, err := a.decodeFile(cmd, m, f, path)
				if err != nil {
					return err
				}
				if dump {
					spew.Fdump(cmd.OutOrStdout(), x)
					return nil
				}
				return a.write(cmd, f, m.encode(x, f == formatRecord))
			}
			if !watch {
				return run()
			}
			return a.watch(cmd.Context(), path, func() {
				if err := run(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print the decoded Go value instead of re-encoding it")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "decode again whenever the file changes")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert <model> <file>",
		Short: "Decode a file as a model and encode it in another format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := lookupModel(args[0])
			if err != nil {
				return err
			}
			from, err := resolveFormat(a.format(), args[1])
			if err != nil {
				return err
			}
			target, err := parseFormat(to)
			if err != nil {
				return err
			}
			if target == formatAuto {
				return fmt.Errorf("convert needs an explicit --to format")
			}
			x, err := a.decodeFile(cmd, m, from, args[1])
			if err != nil {
				return err
			}
			return a.write(cmd, target, m.encode(x, target == formatRecord))
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", "", "target format: json, yaml, toml or record")
	return cmd
}

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <model> <key.path>",
		Short: "Show the chain of properties that reaches a key path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := lookupModel(args[0])
			if err != nil {
				return err
			}
			segs := strings.Split(args[1], ".")
			for _, s := range segs {
				if s == "" {
					return fmt.Errorf("invalid key path %q", args[1])
				}
			}
			chain := m.schema().PropertiesFor(schemata.NewKeyPath(segs...))
			if len(chain) == 0 {
				return fmt.Errorf("%s has no property chain for %q", m.schema().Name(), args[1])
			}
			for _, p := range chain {
				fmt.Fprintf(cmd.OutOrStdout(), "%s.%s\t%s\n", p.Model.Name(), p.KeyPath, p)
			}
			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check every model's schema graph for structural problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var all []schemata.AnyModel
			for _, n := range modelNames() {
				all = append(all, models[n].schema())
			}
			errs := multierr.Errors(schemata.Check(all...))
			for _, err := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d schema problem(s)", len(errs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", strings.Join(modelNames(), ", "))
			return nil
		},
	}
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <model>",
		Short: "Print the JSON Schema of a model's document format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := lookupModel(args[0])
			if err != nil {
				return err
			}
			s, err := schemata.JSONSchema(m.schema())
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}

// decodeFile reads and decodes path. Decode failures are listed on stderr,
// one per line, and summarized in the returned error.
func (a *app) decodeFile(cmd *cobra.Command, m model, f format, path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	in, err := parseInstance(f, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	a.log.Printf("decoding %s as %s (%s)", path, m.name, f)
	x, err := m.decode(in)
	if err != nil {
		de, ok := schemata.AsDecodeError(err)
		if !ok {
			return nil, err
		}
		for _, iss := range de.Issues() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", iss.Path, iss.Message)
		}
		return nil, fmt.Errorf("%s: %d invalid value(s)", path, de.Len())
	}
	return x, nil
}

func (a *app) write(cmd *cobra.Command, f format, in instance) error {
	out, err := marshalInstance(f, in)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// watch runs fn once, then again after every change to path, until ctx is
// done.
func (a *app) watch(ctx context.Context, path string, fn func()) error {
	w, err := newFileWatcher(path, watchDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	a.log.Printf("watching %s", w.File)
	fn()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes:
			a.log.Printf("%s changed", w.File)
			fn()
		}
	}
}
