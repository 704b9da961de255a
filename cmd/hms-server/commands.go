package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
)

// withApp loads config, opens the store and runs fn against it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func seedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Hydrate the store, seeding collections that were never stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if force {
					if err := a.store.Reset(ctx); err != nil {
						return err
					}
				}
				return printCounts(cmd.OutOrStdout(), a.store.Counts())
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "discard stored data and write the seed dataset")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report references to records that no longer exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				refs := a.store.CheckReferences()
				out := cmd.OutOrStdout()
				if len(refs) == 0 {
					fmt.Fprintln(out, "no dangling references")
					return nil
				}
				for _, r := range refs {
					fmt.Fprintln(out, r.String())
				}
				return fmt.Errorf("%d dangling references", len(refs))
			})
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print appointment, inventory and billing statistics as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(a.store.Stats())
			})
		},
	}
}

func loginCmd() *cobra.Command {
	var identifier, secret, role string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := auth.ParseRole(role)
			if err != nil {
				return err
			}
			pass, err := readSecret(secret, cmd.InOrStdin(), os.Getenv)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				s, _, err := a.manager().Login(ctx, identifier, pass, r)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", s.Subject, s.Role.Label())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&identifier, "identifier", "", "account identifier, e.g. admin@hms.local")
	cmd.Flags().StringVar(&secret, "secret", "", `account secret; "-" reads it from stdin (default $`+secretEnv+`)`)
	cmd.Flags().StringVar(&role, "role", "", "role to act as")
	cmd.MarkFlagRequired("identifier")
	cmd.MarkFlagRequired("role")
	return cmd
}

// secretEnv names the variable consulted when --secret is not given.
const secretEnv = "HMS_SECRET"

// readSecret resolves the login secret. "-" reads the first line of in; an
// empty flag falls back to the environment.
func readSecret(flag string, in io.Reader, getenv func(string) string) (string, error) {
	switch flag {
	case "-":
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read secret: %w", err)
		}
		flag = strings.TrimRight(line, "\r\n")
	case "":
		flag = getenv(secretEnv)
	}
	if flag == "" {
		return "", fmt.Errorf("no secret given: pass --secret - and type it on stdin, or set %s", secretEnv)
	}
	return flag, nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.manager().Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				s, err := a.manager().Resolve(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !s.Authenticated() {
					fmt.Fprintln(out, "not signed in")
					return nil
				}
				fmt.Fprintf(out, "%s (%s)\n", s.Subject, s.Role.Label())
				return nil
			})
		},
	}
}

func navCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "Show the navigation the local session may use",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				s, err := a.manager().Resolve(ctx)
				if err != nil {
					return err
				}
				printNavigation(cmd.OutOrStdout(), auth.Navigation(s))
				return nil
			})
		},
	}
}

func stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "List the keys held by the persistence medium",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				keys, err := a.medium.Keys(ctx)
				if err != nil {
					return err
				}
				sizes := make(map[string]int, len(keys))
				for _, k := range keys {
					blob, err := a.medium.Load(ctx, k)
					if err != nil {
						return fmt.Errorf("load %s: %w", k, err)
					}
					sizes[k] = len(blob)
				}
				return printTable(cmd.OutOrStdout(), "KEY\tBYTES", sizes)
			})
		},
	}
}

func printCounts(w io.Writer, counts map[string]int) error {
	return printTable(w, "COLLECTION\tRECORDS", counts)
}

func printTable(w io.Writer, header string, counts map[string]int) error {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\n", name, counts[name])
	}
	return tw.Flush()
}

func printNavigation(w io.Writer, sections []auth.NavSection) {
	if len(sections) == 0 {
		fmt.Fprintln(w, "nothing available; sign in first")
		return
	}
	for _, sec := range sections {
		fmt.Fprintln(w, sec.Title)
		for _, it := range sec.Items {
			fmt.Fprintf(w, "  %-16s %s\n", it.Label, it.Path)
		}
	}
}
