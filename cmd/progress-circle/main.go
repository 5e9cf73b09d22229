package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/addielponce/anki-progress-circle/internal/bootstrap"
	addondto "github.com/addielponce/anki-progress-circle/internal/modules/addon/dto"
	overlaydto "github.com/addielponce/anki-progress-circle/internal/modules/overlay/dto"
	settingsdto "github.com/addielponce/anki-progress-circle/internal/modules/settings/dto"
	"github.com/addielponce/anki-progress-circle/internal/platform/config"
	"github.com/addielponce/anki-progress-circle/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "progress-circle",
		Short:         "Circular review progress for flashcard decks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.String(config.KeyDataDir, ".", "data directory (addons, journal, overlay surface)")
	flags.String(config.KeyPackage, config.DefaultPackage, "add-on package id the settings are stored under")
	flags.String(config.KeyDecks, "", "deck fixture YAML (default <data>/decks.yaml)")
	flags.String(config.KeyLogLevel, "info", "log level: trace|debug|info|warn|error")
	flags.String(config.KeyLogFile, "", "also write logs to this file, rotated")
	flags.String(config.KeyConfigFile, "", "optional config file (yaml, toml or json)")
	for _, key := range []string{config.KeyDataDir, config.KeyPackage, config.KeyDecks, config.KeyLogLevel, config.KeyLogFile, config.KeyConfigFile} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(newObserveCmd(v))
	root.AddCommand(newHistoryCmd(v))
	root.AddCommand(newRenderCmd(v))
	root.AddCommand(newConfigCmd(v))
	root.AddCommand(newDecksCmd(v))
	root.AddCommand(newHookCmd(v))
	root.AddCommand(newAddonCmd(v))
	root.AddCommand(newTUICmd(v))
	return root
}

func loadApp(v *viper.Viper) (*bootstrap.App, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	log := logging.New(logging.Options{Name: "progress-circle", Level: cfg.LogLevel, File: cfg.LogFile})
	return bootstrap.New(cfg, log)
}

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(v *viper.Viper, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(v)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			app.Log.Warn("close app", "error", err)
		}
	}()
	return fn(app)
}

func newTUICmd(v *viper.Viper) *cobra.Command {
	var addonName string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the host simulator with a live circle preview",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(app, addonName)
			})
		},
	}
	cmd.Flags().StringVar(&addonName, "addon", "", "drive this add-on process instead of the in-process handler")
	return cmd
}

func newObserveCmd(v *viper.Viper) *cobra.Command {
	var deck string
	cmd := &cobra.Command{
		Use:   "observe <counts>...",
		Short: "Feed queue counts to the tracker, one observation per argument",
		Long: "Each argument is either the remaining card count or new/learning/review.\n" +
			"Observations run in order within one tracker, so a sequence replays a review.",
		Example: "  progress-circle observe --deck A 10 4 7 0\n  progress-circle observe 20/0/30",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := make([][3]int, 0, len(args))
			for _, arg := range args {
				c, err := parseCounts(arg)
				if err != nil {
					return err
				}
				counts = append(counts, c)
			}
			return withApp(v, func(app *bootstrap.App) error {
				for _, c := range counts {
					out, err := app.ProgressCLI.Observe(context.Background(), deck, c[0], c[1], c[2])
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deck=%s done=%d total=%d percent=%.1f%% epoch=%d\n", out.GroupID, out.Done, out.Total, out.Percent, out.Epoch)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&deck, "deck", "default", "deck id")
	return cmd
}

func parseCounts(arg string) ([3]int, error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 1 && len(parts) != 3 {
		return [3]int{}, fmt.Errorf("invalid counts %q: want N or new/learning/review", arg)
	}
	var out [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return [3]int{}, fmt.Errorf("invalid counts %q: %w", arg, err)
		}
		out[i] = n
	}
	return out, nil
}

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	var deck string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled epochs for a deck",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				epochs, err := app.ProgressCLI.History(context.Background(), deck, limit)
				if err != nil {
					return err
				}
				for _, e := range epochs {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tepoch=%d\tgoal=%d\tbest=%d\tlast=%.1f%%\tsamples=%d\t%s..%s\n",
						e.GroupID, e.Epoch, e.Goal, e.BestDone, e.LastPercent, e.Samples, e.FirstSeen, e.LastSeen)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&deck, "deck", "default", "deck id")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum epochs to list")
	return cmd
}

func newRenderCmd(v *viper.Viper) *cobra.Command {
	var done, total int
	var percent float64
	var page bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the circle SVG for a progress triple using the saved style",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				ctx := context.Background()
				style, err := app.SettingsCLI.Show(ctx)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("percent") && total > 0 {
					percent = float64(done) / float64(total) * 100
				}
				markup, err := app.OverlayCLI.Render(ctx, overlaydto.FrameInput{
					Done:    done,
					Total:   total,
					Percent: percent,
					Style:   styleInput(style),
				}, page)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), markup)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&done, "done", 0, "cards done")
	cmd.Flags().IntVar(&total, "total", 0, "epoch goal")
	cmd.Flags().Float64Var(&percent, "percent", 0, "percent (derived from done/total when omitted)")
	cmd.Flags().BoolVar(&page, "page", false, "wrap the SVG in a transparent HTML page")
	return cmd
}

func styleInput(cfg settingsdto.ConfigOutput) overlaydto.StyleInput {
	return overlaydto.StyleInput{
		MainColor:      cfg.MainColor,
		MainOpacity:    cfg.MainOpacity,
		BackColor:      cfg.BackColor,
		BackOpacity:    cfg.BackOpacity,
		MaskCircles:    cfg.MaskCircles,
		HideMainAtZero: cfg.HideMainAtZero,
		StrokeLinecap:  cfg.StrokeLinecap,
	}
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Add-on settings"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				out, err := app.SettingsCLI.Show(context.Background())
				if err != nil {
					return err
				}
				printConfig(cmd, out)
				return nil
			})
		},
	})
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				out, err := app.SettingsCLI.Set(context.Background(), args[0], args[1])
				if err != nil {
					return err
				}
				printConfig(cmd, out)
				return nil
			})
		},
	})
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the package defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				out, err := app.SettingsCLI.Reset(context.Background())
				if err != nil {
					return err
				}
				printConfig(cmd, out)
				return nil
			})
		},
	})
	return cfgCmd
}

func printConfig(cmd *cobra.Command, out settingsdto.ConfigOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "package: %s\n", out.Package)
	_, _ = fmt.Fprintf(w, "main_color: %s\nmain_color_opacity: %d\n", out.MainColor, out.MainOpacity)
	_, _ = fmt.Fprintf(w, "back_color: %s\nback_color_opacity: %d\n", out.BackColor, out.BackOpacity)
	_, _ = fmt.Fprintf(w, "mask_circles: %t\nhide_main_circle_at_zero: %t\nstroke_linecap: %s\n", out.MaskCircles, out.HideMainAtZero, out.StrokeLinecap)
}

func newDecksCmd(v *viper.Viper) *cobra.Command {
	decks := &cobra.Command{Use: "decks", Short: "Inspect the deck fixture"}
	decks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List decks and their due counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				items, err := app.CollectionCLI.List(context.Background())
				if err != nil {
					return err
				}
				for _, d := range items {
					marker := " "
					if d.Current {
						marker = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\tnew=%d learning=%d review=%d\n", marker, d.ID, d.Name, d.New, d.Learning, d.Review)
				}
				return nil
			})
		},
	})
	return decks
}

func newHookCmd(v *viper.Viper) *cobra.Command {
	hook := &cobra.Command{Use: "hook", Short: "Run lifecycle events against the in-process add-on"}
	hook.AddCommand(&cobra.Command{
		Use:   "menu",
		Short: "Print the main-window menu the add-on installs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				menu := app.HookCLI.Menu(context.Background())
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), menu.Title)
				for _, action := range menu.Actions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\n", action.ID, action.Label)
				}
				return nil
			})
		},
	})
	hook.AddCommand(&cobra.Command{
		Use:   "show [state]",
		Short: "Toggle the circle on for the current deck and write the overlay surface",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				ctx := context.Background()
				out, err := app.HookCLI.Toggle(ctx)
				if err != nil {
					return err
				}
				if len(args) == 1 {
					if out, err = app.HookCLI.Dispatch(ctx, "state_did_change", args[0], "deckBrowser"); err != nil {
						return err
					}
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "visible=%t done=%d total=%d percent=%.1f%% surface=%s\n", out.Visible, out.Done, out.Total, out.Percent, app.Config.SurfacePath)
				return nil
			})
		},
	})
	return hook
}

func newAddonCmd(v *viper.Viper) *cobra.Command {
	addon := &cobra.Command{Use: "addon", Short: "Add-on process operations"}
	addon.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List add-on manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				items, err := app.AddonCLI.List(context.Background())
				if err != nil {
					return err
				}
				for _, a := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s hooks=%s\n", a.Name, a.Version, a.Enabled, a.Binary, strings.Join(a.Hooks, ","))
				}
				return nil
			})
		},
	})
	addon.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check add-on binaries, checksums and handshakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				results, err := app.AddonCLI.Doctor(context.Background())
				if err != nil {
					return err
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})
	addon.AddCommand(&cobra.Command{
		Use:   "menu <addon>",
		Short: "Print the menu an add-on installs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				menu, err := app.AddonCLI.Menu(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), menu.Title)
				for _, action := range menu.Actions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\n", action.ID, action.Label)
				}
				return nil
			})
		},
	})

	var state, oldState string
	dispatchCmd := &cobra.Command{
		Use:   "dispatch <addon> <event>",
		Short: "Send one lifecycle event with the current deck's queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				ctx := context.Background()
				queue, err := app.AddonQueue(ctx)
				if err != nil {
					return err
				}
				out, err := app.AddonCLI.Dispatch(ctx, addondto.DispatchInput{
					AddonName: args[0],
					Kind:      args[1],
					State:     state,
					OldState:  oldState,
					Queue:     queue,
				})
				if err != nil {
					return err
				}
				printFrame(cmd, out)
				return nil
			})
		},
	}
	dispatchCmd.Flags().StringVar(&state, "state", "", "new host state for state_did_change")
	dispatchCmd.Flags().StringVar(&oldState, "old-state", "", "previous host state")
	addon.AddCommand(dispatchCmd)

	addon.AddCommand(&cobra.Command{
		Use:   "toggle <addon>",
		Short: "Toggle an add-on's circle with the current deck's queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(v, func(app *bootstrap.App) error {
				ctx := context.Background()
				queue, err := app.AddonQueue(ctx)
				if err != nil {
					return err
				}
				out, err := app.AddonCLI.Toggle(ctx, addondto.ToggleInput{AddonName: args[0], Queue: queue})
				if err != nil {
					return err
				}
				printFrame(cmd, out)
				return nil
			})
		},
	})
	return addon
}

func printFrame(cmd *cobra.Command, out addondto.FrameOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "addon=%s visible=%t refreshed=%t done=%d total=%d percent=%.1f%%\n",
		out.AddonName, out.Visible, out.Refreshed, out.Done, out.Total, out.Percent)
	if out.Menu != nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Menu.Title)
	}
}
