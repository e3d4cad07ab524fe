// Package steamshots assembles the command-line interface: one constructor
// per subcommand, wired to the implementations under pkg/commands, with all
// user-facing text in msgs.go.
package steamshots

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/arthur-debert/steamshots/internal/version"
	"github.com/arthur-debert/steamshots/pkg/cobrax/topics"
	"github.com/arthur-debert/steamshots/pkg/commands/genconfig"
	"github.com/arthur-debert/steamshots/pkg/commands/link"
	"github.com/arthur-debert/steamshots/pkg/commands/status"
	"github.com/arthur-debert/steamshots/pkg/commands/unlink"
	"github.com/arthur-debert/steamshots/pkg/commands/watch"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/reconcile"
	"github.com/arthur-debert/steamshots/pkg/style"
	"github.com/arthur-debert/steamshots/pkg/watcher"
	"github.com/gosuri/uilive"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed docs/*.md
var docsFS embed.FS

// docsTopicDefault is rendered when `docs` is called without an argument.
const docsTopicDefault = "screenshot-farm"

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity  int
		dryRun     bool
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:     "steamshots",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given. Show help but return an error so
			// scripts notice the incorrect usage.
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", MsgFlagConfig)

	// Disable automatic help command (the topic system brings its own)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Topic-based help from the embedded documentation
	manager := initDocTopics(rootCmd)

	// Add all commands
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newUnlinkCmd())
	rootCmd.AddCommand(newGenconfigCmd())
	rootCmd.AddCommand(newDocsCmd(manager))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// initDocTopics wires `help <topic>` to the markdown shipped in the binary.
func initDocTopics(rootCmd *cobra.Command) *topics.TopicManager {
	fsys, err := fs.Sub(docsFS, "docs")
	if err != nil {
		return nil
	}

	width := style.TerminalWidth(100)
	if width > 100 {
		width = 100
	}

	manager, err := topics.Initialize(rootCmd, fsys, topics.Options{
		Renderer: topics.NewGlamourRenderer(width),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return nil
	}
	return manager
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// newRenderer picks rich output on terminals and plain text everywhere
// else, so pipes and logs get grep-friendly lines.
func newRenderer() style.Renderer {
	if isTerminal() {
		r := style.NewTerminalRenderer()
		r.SetWidth(style.TerminalWidth(80))
		return r
	}
	return style.NewPlainRenderer()
}

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			dest, _ := cmd.Flags().GetString("dest")
			folder, _ := cmd.Flags().GetString("folder")
			steamRoot, _ := cmd.Flags().GetString("steam-root")

			report, err := link.Link(cmd.Context(), link.Options{
				ConfigPath:  configPath,
				Destination: dest,
				Folder:      folder,
				SteamRoot:   steamRoot,
				DryRun:      dryRun,
			})
			if err != nil {
				return err
			}

			fmt.Println(newRenderer().RenderReport(report))
			return nil
		},
	}

	cmd.Flags().String("dest", "", MsgFlagDest)
	cmd.Flags().String("folder", "", MsgFlagFolder)
	cmd.Flags().String("steam-root", "", MsgFlagSteamRoot)

	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		Example: MsgWatchExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			dest, _ := cmd.Flags().GetString("dest")
			folder, _ := cmd.Flags().GetString("folder")
			steamRoot, _ := cmd.Flags().GetString("steam-root")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := watch.Options{
				ConfigPath:  configPath,
				Destination: dest,
				Folder:      folder,
				SteamRoot:   steamRoot,
				DryRun:      dryRun,
				Debounce:    debounce,
			}

			renderer := newRenderer()
			if isTerminal() {
				writer := uilive.New()
				writer.Start()
				defer writer.Stop()

				first := true
				opts.OnReport = func(rep *reconcile.Report) {
					// Passes that changed something scroll into history
					// above the live line, quiet ones stay quiet.
					if first || rep.Changed() || len(rep.Conflicts) > 0 || len(rep.Failures) > 0 {
						fmt.Fprintln(writer.Bypass(), renderer.SummaryLine(rep))
						first = false
					}
				}
				opts.OnState = func(state watcher.State) {
					switch state {
					case watcher.StateDebouncing:
						fmt.Fprintln(writer, "changes detected, waiting for the burst to settle...")
					case watcher.StateReconciling:
						fmt.Fprintln(writer, "reconciling...")
					default:
						fmt.Fprintln(writer, "watching for changes")
					}
				}
			} else {
				opts.OnReport = func(rep *reconcile.Report) {
					fmt.Println(renderer.SummaryLine(rep))
				}
			}

			return watch.Watch(ctx, opts)
		},
	}

	cmd.Flags().String("dest", "", MsgFlagDest)
	cmd.Flags().String("folder", "", MsgFlagFolder)
	cmd.Flags().String("steam-root", "", MsgFlagSteamRoot)
	cmd.Flags().Duration("debounce", 0, MsgFlagDebounce)

	return cmd
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			dest, _ := cmd.Flags().GetString("dest")
			folder, _ := cmd.Flags().GetString("folder")
			steamRoot, _ := cmd.Flags().GetString("steam-root")

			result, err := status.Status(status.Options{
				ConfigPath:  configPath,
				Destination: dest,
				Folder:      folder,
				SteamRoot:   steamRoot,
			})
			if err != nil {
				return err
			}

			header := style.StatusHeader{
				SteamRoot:   result.SteamRoot,
				Destination: result.Destination,
				Issues:      result.Issues,
			}
			fmt.Println(newRenderer().RenderStatus(header, result.Accounts))
			return nil
		},
	}

	cmd.Flags().String("dest", "", MsgFlagDest)
	cmd.Flags().String("folder", "", MsgFlagFolder)
	cmd.Flags().String("steam-root", "", MsgFlagSteamRoot)

	return cmd
}

func newUnlinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unlink",
		Short:   MsgUnlinkShort,
		Long:    MsgUnlinkLong,
		Example: MsgUnlinkExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			dest, _ := cmd.Flags().GetString("dest")
			folder, _ := cmd.Flags().GetString("folder")
			yes, _ := cmd.Flags().GetBool("yes")

			renderer := newRenderer()
			opts := unlink.Options{
				ConfigPath:  configPath,
				Destination: dest,
				Folder:      folder,
			}

			if dryRun {
				opts.DryRun = true
				report, err := unlink.Unlink(cmd.Context(), opts)
				if err != nil {
					return err
				}
				fmt.Println(renderer.RenderReport(report))
				return nil
			}

			if !yes {
				if !isatty.IsTerminal(os.Stdin.Fd()) {
					return fmt.Errorf("standard input is not a terminal, pass --yes to remove without confirmation")
				}

				preview := opts
				preview.DryRun = true
				report, err := unlink.Unlink(cmd.Context(), preview)
				if err != nil {
					return err
				}
				if !report.Changed() {
					fmt.Println(MsgNothingToDo)
					return nil
				}
				fmt.Println(renderer.RenderReport(report))

				prompt := promptui.Prompt{
					Label:     MsgUnlinkConfirm,
					IsConfirm: true,
				}
				if _, err := prompt.Run(); err != nil {
					fmt.Println(MsgAborted)
					return nil
				}
			}

			report, err := unlink.Unlink(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Println(renderer.SummaryLine(report))
			return nil
		},
	}

	cmd.Flags().String("dest", "", MsgFlagDest)
	cmd.Flags().String("folder", "", MsgFlagFolder)
	cmd.Flags().BoolP("yes", "y", false, MsgFlagYes)

	return cmd
}

func newGenconfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenconfigShort,
		Long:    MsgGenconfigLong,
		Example: MsgGenconfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			effective, _ := cmd.Flags().GetBool("effective")
			write, _ := cmd.Flags().GetBool("write")

			result, err := genconfig.GenConfig(genconfig.Options{
				ConfigPath: configPath,
				Effective:  effective,
				Write:      write,
			})
			if err != nil {
				return err
			}

			if !write {
				fmt.Print(result.Content)
				return nil
			}

			if len(result.FilesWritten) == 0 {
				fmt.Println(MsgConfigExists)
				return nil
			}
			for _, path := range result.FilesWritten {
				fmt.Printf(MsgConfigWritten, path)
			}
			return nil
		},
	}

	cmd.Flags().Bool("effective", false, MsgFlagEffective)
	cmd.Flags().Bool("write", false, MsgFlagWrite)

	return cmd
}

func newDocsCmd(manager *topics.TopicManager) *cobra.Command {
	return &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgDocsShort,
		Long:    MsgDocsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if manager == nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return manager.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if manager == nil {
				return fmt.Errorf("no documentation topics available")
			}

			name := docsTopicDefault
			if len(args) > 0 {
				name = args[0]
			}

			topic, ok := manager.GetTopic(name)
			if !ok {
				return fmt.Errorf("unknown topic %q, available: %s",
					name, strings.Join(manager.ListTopics(), ", "))
			}

			fmt.Print(manager.Render(topic))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("steamshots version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
