package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/autoload-priority/internal/app"
	"github.com/quantmind-br/autoload-priority/internal/config"
	"github.com/quantmind-br/autoload-priority/internal/domain"
	"github.com/quantmind-br/autoload-priority/internal/priority"
	"github.com/quantmind-br/autoload-priority/internal/tui"
	"github.com/quantmind-br/autoload-priority/internal/utils"
	"github.com/quantmind-br/autoload-priority/pkg/version"
)

// Exit codes
const (
	exitError = 1
	exitDrift = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(exitCode(err))
	}
}

// exitCode lets CI tell a manifest that needs promotion apart from a failure
func exitCode(err error) int {
	if errors.Is(err, domain.ErrNotPromoted) {
		return exitDrift
	}
	return exitError
}

// cli holds the state shared by the command tree
type cli struct {
	v          *viper.Viper
	cfgFile    string
	verbose    bool
	manifest   string
	noProgress bool
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "autoload-priority [project-dir]",
		Short: "Load chosen packages' helper files first",
		Long: `autoload-priority rewrites Composer's generated always-load manifests
(vendor/composer/autoload_static.php and autoload_files.php) so the helper files
of the packages you name are loaded before everything else.

Run it from a post-autoload-dump script, in CI with "check", or keep it running
with "watch" while developing.`,
		Version:       version.Short(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return c.runPromote(cmd, args, domain.CommonOptions{DryRun: dryRun})
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is ./autoload-priority.yaml or ~/.autoload-priority/autoload-priority.yaml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Verbose output")
	flags.StringVar(&c.manifest, "manifest", "", "Batch file (YAML or JSON) listing several projects")
	flags.BoolVar(&c.noProgress, "no-progress", false, "Hide the batch progress bar")
	flags.StringSliceP("package", "p", nil, "Package whose always-load files are promoted (repeatable, in priority order)")
	flags.StringSlice("file", nil, "Raw path fragment to promote (repeatable)")
	flags.Bool("root", false, "Promote the root package's own always-load files")
	flags.String("vendor-dir", "", "Vendor directory (default from composer.json or \"vendor\")")
	flags.IntP("concurrency", "j", config.DefaultWorkers, "Projects processed in parallel in batch mode")
	flags.String("log-format", config.DefaultLogFormat, "Log format (pretty or json)")

	rootCmd.Flags().Bool("dry-run", false, "Report what would move without writing files")

	// Bind flags to viper
	_ = c.v.BindPFlag("project.vendor_dir", flags.Lookup("vendor-dir"))
	_ = c.v.BindPFlag("promote.packages", flags.Lookup("package"))
	_ = c.v.BindPFlag("promote.files", flags.Lookup("file"))
	_ = c.v.BindPFlag("promote.root", flags.Lookup("root"))
	_ = c.v.BindPFlag("concurrency.workers", flags.Lookup("concurrency"))
	_ = c.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	// Add subcommands
	rootCmd.AddCommand(c.checkCmd())
	rootCmd.AddCommand(c.watchCmd())
	rootCmd.AddCommand(c.doctorCmd())
	rootCmd.AddCommand(c.initCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func (c *cli) initConfig() {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	}
}

// loadConfig loads the configuration and applies the project-dir argument
func (c *cli) loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.LoadFrom(c.v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if len(args) > 0 {
		cfg.Project.Dir = args[0]
	}
	return cfg, nil
}

func (c *cli) newLogger(cmd *cobra.Command, cfg *config.Config) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: c.verbose,
	})
}

func (c *cli) newOrchestrator(cmd *cobra.Command, cfg *config.Config, opts domain.CommonOptions) (*app.Orchestrator, error) {
	opts.Verbose = c.verbose

	// Batch runs show a progress bar unless logs already narrate each step
	var progress io.Writer
	if c.manifest != "" && !c.verbose && !c.noProgress {
		progress = cmd.ErrOrStderr()
	}

	orch, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: opts,
		Config:        cfg,
		Logger:        c.newLogger(cmd, cfg),
		Progress:      progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}
	return orch, nil
}

// runPromote promotes one project, or every project of the batch file
func (c *cli) runPromote(cmd *cobra.Command, args []string, opts domain.CommonOptions) error {
	cfg, err := c.loadConfig(args)
	if err != nil {
		return err
	}

	orch, err := c.newOrchestrator(cmd, cfg, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.manifest == "" {
		result, err := orch.Run(ctx, app.ProjectFromConfig(cfg))
		printReport(cmd.OutOrStdout(), []*domain.ProjectResult{result}, opts)
		return err
	}

	batch, err := priority.NewLoader().Load(c.manifest)
	if err != nil {
		return fmt.Errorf("failed to load batch file: %w", err)
	}
	if cmd.Flags().Changed("concurrency") {
		batch.Options.Concurrency = cfg.Concurrency.Workers
	}

	results, err := orch.RunBatch(ctx, batch)
	printReport(cmd.OutOrStdout(), results, opts)
	return err
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [project-dir]",
		Short: "Fail when a manifest is not in promoted order",
		Long: `Verifies that the always-load manifests already list the promoted files
first, without writing anything. Exits with status 2 when a manifest needs
promotion, so it can guard CI pipelines.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPromote(cmd, args, domain.CommonOptions{Check: true})
		},
	}
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [project-dir]",
		Short: "Promote again whenever Composer regenerates the manifests",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.manifest != "" {
				return errors.New("watch handles a single project, --manifest is not supported")
			}

			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}

			orch, err := c.newOrchestrator(cmd, cfg, domain.CommonOptions{})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return orch.Watch(ctx, app.ProjectFromConfig(cfg))
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}
