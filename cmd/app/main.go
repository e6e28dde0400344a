package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/brackets/internal"
	"github.com/starford/brackets/internal/consolidate"
	"github.com/starford/brackets/internal/index"
	"github.com/starford/brackets/internal/journal"
	"github.com/starford/brackets/internal/mcpserver"
	"github.com/starford/brackets/internal/period"
	"github.com/starford/brackets/internal/rename"
	"github.com/starford/brackets/internal/schedule"
	"github.com/starford/brackets/internal/storage"
	pkgconfig "github.com/starford/brackets/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *internal.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
}

func openVault(cfg *internal.Config) (storage.Provider, error) {
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}
	return storage.NewFS(cfg.Vault.Path)
}

func newJournalService(cmd *cli.Command) (*journal.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	store, err := openVault(cfg)
	if err != nil {
		return nil, err
	}
	cal, err := schedule.Load(cfg.Schedule.Path)
	if err != nil {
		return nil, err
	}
	return journal.NewService(store, cal, newLogger(cfg)), nil
}

func runWeek(ctx context.Context, cmd *cli.Command) error {
	svc, err := newJournalService(cmd)
	if err != nil {
		return err
	}

	weight := cmd.Float("weight")
	overwrite := cmd.Bool("overwrite")

	res, err := svc.NextWeek(weight, overwrite)
	var conflict *journal.ConflictError
	if errors.As(err, &conflict) && !overwrite {
		ok, perr := confirmOverwrite(conflict.Filename)
		if perr != nil {
			return perr
		}
		if !ok {
			fmt.Println("cancelled")
			return nil
		}
		res, err = svc.NextWeek(weight, true)
	}
	if err != nil {
		return err
	}

	fmt.Printf("created %s\n\n%s\n", res.Filename, res.Summary)
	return nil
}

func runMonth(ctx context.Context, cmd *cli.Command) error {
	svc, err := newJournalService(cmd)
	if err != nil {
		return err
	}

	overwrite := cmd.Bool("overwrite")
	res, err := svc.NextMonthlyTopics(overwrite)
	var conflict *journal.ConflictError
	if errors.As(err, &conflict) && !overwrite {
		ok, perr := confirmOverwrite(conflict.Filename)
		if perr != nil {
			return perr
		}
		if !ok {
			fmt.Println("cancelled")
			return nil
		}
		res, err = svc.NextMonthlyTopics(true)
	}
	if err != nil {
		return err
	}

	fmt.Printf("created %s\n", res.Filename)
	return nil
}

func consolidateDecider(cmd *cli.Command) consolidate.Decider {
	if cmd.Bool("yes") {
		return consolidate.Auto{
			Overwrite:     cmd.Bool("overwrite"),
			DeleteSources: cmd.Bool("delete-sources"),
		}
	}
	return promptDecider{}
}

func printConsolidation(res *consolidate.Result) {
	if res.Cancelled {
		fmt.Println("cancelled")
		return
	}
	if res.OutputPath != "" {
		fmt.Printf("wrote %s (%d source files)\n", res.OutputPath, len(res.Sources))
	}
	if res.Deleted > 0 {
		fmt.Printf("deleted %d source file(s)\n", res.Deleted)
	}
	for _, path := range res.DeleteFailures {
		fmt.Printf("could not delete %s\n", path)
	}
}

func runConsolidateMonth(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openVault(cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	year := int(cmd.Int("year"))
	month := int(cmd.Int("month"))
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	eng := consolidate.NewMonth(store, newLogger(cfg), consolidateDecider(cmd))
	res, err := eng.Run(year, month)
	if err != nil {
		return err
	}
	printConsolidation(res)
	return nil
}

func runConsolidateYear(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openVault(cfg)
	if err != nil {
		return err
	}

	year := int(cmd.Int("year"))
	if year == 0 {
		year = time.Now().Year()
	}

	eng := consolidate.NewYear(store, newLogger(cfg), consolidateDecider(cmd))
	res, err := eng.Run(year)
	if err != nil {
		return err
	}
	printConsolidation(res)
	return nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openVault(cfg)
	if err != nil {
		return err
	}

	kindFilter := cmd.String("kind")
	files, err := store.List("")
	if err != nil {
		return err
	}
	for _, f := range files {
		kind, _, perr := period.Parse(f.Path)
		if perr != nil {
			continue
		}
		if kindFilter != "" && kind.String() != kindFilter {
			continue
		}
		fmt.Printf("%-18s %s\n", kind, f.Path)
	}
	return nil
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	filename := cmd.Args().First()
	if filename == "" {
		return errors.New("usage: inspect <filename>")
	}

	svc, err := newJournalService(cmd)
	if err != nil {
		return err
	}
	analysis, err := svc.Inspect(filename)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runReplace(ctx context.Context, cmd *cli.Command) error {
	search := cmd.Args().Get(0)
	replace := cmd.Args().Get(1)
	if search == "" {
		return errors.New("usage: replace <search> <replace>")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openVault(cfg)
	if err != nil {
		return err
	}

	mgr := rename.New(store, newLogger(cfg))
	plan, err := mgr.Plan(search, replace)
	if err != nil {
		return err
	}

	if len(plan.Changes) == 0 {
		fmt.Printf("no occurrences of %q\n", search)
		return nil
	}
	for _, c := range plan.Changes {
		line := fmt.Sprintf("%s: %d occurrence(s)", c.Path, c.Occurrences)
		if c.NewPath != "" {
			line += fmt.Sprintf(", rename to %s", c.NewPath)
			if c.Conflict {
				line += " (skipped, target exists)"
			}
		}
		fmt.Println(line)
	}

	if cmd.Bool("dry-run") {
		fmt.Printf("dry run: %d replacement(s), %d rename(s)\n",
			plan.TotalReplacements(), plan.Renames())
		return nil
	}

	applied, err := mgr.Apply(plan)
	if err != nil {
		return err
	}
	fmt.Printf("modified %d file(s), %d replacement(s), renamed %d, skipped %d\n",
		applied.FilesModified, applied.Replacements, applied.FilesRenamed, len(applied.Skipped))
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openVault(cfg)
	if err != nil {
		return err
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := newLogger(cfg)
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("index sync failed", slog.String("error", err.Error()))
	}

	return mcpserver.New(store, db).ServeStdio()
}

func main() {
	overwriteFlag := &cli.BoolFlag{
		Name:    "overwrite",
		Aliases: []string{"f"},
		Usage:   "Overwrite the target file if it already exists",
	}

	consolidateFlags := []cli.Flag{
		&cli.IntFlag{Name: "year", Usage: "Target year (default: current)"},
		&cli.BoolFlag{Name: "yes", Usage: "Never prompt; decide from flags"},
		&cli.BoolFlag{Name: "overwrite", Usage: "With --yes: regenerate an existing consolidated file"},
		&cli.BoolFlag{Name: "delete-sources", Usage: "With --yes: delete source files after consolidating"},
	}

	cmd := &cli.Command{
		Name:  "brackets",
		Usage: "Personal journal manager for bracketed bitácora files: weekly generation, consolidation, search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "week",
				Usage:  "Generate the next weekly file from the most recent one",
				Action: runWeek,
				Flags: []cli.Flag{
					&cli.FloatFlag{Name: "weight", Aliases: []string{"w"}, Usage: "Body weight for the title line (0 = omit)"},
					overwriteFlag,
				},
			},
			{
				Name:   "month",
				Usage:  "Generate the next monthly topics file",
				Action: runMonth,
				Flags:  []cli.Flag{overwriteFlag},
			},
			{
				Name:  "consolidate",
				Usage: "Merge period files into a single consolidated document",
				Commands: []*cli.Command{
					{
						Name:   "month",
						Usage:  "Consolidate a month's weekly files and topics",
						Action: runConsolidateMonth,
						Flags: append([]cli.Flag{
							&cli.IntFlag{Name: "month", Usage: "Target month 1-12 (default: current)"},
						}, consolidateFlags...),
					},
					{
						Name:   "year",
						Usage:  "Consolidate a year's monthly consolidated files",
						Action: runConsolidateYear,
						Flags:  consolidateFlags,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List period files in the vault",
				Action: runList,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "Filter by kind (weekly, monthly-topics, year-topics, month-consolidated, year-consolidated)"},
				},
			},
			{
				Name:      "inspect",
				Usage:     "Analyze one weekly file: identity, tasks, computed next dates",
				ArgsUsage: "<filename>",
				Action:    runInspect,
			},
			{
				Name:      "replace",
				Usage:     "Search and replace across file contents and filenames",
				ArgsUsage: "<search> <replace>",
				Action:    runReplace,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "Show the plan without applying it"},
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API with the live search index",
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
