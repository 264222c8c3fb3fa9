package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/CatmanJunior/RoosterDIMS/internal/config"
	"github.com/CatmanJunior/RoosterDIMS/pkg/clients/gmailclient"
	"github.com/CatmanJunior/RoosterDIMS/pkg/notify"
	"github.com/CatmanJunior/RoosterDIMS/pkg/persistence/postgres"
	"github.com/CatmanJunior/RoosterDIMS/pkg/utils"
	"github.com/CatmanJunior/RoosterDIMS/pkg/utils/logging"
)

// App holds the application dependencies shared across commands.
type App struct {
	cfg    *config.Config
	db     *postgres.DB
	notify *notify.Notifier
	logger *zap.Logger
	ctx    context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "RoosterDIMS CLI - generate and manage testing schedules",
		Long:  `A CLI tool for generating CP-SAT-backed testing schedules, exporting results, and diagnosing infeasible runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
			if app != nil && app.db != nil {
				app.db.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(diagnoseCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the database connection shared by
// every command.
func initApp() error {
	var err error
	app = &App{ctx: context.Background()}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.logger.Info("starting application", zap.String("environment", env))

	app.logger.Debug("loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("configuration loaded successfully")

	app.logger.Debug("connecting to database")
	app.db, err = postgres.NewDB(app.ctx, app.cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Debug("database connected successfully")

	if app.cfg.Notify.Enabled {
		app.logger.Debug("initializing notification client")
		oauthCfg, err := config.LoadOAuthClientWithEnv(env)
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
		if err != nil {
			return fmt.Errorf("failed to get oauth config: %w", err)
		}
		token, err := utils.GetToken(app.ctx, oauthConfig, app.cfg.Notify.TokenFile)
		if err != nil {
			return fmt.Errorf("failed to obtain OAuth token: %w", err)
		}
		gmailClient, err := gmailclient.NewClient(app.ctx, oauthCfg, token)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		app.notify = notify.New(app.cfg.Notify, gmailClient, app.logger)
	}

	return nil
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (authenticate once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without re-authenticating.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts, err := parseCommandLine(line)
				if err != nil {
					fmt.Printf("error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("goodbye")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("error parsing flags: %v\n\n", err)
					continue
				}

				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("error: %v\n\n", err)
					continue
				}

				if targetCmd.RunE != nil {
					if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
						fmt.Printf("error: %v\n\n", err)
					}
				} else if targetCmd.Run != nil {
					targetCmd.Run(targetCmd, cmdArgs)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-40s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Println("\n  help                                     Show this help message")
	fmt.Println("  exit, quit                               Exit the interactive session")
}

// parseCommandLine splits a command line into arguments, respecting quoted
// strings (single or double).
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune

	for i, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}

		if i == len(line)-1 && inQuote != 0 {
			return nil, fmt.Errorf("unclosed quote: %c", inQuote)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}
