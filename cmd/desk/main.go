package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sisregip-service/internal/app/config"
	"sisregip-service/internal/app/desk/board"
	"sisregip-service/internal/app/desk/gate"
	"sisregip-service/internal/app/desk/merger"
	"sisregip-service/internal/app/desk/ports"
	"sisregip-service/internal/app/desk/reportfilter"
	"sisregip-service/internal/app/desk/secretaria"
	"sisregip-service/internal/app/desk/session"
	"sisregip-service/internal/app/desk/tui"
	"sisregip-service/internal/app/drivers/logger"
	"sisregip-service/internal/pkg/apiclient"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

type desk struct {
	configPath string
	cfg        *config.DeskConfig
	log        *logrus.Logger
	session    *session.Store
	client     *apiclient.Client
	logFile    string
}

func main() {
	d := &desk{session: session.NewStore()}
	if err := d.rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (d *desk) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sisregip-desk",
		Short: "Operator desk for the SISREGIP protocol registry",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return d.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.runTUI(cmd.Context(), tui.Options{Start: tui.ScreenLogin})
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&d.configPath, "config", config.DefaultDeskConfigPath(), "desk configuration file")

	var folder, pageURL string
	mergeCmd := &cobra.Command{
		Use:   "merge",
		Short: "Open the PDF merge helper for a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if folder == "" {
				var err error
				if folder, err = merger.FolderFromURL(pageURL); err != nil {
					return err
				}
			}
			return d.runTUI(cmd.Context(), tui.Options{Start: tui.ScreenMerge, Folder: folder})
		},
	}
	mergeCmd.Flags().StringVar(&folder, "folder", "", "folder holding the PDFs")
	mergeCmd.Flags().StringVar(&pageURL, "url", "", "merge view address carrying folder_path")

	root.AddCommand(
		mergeCmd,
		&cobra.Command{
			Use:   "changelog",
			Short: "Print the release notes",
			RunE: func(cmd *cobra.Command, args []string) error {
				return d.printChangelog(cmd)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the desk version",
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return nil
			},
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", Version, Tag)
			},
		},
	)
	return root
}

func (d *desk) setup() error {
	cfg, err := config.LoadDeskConfig(d.configPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", d.configPath, err)
	}
	d.cfg = cfg

	d.logFile = cfg.LogFile
	if d.logFile == "" {
		d.logFile = filepath.Join(os.TempDir(), "sisregip-desk.log")
	}
	d.log = logger.NewLogrusLogger(cfg.Env, cfg.LogFile)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		d.log.SetLevel(level)
	}

	origin, err := cfg.Origin()
	if err != nil {
		return err
	}
	d.client = apiclient.New(origin, d.session.Operator, d.log)
	d.log.WithField("origin", origin).Debug("Desk client configured")
	return nil
}

func (d *desk) runTUI(ctx context.Context, opts tui.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The terminal belongs to the UI; logs go to the file.
	file, err := os.OpenFile(d.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	d.log.SetOutput(file)

	var program *tea.Program
	ui := tui.NewUI(func(msg tea.Msg) { program.Send(msg) })

	deps := tui.Deps{
		UI:         ui,
		Gate:       gate.New(d.client, d.session, ui, d.log),
		Board:      board.New(d.client, ui, ui, d.log),
		Report:     reportfilter.New(d.client, ui, d.log),
		Secretaria: secretaria.New(d.client, ui, d.log),
		NewMerger: func(closer ports.WindowCloser) *merger.Helper {
			return merger.New(d.client, ui, closer, ui, d.log)
		},
		MergeViewURL: d.cfg.MergeViewURL,
		Log:          d.log,
	}

	model := tui.New(ctx, deps, opts)
	model.Watch()

	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return err
	}

	d.session.Clear()
	return nil
}

func (d *desk) printChangelog(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	changelog, err := d.client.Changelog(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), apiclient.AlertMessage(err))
		return err
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	out, err := renderer.Render(changelog.Markdown)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
