package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppanel/ppadmin/internal/api"
	"github.com/ppanel/ppadmin/internal/config"
	"github.com/ppanel/ppadmin/internal/config/data"
	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/export"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/logger"
	"github.com/ppanel/ppadmin/internal/view"
)

const (
	appName    = "ppadmin"
	appVersion = "0.1.0"
)

var (
	ppFlags *data.Flags
	rootCmd = &cobra.Command{
		Use:   appName,
		Short: "A terminal admin console for PPanel",
		Long:  `ppadmin is a terminal-based UI for administering a PPanel deployment, inspired by k9s.`,
		RunE:  run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
	profilesCmd = &cobra.Command{
		Use:   "profiles",
		Short: "List the configured PPanel profiles",
		RunE:  listProfiles,
	}
	exportCmd = &cobra.Command{
		Use:   "export RESOURCE",
		Short: "Export one page of a resource grid",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportOpts struct {
		format  string
		page    int
		size    int
		filters []string
		search  string
		out     string
		s3      bool
	}
)

func init() {
	ppFlags = config.NewFlags()
	initPPFlags()
	initExportFlags()
	rootCmd.AddCommand(versionCmd, profilesCmd, exportCmd)
}

func initPPFlags() {
	rootCmd.PersistentFlags().StringVarP(ppFlags.LogLevel, "logLevel", "l", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(ppFlags.LogFile, "logFile", "", "Log file path")
	rootCmd.PersistentFlags().StringVar(ppFlags.Profile, "profile", "", "PPanel profile to use")
	rootCmd.PersistentFlags().StringVar(ppFlags.Endpoint, "endpoint", "", "Overrides the profile API endpoint")

	rootCmd.Flags().Float32VarP(ppFlags.RefreshRate, "refresh", "r", config.DefaultRefreshRate, "Refresh rate in seconds")
	rootCmd.Flags().StringVarP(ppFlags.Command, "command", "c", "", "Startup command/view")
	rootCmd.Flags().BoolVar(ppFlags.ReadOnly, "readonly", false, "Enable read-only mode")
	rootCmd.Flags().BoolVar(ppFlags.Write, "write", false, "Enable write mode (overrides readonly)")
	rootCmd.Flags().BoolVar(ppFlags.Headless, "headless", false, "Hide the header")
}

func initExportFlags() {
	exportCmd.Flags().StringVarP(&exportOpts.format, "format", "f", "", "Output format (csv, xlsx, json, yaml)")
	exportCmd.Flags().IntVar(&exportOpts.page, "page", 1, "Page to export, starting at 1")
	exportCmd.Flags().IntVar(&exportOpts.size, "size", 0, "Page size")
	exportCmd.Flags().StringArrayVar(&exportOpts.filters, "filter", nil, "Column filter as key=value (repeatable)")
	exportCmd.Flags().StringVar(&exportOpts.search, "search", "", "Global search term")
	exportCmd.Flags().StringVarP(&exportOpts.out, "out", "o", "", "Output directory, - for stdout")
	exportCmd.Flags().BoolVar(&exportOpts.s3, "s3", false, "Upload the export to the configured S3 bucket")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// session is what every command needs once the profiles are loaded.
type session struct {
	cfg     *config.Config
	factory *dao.APIFactory
	log     logger.Logger
	closeFn func()
}

func bootstrap(ctx context.Context, connect bool) (*session, error) {
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}
	var s session
	s.log, s.closeFn = setupLogger()

	profiles, err := api.LoadProfiles(config.AppCredentialsFile)
	if err != nil {
		s.closeFn()
		return nil, fmt.Errorf("failed to load PPanel profiles: %w", err)
	}
	s.cfg = config.NewConfig(profiles)
	if err := s.cfg.Load(config.AppConfigFile, false); err != nil {
		s.closeFn()
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	profile, err := s.cfg.Refine(ppFlags, profiles)
	if err != nil {
		s.closeFn()
		return nil, fmt.Errorf("failed to refine configuration: %w", err)
	}
	if err := s.cfg.Save(config.AppConfigFile, false); err != nil {
		s.log.Warn("save config failed", "err", err)
	}
	if !connect {
		return &s, nil
	}

	timeout, err := s.cfg.PPAdmin.GetAPITimeout()
	if err != nil {
		s.log.Warn("bad api timeout, using default", "err", err)
		timeout = config.DefaultAPITimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := api.InitConnection(cctx, profiles, &api.ClientConfig{
		Profile:  profile,
		Endpoint: *ppFlags.Endpoint,
		Timeout:  timeout,
		Debug:    *ppFlags.LogLevel == string(logger.DebugLevel),
	})
	if err != nil {
		s.closeFn()
		return nil, fmt.Errorf("failed to connect to PPanel: %w", err)
	}
	s.cfg.SetConnection(client)
	s.factory = dao.NewFactory(client)

	return &s, nil
}

func (s *session) close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// setupLogger logs to the log file. The TUI owns the terminal.
func setupLogger() (logger.Logger, func()) {
	path := config.AppLogFile
	if config.IsStringSet(ppFlags.LogFile) {
		path = *ppFlags.LogFile
	}
	if err := data.EnsureParent(path); err != nil {
		return logger.SetupLogger(*ppFlags.LogLevel, false, io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return logger.SetupLogger(*ppFlags.LogLevel, false, io.Discard), func() {}
	}

	return logger.SetupLogger(*ppFlags.LogLevel, false, f), func() { _ = f.Close() }
}

func run(cmd *cobra.Command, _ []string) error {
	s, err := bootstrap(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.close()

	app := view.NewApp(s.cfg, appVersion)
	app.SetFactory(s.factory)
	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	s.log.Info("starting", "version", appVersion, "profile", s.factory.Profile())

	return app.Run(*ppFlags.Command)
}

func listProfiles(cmd *cobra.Command, _ []string) error {
	s, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.close()

	pp := s.cfg.Profiles()
	active := s.cfg.PPAdmin.ActiveProfile()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tPROFILE\tENDPOINT\tEMAIL")
	for _, name := range pp.Names() {
		p, err := pp.Get(name)
		if err != nil {
			continue
		}
		marker := ""
		if name == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, p.Name, p.Endpoint, p.Email)
	}

	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer s.close()

	aliases := config.NewAliases()
	if err := aliases.Load(); err != nil {
		s.log.Warn("load aliases failed", "err", err)
	}
	resource := args[0]
	if v, ok := aliases.Resolve(resource); ok {
		resource = v
	}
	if _, ok := view.LookupResource(resource); !ok {
		return fmt.Errorf("%w: %s", view.ErrUnknownCommand, args[0])
	}

	ctx = logger.ContextWithLogger(ctx, s.log)
	v, err := exportView(ctx, s.factory, s.cfg.PPAdmin.GridOptions(), s.log.With("export", resource), resource)
	if err != nil {
		return err
	}

	req, err := exportRequest(s.cfg.PPAdmin, resource)
	if err != nil {
		return err
	}
	if req.Dir == "-" {
		return export.Write(cmd.OutOrStdout(), export.FromView(v), req.Format)
	}
	out, err := view.Export(ctx, req, v, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(v.Rows), out)

	return nil
}

// fetchErrors keeps the outcome of the latest page load.
type fetchErrors struct {
	mx   sync.Mutex
	last error
}

func (f *fetchErrors) record(err error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.last = err
}

func (f *fetchErrors) err() error {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.last
}

// exportView builds a read only grid for resource and snapshots it. A failed
// page load fails the export rather than writing an empty file.
func exportView(ctx context.Context, f dao.Factory, opts grid.Options, l logger.Logger, resource string) (grid.View, error) {
	var fe fetchErrors
	res, err := view.BuildGrid(ctx, resource, view.GridDeps{
		Factory:  f,
		Options:  opts,
		Logger:   l,
		ReadOnly: true,
		Fetched:  fe.record,
	})
	if err != nil {
		return grid.View{}, err
	}
	v, err := snapshot(ctx, res.Table, fe.err)
	if err != nil {
		return grid.View{}, fmt.Errorf("export %s: %w", resource, err)
	}

	return v, nil
}

// snapshot mounts the grid, applies the requested state and waits for the data.
// Every step stops at the first failed load.
func snapshot(ctx context.Context, t grid.Table, fetchErr func() error) (grid.View, error) {
	t.Mount(ctx)
	defer t.Unmount()
	wait := func() error {
		t.Wait()
		return fetchErr()
	}
	if err := wait(); err != nil {
		return grid.View{}, err
	}

	for _, f := range exportOpts.filters {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return grid.View{}, fmt.Errorf("invalid filter %q, want key=value", f)
		}
		if err := view.ApplyFilter(t.View(), key, val); err != nil {
			return grid.View{}, err
		}
		if err := wait(); err != nil {
			return grid.View{}, err
		}
	}
	if exportOpts.search != "" {
		t.SetGlobalFilter(exportOpts.search)
		if err := wait(); err != nil {
			return grid.View{}, err
		}
	}
	if exportOpts.size > 0 {
		t.SetPageSize(exportOpts.size)
		if err := wait(); err != nil {
			return grid.View{}, err
		}
	}
	if exportOpts.page > 1 {
		t.SetPageIndex(exportOpts.page - 1)
		if err := wait(); err != nil {
			return grid.View{}, err
		}
	}

	return t.View(), nil
}

func exportRequest(p *config.PPAdmin, resource string) (view.ExportRequest, error) {
	req := view.ExportRequest{
		Resource: resource,
		Format:   export.FormatCSV,
		Dir:      config.AppExportsDir,
	}
	if p.Export.Format != "" {
		f, err := export.ParseFormat(p.Export.Format)
		if err != nil {
			return req, err
		}
		req.Format = f
	}
	if exportOpts.format != "" {
		f, err := export.ParseFormat(exportOpts.format)
		if err != nil {
			return req, err
		}
		req.Format = f
	}
	if p.Export.Dir != "" {
		req.Dir = p.Export.Dir
	}
	if exportOpts.out != "" {
		req.Dir = exportOpts.out
	}
	if !exportOpts.s3 {
		return req, nil
	}
	if !p.Gates().S3Export {
		return req, fmt.Errorf("s3 export is disabled in %s", config.AppConfigFile)
	}
	req.S3 = &export.S3Config{
		Bucket: p.Export.Bucket,
		Region: p.Export.Region,
		Prefix: p.Export.Prefix,
	}

	return req, nil
}
