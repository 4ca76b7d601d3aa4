// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/config"
	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/logger"
	"github.com/ppanel/ppadmin/internal/ui"
)

const (
	// FlashDelay sets the flash auto-clear delay.
	FlashDelay = 5 * time.Second

	mainPage       = "main"
	helpPage       = "help"
	configPickerID = "config-sections"
)

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash shows transient status messages.
type Flash struct {
	*tview.TextView

	queueFn func(func())
	cancel  context.CancelFunc
	mx      sync.RWMutex
}

// NewFlash creates a new Flash. Updates run through queueFn when set.
func NewFlash(queueFn func(func())) *Flash {
	f := Flash{
		TextView: tview.NewTextView(),
		queueFn:  queueFn,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	f.SetBackgroundColor(tcell.ColorDefault)

	return &f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Warnf displays a formatted warning message.
func (f *Flash) Warnf(format string, args ...any) {
	f.Warn(fmt.Sprintf(format, args...))
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	f.queue(f.TextView.Clear)
}

func (f *Flash) queue(fn func()) {
	if f.queueFn == nil {
		fn()
		return
	}
	f.queueFn(fn)
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	if msg == "" {
		f.Clear()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.cancel = cancel
	f.mx.Unlock()

	f.queue(func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		_, _ = fmt.Fprintf(f.TextView, "%s %s", flashPrefix(level), tview.Escape(msg))
	})

	go f.autoClear(ctx)
}

func (f *Flash) autoClear(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(FlashDelay):
		f.queue(f.TextView.Clear)
	}
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorOrange
	case FlashErr:
		return tcell.ColorOrangeRed
	default:
		return tcell.ColorNavajoWhite
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "😗"
	case FlashErr:
		return "😡"
	default:
		return "😎"
	}
}

// App is the ppadmin terminal application.
type App struct {
	*tview.Application

	Main    *tview.Pages
	Content *ui.Pages

	version string
	config  *config.Config
	aliases *config.Aliases
	hotkeys *config.HotKeys
	factory dao.Factory
	command *Command
	cmdBar  *ui.CmdBar
	menu    *ui.Menu
	crumbs  *ui.Crumbs
	info    *ProfileInfo
	flash   *Flash
	actions *ui.KeyActions
	log     logger.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	mx      sync.RWMutex
}

var _ ui.StackListener = (*App)(nil)

// NewApp creates a new application.
func NewApp(cfg *config.Config, version string) *App {
	a := App{
		Application: tview.NewApplication(),
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		version:     version,
		config:      cfg,
		aliases:     config.NewAliases(),
		hotkeys:     config.NewHotKeys(),
		cmdBar:      ui.NewCmdBar(),
		menu:        ui.NewMenu(),
		crumbs:      ui.NewCrumbs(),
		info:        NewProfileInfo(version),
		actions:     ui.NewKeyActions(),
		log:         logger.GetDefault().With("component", "app"),
	}
	a.ctx, a.cancel = context.WithCancel(logger.ContextWithLogger(context.Background(), a.log))
	a.flash = NewFlash(a.QueueUpdateDraw)
	a.command = NewCommand(&a)

	return &a
}

// Init loads aliases and hotkeys, then builds the layout.
func (a *App) Init() error {
	if err := a.aliases.Load(); err != nil {
		a.log.Warn("load aliases failed", "err", err)
	}
	if err := a.hotkeys.Load(); err != nil {
		a.log.Warn("load hotkeys failed", "err", err)
	}
	if err := a.command.Init(); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	a.Content.AddListener(a.crumbs)
	a.Content.AddListener(a.menu)
	a.Content.AddListener(a)

	a.cmdBar.SetCommands(a.command.Names())
	a.cmdBar.SetActiveFn(a.cmdActive)
	a.cmdBar.SetCommandFn(func(cmd string) {
		if err := a.command.Run(cmd); err != nil {
			a.flash.Err(err)
		}
	})
	a.cmdBar.SetFilterFn(a.applyFilter)
	a.cmdBar.SetCancelFn(func() { a.applyFilter("") })

	a.bindKeys()
	a.bindHotKeys()
	a.Application.SetInputCapture(a.keyboard)
	a.EnableMouse(a.ppadmin() != nil && a.ppadmin().UI.EnableMouse)

	a.Main.AddPage(mainPage, a.layout(), true, true)
	a.SetRoot(a.Main, true)
	a.refreshInfo()

	return nil
}

// Run starts the application on the given command, or the default view.
func (a *App) Run(cmd string) error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	if cmd == "" {
		cmd = a.defaultView()
	}
	if err := a.command.Run(cmd); err != nil {
		a.log.Error("startup command failed", "cmd", cmd, "err", err)
		a.flash.Err(err)
		if err := a.command.Run(config.DefaultView); err != nil {
			return err
		}
	}

	return a.Application.Run()
}

// Stop tears the application down.
func (a *App) Stop() {
	a.mx.Lock()
	a.running = false
	a.mx.Unlock()

	if top := a.Content.Top(); top != nil {
		top.Stop()
	}
	a.cancel()
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Context returns the application context.
func (a *App) Context() context.Context {
	return a.ctx
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Aliases returns the command aliases.
func (a *App) Aliases() *config.Aliases {
	return a.aliases
}

// Factory returns the resource factory.
func (a *App) Factory() dao.Factory {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.factory
}

// SetFactory sets the resource factory.
func (a *App) SetFactory(f dao.Factory) {
	a.mx.Lock()
	a.factory = f
	a.mx.Unlock()
	a.refreshInfo()
}

// IsReadOnly checks if mutations are disabled.
func (a *App) IsReadOnly() bool {
	if p := a.ppadmin(); p != nil {
		return p.IsReadOnly()
	}
	return false
}

// SwitchProfile logs into another profile and reloads the current view.
func (a *App) SwitchProfile(profile string) error {
	f := a.Factory()
	if f == nil {
		return errors.New("factory not initialized")
	}
	if f.Profile() == profile {
		return nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, a.apiTimeout())
	defer cancel()
	if err := f.SetProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to switch profile: %w", err)
	}
	if p := a.ppadmin(); p != nil {
		if _, err := p.ActivateProfile(profile); err != nil {
			a.log.Warn("activate profile config failed", "profile", profile, "err", err)
		}
	}
	a.log.Info("profile switched", "profile", profile)
	a.refreshInfo()

	return nil
}

// QueueUpdateDraw queues a function on the UI thread without blocking.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// Inject initializes a component and pushes it on the view stack.
func (a *App) Inject(c ui.Component) error {
	if err := c.Init(a.ctx); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", c.Name(), err)
	}
	a.Content.Push(c)

	return nil
}

// PopView goes back to the previous view. The last view stays.
func (a *App) PopView() {
	if a.Content.Len() <= 1 {
		return
	}
	a.Content.Pop()
}

// StackPushed starts and focuses the new top component.
func (a *App) StackPushed(c ui.Component) {
	c.Start()
	a.SetFocus(c)
	a.saveActiveView(c.Name())
}

// StackPopped restarts the previous component.
func (a *App) StackPopped(_, top ui.Component) {
	if top == nil {
		return
	}
	top.Start()
	a.SetFocus(top)
	a.saveActiveView(top.Name())
}

// StackTop is a no-op.
func (*App) StackTop(ui.Component) {}

// showResource replaces the view stack with a resource browser.
func (a *App) showResource(name string) error {
	if b, ok := a.Content.Top().(*Browser); ok && b.Name() == name && a.Content.Len() == 1 {
		return nil
	}
	if a.Factory() == nil {
		return errors.New("factory not initialized")
	}
	b := NewBrowser(a, name)
	if err := b.Init(a.ctx); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", name, err)
	}
	a.Content.Replace(b)

	return nil
}

func (a *App) switchProfileCmd(profile string) error {
	if err := a.SwitchProfile(profile); err != nil {
		return err
	}
	a.flash.Infof("Switched to profile %s", profile)

	return a.command.Run(a.defaultView())
}

func (a *App) pickConfigSection() {
	sections := dao.EditableSections()
	items := make([]ui.PickerItem, 0, len(sections))
	for _, s := range sections {
		section := s
		items = append(items, ui.PickerItem{
			Label:    section,
			Selected: func() { go a.editConfig(section) },
		})
	}
	p := ui.NewPicker("System Config", items, func() {
		a.Content.DismissModal(configPickerID)
		if top := a.Content.Top(); top != nil {
			a.SetFocus(top)
		}
	})
	a.Content.ShowModal(configPickerID, p, 40, len(items)+2)
	a.SetFocus(p)
}

func (a *App) apiTimeout() time.Duration {
	if p := a.ppadmin(); p != nil {
		if t, err := p.GetAPITimeout(); err == nil {
			return t
		}
	}
	return config.DefaultAPITimeout
}

func (a *App) ppadmin() *config.PPAdmin {
	if a.config == nil {
		return nil
	}
	return a.config.PPAdmin
}

func (a *App) defaultView() string {
	p := a.ppadmin()
	if p == nil {
		return config.DefaultView
	}
	if st := p.ActiveState(); st != nil {
		if v := st.ActiveView(); v != "" {
			return v
		}
	}
	if p.DefaultView != "" {
		return p.DefaultView
	}

	return config.DefaultView
}

func (a *App) saveActiveView(name string) {
	p := a.ppadmin()
	if p == nil || !a.command.IsResource(name) {
		return
	}
	st := p.ActiveState()
	if st == nil {
		return
	}
	st.SetActiveView(name)
	if err := p.SaveActive(); err != nil {
		a.log.Warn("save active view failed", "view", name, "err", err)
	}
}

func (a *App) refreshInfo() {
	f := a.Factory()
	if f == nil || f.Client() == nil {
		return
	}
	a.info.SetInfo(f.Profile(), f.Client().Endpoint(), a.IsReadOnly())
}

func (a *App) layout() *tview.Flex {
	p := a.ppadmin()
	header := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.info, 40, 1, false).
		AddItem(a.menu, 0, 1, false)
	if p == nil || !p.UI.Logoless {
		header.AddItem(NewLogo(), logoWidth, 1, false)
	}

	main := tview.NewFlex().SetDirection(tview.FlexRow)
	if p == nil || !p.UI.Headless {
		main.AddItem(header, 7, 1, false)
	}
	main.AddItem(a.cmdBar, 3, 1, false).
		AddItem(a.Content, 0, 10, true)
	if p == nil || !p.UI.Crumbsless {
		main.AddItem(a.crumbs, 1, 1, false)
	}
	main.AddItem(a.flash, 1, 1, false)

	return main
}

func (a *App) cmdActive(active bool) {
	if active {
		a.SetFocus(a.cmdBar)
		return
	}
	if top := a.Content.Top(); top != nil {
		a.SetFocus(top)
	}
}

func (a *App) bindKeys() {
	a.actions.Bulk(ui.KeyMap{
		ui.KeyColon:    ui.NewSharedKeyAction("Cmd", a.activateCmd, false),
		ui.KeySlash:    ui.NewSharedKeyAction("Filter", a.activateFilter, false),
		ui.KeyHelp:     ui.NewSharedKeyAction("Help", a.helpCmd, false),
		ui.KeyQ:        ui.NewSharedKeyAction("Quit", a.quitCmd, false),
		tcell.KeyCtrlC: ui.NewSharedKeyAction("Quit", a.quitCmd, false),
	})
}

func (a *App) bindHotKeys() {
	if err := a.hotkeys.Validate(a.command.Known); err != nil {
		a.log.Warn("invalid hotkeys", "err", err)
	}
	for _, name := range a.hotkeys.Names() {
		hk := a.hotkeys.Get(name)
		if hk == nil || !a.command.Known(hk.Command) {
			continue
		}
		key, ok := ui.ParseKey(hk.ShortCut)
		if !ok {
			a.log.Warn("invalid hotkey shortcut", "name", name, "shortcut", hk.ShortCut)
			continue
		}
		if _, taken := a.actions.Get(key); taken {
			a.log.Warn("hotkey shadows a builtin key", "name", name, "shortcut", hk.ShortCut)
			continue
		}
		cmd := hk.Command
		a.actions.Add(key, ui.NewSharedKeyAction(hk.Description, func(*tcell.EventKey) *tcell.EventKey {
			if err := a.command.Run(cmd); err != nil {
				a.flash.Err(err)
			}
			return nil
		}, false))
	}
}

func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a.cmdBar.IsActive() || a.Content.IsTopModal() {
		return evt
	}
	if name, _ := a.Main.GetFrontPage(); name != mainPage {
		return evt
	}
	if act, ok := a.actions.Get(ui.AsKey(evt)); ok {
		return act.Action(evt)
	}

	return evt
}

func (a *App) activateCmd(*tcell.EventKey) *tcell.EventKey {
	a.cmdBar.Activate(ui.ModeCommand)
	return nil
}

func (a *App) activateFilter(evt *tcell.EventKey) *tcell.EventKey {
	if _, ok := a.Content.Top().(filterable); !ok {
		return evt
	}
	a.cmdBar.Activate(ui.ModeFilter)
	return nil
}

func (a *App) quitCmd(*tcell.EventKey) *tcell.EventKey {
	a.Stop()
	return nil
}

func (a *App) helpCmd(*tcell.EventKey) *tcell.EventKey {
	a.showHelp()
	return nil
}

func (a *App) showHelp() {
	var hh ui.MenuHints
	if top := a.Content.Top(); top != nil {
		hh = top.Hints()
	}
	h := NewHelp(hh, a.aliases, a.hotkeys)
	h.SetCloseFn(func() {
		a.Main.RemovePage(helpPage)
		if top := a.Content.Top(); top != nil {
			a.SetFocus(top)
		}
	})
	a.Main.AddPage(helpPage, h, true, true)
	a.SetFocus(h)
}

type filterable interface {
	SetFilter(string)
}

func (a *App) applyFilter(q string) {
	if f, ok := a.Content.Top().(filterable); ok {
		f.SetFilter(strings.TrimSpace(q))
	}
}

// ClearFilter drops the in-page filter.
func (a *App) ClearFilter() bool {
	if a.cmdBar.FilterText() == "" {
		return false
	}
	a.cmdBar.ClearFilter()
	a.applyFilter("")

	return true
}
