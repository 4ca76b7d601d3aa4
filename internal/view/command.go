// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/ppanel/ppadmin/internal/dao"
)

// Builtin commands.
const (
	configCmd  = "config"
	profileCmd = "profile"
	helpCmd    = "help"
	quitCmd    = "quit"
)

var builtins = []string{configCmd, profileCmd, helpCmd, quitCmd}

// ErrUnknownCommand is returned for commands that resolve to nothing.
var ErrUnknownCommand = errors.New("unknown command")

// Command interprets the command bar.
type Command struct {
	app *App
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App) *Command {
	return &Command{app: app}
}

// Init checks every alias points at a known view.
func (c *Command) Init() error {
	for _, v := range c.app.aliases.Views() {
		if !c.isView(v) {
			c.app.log.Warn("alias points at an unknown view", "view", v)
		}
	}
	return nil
}

// Names lists the aliases and commands offered as completions.
func (c *Command) Names() []string {
	set := make(map[string]struct{})
	for _, v := range append(ResourceViews(), builtins...) {
		set[v] = struct{}{}
		for _, a := range c.app.aliases.For(v) {
			set[a] = struct{}{}
		}
	}
	for _, s := range dao.EditableSections() {
		set[configCmd+" "+s] = struct{}{}
	}
	set[configCmd+" "+smtpSection+" "+smtpTestArg] = struct{}{}

	nn := make([]string, 0, len(set))
	for n := range set {
		nn = append(nn, n)
	}
	sort.Strings(nn)

	return nn
}

// Known checks if a command line resolves to a view or a builtin.
func (c *Command) Known(cmd string) bool {
	name, _ := c.parse(cmd)
	return name != "" && c.isView(name)
}

// IsResource checks if a view name is a resource browser.
func (c *Command) IsResource(name string) bool {
	_, ok := LookupResource(name)
	return ok
}

// Run parses and executes a command line.
func (c *Command) Run(cmd string) error {
	name, args := c.parse(cmd)
	if name == "" {
		return nil
	}
	c.app.log.Debug("run command", "cmd", name, "args", args)

	switch name {
	case quitCmd:
		c.app.Stop()
		return nil
	case helpCmd:
		c.app.showHelp()
		return nil
	case profileCmd:
		if len(args) == 0 {
			return c.app.Inject(NewProfileSwitcher(c.app))
		}
		return c.app.switchProfileCmd(args[0])
	case configCmd:
		return c.configCmd(args)
	}

	if _, ok := LookupResource(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	return c.app.showResource(name)
}

func (c *Command) configCmd(args []string) error {
	p := c.app.ppadmin()
	if p == nil || !p.Gates().ConfigEditor {
		return errors.New("config editor is disabled. Enable featureGates.configEditor")
	}
	if c.app.IsReadOnly() {
		return errors.New("config editor is unavailable in read only mode")
	}
	act, err := parseConfigArgs(args)
	switch {
	case err != nil:
		return err
	case act.section == "":
		c.app.pickConfigSection()
	case act.testTo != "":
		go c.app.testSMTP(act.testTo)
	default:
		go c.app.editConfig(act.section)
	}

	return nil
}

const (
	smtpSection = "email_smtp"
	smtpTestArg = "test"
)

// configAction is what a config command line asks for. A blank section opens
// the section picker.
type configAction struct {
	section string
	testTo  string
}

func parseConfigArgs(args []string) (configAction, error) {
	if len(args) == 0 {
		return configAction{}, nil
	}
	act := configAction{section: args[0]}
	if !slices.Contains(dao.EditableSections(), act.section) {
		return act, fmt.Errorf("unknown config section %q", act.section)
	}
	switch {
	case len(args) == 1:
		return act, nil
	case act.section == smtpSection && args[1] == smtpTestArg:
		if len(args) != 3 {
			return act, fmt.Errorf("usage: %s %s %s EMAIL", configCmd, smtpSection, smtpTestArg)
		}
		act.testTo = args[2]
		return act, nil
	default:
		return act, fmt.Errorf("unexpected arguments for %s: %s", act.section, strings.Join(args[1:], " "))
	}
}

// parse trims the command line and resolves the alias of its first word.
func (c *Command) parse(cmd string) (string, []string) {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	ff := strings.Fields(cmd)
	if len(ff) == 0 {
		return "", nil
	}
	name := strings.ToLower(ff[0])
	if v, ok := c.app.aliases.Resolve(name); ok {
		name = v
	}

	return name, ff[1:]
}

func (c *Command) isView(name string) bool {
	if slices.Contains(builtins, name) {
		return true
	}
	_, ok := LookupResource(name)
	return ok
}
