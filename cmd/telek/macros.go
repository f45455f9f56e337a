package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telek/telek/internal/domain"
	"github.com/telek/telek/internal/infra"
	"github.com/telek/telek/internal/macro"
)

var macrosCmd = &cobra.Command{
	Use:   "macros",
	Short: "Manage keyboard macros",
	Long: `Lists and edits the keyboard macros the scheduler picks from while
idle. The first run seeds a built-in set of common macros.`,
}

var macrosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all macros",
	RunE:  runMacrosList,
}

var macrosAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a macro",
	Args:  cobra.ExactArgs(1),
	Long: `Adds a macro. --keys takes a comma-separated list of key tokens;
a token is a +-joined combination such as "ctrl+s" or "shift+cmd+right".
A macro with several tokens presses one of them, chosen at random, per
execution.`,
	RunE: runMacrosAdd,
}

var macrosRemoveCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a macro by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runMacrosRemove,
}

var macrosEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a single macro",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setMacroEnabled(args[0], true) },
}

var macrosDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a single macro",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setMacroEnabled(args[0], false) },
}

var macrosOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn the macro step of the activity sequence on",
	RunE:  func(cmd *cobra.Command, args []string) error { return setRegistryEnabled(true) },
}

var macrosOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn the macro step of the activity sequence off",
	RunE:  func(cmd *cobra.Command, args []string) error { return setRegistryEnabled(false) },
}

var (
	macroKeys  string
	macroDelay float64
	macroDesc  string
)

func init() {
	macrosAddCmd.Flags().StringVar(&macroKeys, "keys", "", "Comma-separated key tokens (required)")
	macrosAddCmd.Flags().Float64Var(&macroDelay, "delay", 0.1, "Delay in seconds after the key press [0, 5]")
	macrosAddCmd.Flags().StringVar(&macroDesc, "desc", "", "Description")
	_ = macrosAddCmd.MarkFlagRequired("keys")

	macrosCmd.AddCommand(macrosListCmd)
	macrosCmd.AddCommand(macrosAddCmd)
	macrosCmd.AddCommand(macrosRemoveCmd)
	macrosCmd.AddCommand(macrosEnableCmd)
	macrosCmd.AddCommand(macrosDisableCmd)
	macrosCmd.AddCommand(macrosOnCmd)
	macrosCmd.AddCommand(macrosOffCmd)
}

// openRegistry loads the shared macro file. The input driver is real, but
// macro management never injects anything.
func openRegistry() (*macro.Registry, error) {
	logger := zap.NewNop()
	store := infra.NewJSONMacroStore(infra.DefaultMacroPath())
	return macro.NewRegistry(store, infra.NewInputDriver(logger), logger)
}

func runMacrosList(cmd *cobra.Command, args []string) error {
	registry, err := openRegistry()
	if err != nil {
		return err
	}

	state := "off"
	if registry.IsEnabled() {
		state = "on"
	}
	fmt.Printf("\n=== Keyboard Macros (step: %s) ===\n", state)

	for _, m := range registry.ListAll() {
		marker := " "
		if !m.Enabled {
			marker = "-"
		}
		fmt.Printf("\n[%s] %s\n", marker, m.Name)
		fmt.Printf("    keys:  %s\n", strings.Join(m.Keys, ", "))
		fmt.Printf("    delay: %.1fs\n", m.DelaySeconds)
		if m.Description != "" {
			fmt.Printf("    %s\n", m.Description)
		}
	}

	fmt.Println("\n==================================")
	return nil
}

func runMacrosAdd(cmd *cobra.Command, args []string) error {
	registry, err := openRegistry()
	if err != nil {
		return err
	}

	m := domain.Macro{
		Name:         args[0],
		Keys:         keysFlag(macroKeys),
		DelaySeconds: macroDelay,
		Description:  macroDesc,
		Enabled:      true,
	}
	if err := registry.Add(m); err != nil {
		return err
	}
	fmt.Printf("Added macro %q\n", m.Name)
	return nil
}

func runMacrosRemove(cmd *cobra.Command, args []string) error {
	registry, err := openRegistry()
	if err != nil {
		return err
	}
	if !registry.Remove(args[0]) {
		return fmt.Errorf("no macro named %q", args[0])
	}
	fmt.Printf("Removed macro %q\n", args[0])
	return nil
}

func setMacroEnabled(name string, enabled bool) error {
	registry, err := openRegistry()
	if err != nil {
		return err
	}
	m := registry.Get(name)
	if m == nil {
		return fmt.Errorf("no macro named %q", name)
	}
	m.Enabled = enabled
	if !registry.Update(name, *m) {
		return fmt.Errorf("failed to update macro %q", name)
	}
	fmt.Printf("Macro %q enabled=%v\n", name, enabled)
	return nil
}

func setRegistryEnabled(enabled bool) error {
	registry, err := openRegistry()
	if err != nil {
		return err
	}
	registry.SetEnabled(enabled)
	if enabled {
		fmt.Println("Keyboard macro step is on")
	} else {
		fmt.Println("Keyboard macro step is off")
	}
	return nil
}
