package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
	"github.com/jbinder6342/OpenCore-Legacy-Patcher/document"
	"github.com/jbinder6342/OpenCore-Legacy-Patcher/probe"
	"github.com/jbinder6342/OpenCore-Legacy-Patcher/profiles"
	"github.com/jbinder6342/OpenCore-Legacy-Patcher/quirk"
)

// BuildCmd resolves the Bluetooth quirk set for this machine (or a forced
// model) and applies it to a fresh config document.
func BuildCmd() *cobra.Command {
	var modelFlag string
	var customModel bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve and apply Bluetooth compatibility patches",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOptions()
			if modelFlag != "" {
				opts.Model = modelFlag
				opts.CustomModel = true
			}
			if customModel {
				opts.CustomModel = true
			}
			return runBuild(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "force a model identifier instead of probing")
	cmd.Flags().BoolVar(&customModel, "custom-model", false, "resolve from the static tables even when probe data exists")
	return cmd
}

func runBuild(ctx context.Context, opts oclp.Options) error {
	table, err := resolveTable(ctx, opts)
	if err != nil {
		return err
	}

	detected, model := probeHardware(ctx, opts)
	if opts.Model != "" {
		model = opts.Model
	}
	if model == "" {
		return fmt.Errorf("no model identifier: probing failed and no --model given")
	}

	doc := document.New(
		document.KextEntry{BundlePath: quirk.KextBlueToolFixup, Comment: "Patch firmware upload for legacy Bluetooth"},
		document.KextEntry{BundlePath: quirk.KextBluetoothSpoof, Comment: "Spoof Bluetooth controller address"},
	)

	resolver := quirk.NewResolver(table, opts.Kexts, logger)
	result := resolver.Resolve(opts.CustomModel, detected, model)

	if err := document.NewApplier(doc, logger).Apply(result); err != nil {
		return err
	}
	doc.Prune()

	printSummary(model, detected, result, doc)
	return nil
}

func resolveTable(ctx context.Context, opts oclp.Options) (oclp.ModelTable, error) {
	switch {
	case opts.ProfileTablePath != "":
		return profiles.Load(opts.ProfileTablePath)
	case opts.ProfileServerURL != "":
		return profiles.NewClient(opts.ProfileServerURL).FetchTable(ctx)
	default:
		return profiles.Builtin(), nil
	}
}

// probeHardware tries the helper's RPC channel first, then the HTTP report
// endpoint. Probe failure is not fatal; resolution falls back to the static
// tables.
func probeHardware(ctx context.Context, opts oclp.Options) (*oclp.HardwareIdentity, string) {
	if opts.CustomModel {
		return nil, ""
	}

	rpc := probe.NewRPCClient(opts.ProbeRPCURL)
	if err := rpc.Connect(ctx); err == nil {
		defer rpc.Close()
		if report, err := rpc.FetchReport(ctx); err == nil {
			return report.Identity(), report.Model
		}
	}

	poller := probe.NewReportPoller(opts.ProbeReportURL)
	report, err := poller.PollOnce(ctx)
	if err != nil {
		logger.Warn("hardware probe unavailable; using static tables", zap.Error(err))
		return nil, ""
	}
	return report.Identity(), report.Model
}

func printSummary(model string, detected *oclp.HardwareIdentity, result oclp.ResolutionResult, doc *document.Document) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Printf("Bluetooth build for %s\n", model)
	if detected != nil {
		fmt.Printf("  detected: %s", detected.Bluetooth)
		if detected.Wireless != oclp.WirelessNone {
			fmt.Printf(" (wifi: %s)", detected.Wireless)
		}
		fmt.Println()
	} else {
		yellow.Println("  no live detection; resolved from static tables")
	}

	if len(result) == 0 {
		green.Println("  no quirks needed")
		return
	}

	for _, k := range doc.KernelAdd {
		green.Printf("  + %s %s\n", k.BundlePath, k.Version)
	}
	if doc.BootArgs != "" {
		fmt.Printf("  boot-args: %s\n", doc.BootArgs)
	}
	for key := range doc.NVRAMAdd[document.AppleNVRAMNamespace] {
		fmt.Printf("  nvram set: %s\n", key)
	}
	for _, key := range doc.NVRAMDelete[document.AppleNVRAMNamespace] {
		fmt.Printf("  nvram delete: %s\n", key)
	}
	for name, enabled := range doc.KernelQuirks {
		fmt.Printf("  quirk %s = %v\n", name, enabled)
	}
}
