package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jbinder6342/OpenCore-Legacy-Patcher/internal/probesim"
	"github.com/jbinder6342/OpenCore-Legacy-Patcher/probe"
)

// SimulateProbeCmd runs the fixture probe service, for developing against
// hardware you don't have.
func SimulateProbeCmd() *cobra.Command {
	var (
		addr    string
		model   string
		chipset string
		wifi    string
	)

	cmd := &cobra.Command{
		Use:    "simulate-probe",
		Short:  "Serve a canned hardware report on the probe helper surface",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := probe.Report{Model: model, BluetoothChipset: chipset}
			if wifi != "" {
				report.Wireless = &probe.WirelessInfo{Chipset: wifi}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, errCh, err := probesim.Start(ctx, probesim.Config{
				ListenAddr: addr,
				Report:     report,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
	cmd.Flags().StringVar(&model, "sim-model", "MacBookPro8,1", "model identifier to report")
	cmd.Flags().StringVar(&chipset, "sim-bluetooth", "BRCM2070 Hub", "bluetooth chipset string to report (empty for none)")
	cmd.Flags().StringVar(&wifi, "sim-wifi", "", "wifi chipset string to report (empty for none)")
	return cmd
}
