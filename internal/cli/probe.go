package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbinder6342/OpenCore-Legacy-Patcher/probe"
)

// ProbeCmd fetches and prints the probe helper's hardware report.
func ProbeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Show the hardware report from the probe helper",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOptions()
			poller := probe.NewReportPoller(opts.ProbeReportURL)
			report, err := poller.PollOnce(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Printf("model:     %s\n", report.Model)
			if report.BoardID != "" {
				fmt.Printf("board-id:  %s\n", report.BoardID)
			}
			if report.BluetoothChipset != "" {
				fmt.Printf("bluetooth: %s\n", report.BluetoothChipset)
			} else {
				fmt.Println("bluetooth: none detected")
			}
			if report.Wireless != nil {
				fmt.Printf("wifi:      %s\n", report.Wireless.Chipset)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw report as JSON")
	return cmd
}
