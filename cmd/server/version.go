package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sevenstarlining/sevenstar-api/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetBuildInfo()

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(info)
			return
		}
		fmt.Println(info.String())
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Print build information as JSON")
}
