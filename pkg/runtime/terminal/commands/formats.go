package commands

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/de-tools/site-report/pkg/services/export"
)

func NewFormatsCmd(registry *export.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the registered export formats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats := registry.Formats()
			names := make([]string, 0, len(formats))
			for _, f := range formats {
				names = append(names, string(f))
			}
			sort.Strings(names)
			for _, name := range names {
				cmd.Println(name)
			}
			return nil
		},
	}
}
