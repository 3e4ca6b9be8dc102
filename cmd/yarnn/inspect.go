package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/baajur/yarnn/internal/serialization"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the tensors stored in a SafeTensors file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := serialization.ReadFile[float32](args[0])
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"NAME", "DTYPE", "SHAPE", "BYTES"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			for _, name := range file.Names() {
				e := file.Entries[name]
				table.Append([]string{
					name,
					e.DType,
					file.Tensors[name].Shape().String(),
					strconv.FormatInt(e.DataOffsets[1]-e.DataOffsets[0], 10),
				})
			}
			table.Render()

			if len(file.Metadata) > 0 {
				meta := tablewriter.NewWriter(cmd.OutOrStdout())
				meta.SetHeader([]string{"KEY", "VALUE"})
				meta.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
				meta.SetAlignment(tablewriter.ALIGN_LEFT)
				meta.SetBorder(false)
				for _, k := range sortedKeys(file.Metadata) {
					meta.Append([]string{k, file.Metadata[k]})
				}
				meta.Render()
			}
			return nil
		},
	}
}
