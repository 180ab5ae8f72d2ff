package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/libcint"
)

func newKindsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the integral kinds this binary can assemble",
		Long: `Lists every registered integral kind with its number of centers, component
count and the representations it has kernels for.

With --all, kinds known to libcint but not linked into this binary are listed too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := registry()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tCENTERS\tCOMPONENTS\tAUX\tREPRESENTATIONS")
			listed := make(map[string]bool)
			for _, d := range r.All() {
				listed[d.Name] = true
				fmt.Fprintf(w, "%s\t%d\t%d\t%t\t%s\n", d.Name, d.Centers, d.Components, d.NeedsAux, joinReps(d.Representations()))
			}
			if all {
				for _, k := range libcint.Kinds() {
					if !listed[k.Name] {
						fmt.Fprintf(w, "%s\t%d\t%d\t%t\t%s\n", k.Name, k.Centers, k.Components, k.NeedsAux, "(not linked)")
					}
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Also list kinds without a linked kernel")
	return cmd
}

func joinReps(reps []basis.Representation) string {
	names := make([]string, len(reps))
	for i, rep := range reps {
		names[i] = rep.String()
	}
	return strings.Join(names, ",")
}
