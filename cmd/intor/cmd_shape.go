package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/intor/internal/assemble"
	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/parallel"
	"github.com/born-ml/intor/internal/tensor"
)

// callFlags are the flags shared by shape and assemble.
type callFlags struct {
	basisPath  string
	slices     string
	convention string
}

func (f *callFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.basisPath, "basis", "b", "", "Basis tables in YAML (required)")
	cmd.Flags().StringVarP(&f.slices, "slices", "s", "", `Shell ranges per axis, e.g. "0:3,1:4" (default: whole basis)`)
	cmd.Flags().StringVarP(&f.convention, "convention", "c", "s1", "Output layout: s1 or s2ij")
	_ = cmd.MarkFlagRequired("basis")
}

// call is one resolved request.
type call struct {
	engine     *assemble.Engine
	desc       *kernel.Descriptor
	slices     []basis.Slice
	convention assemble.Convention
}

func (f *callFlags) resolve(kind string) (*call, error) {
	d, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	c, err := basis.LoadFile(f.basisPath)
	if err != nil {
		return nil, err
	}
	slices, err := basis.ParseSlices(f.slices)
	if err != nil {
		return nil, err
	}
	conv, err := assemble.ParseConvention(f.convention)
	if err != nil {
		return nil, err
	}
	e := assemble.New(c,
		assemble.WithParallel(parallel.ConfigFromEnv()),
		assemble.WithLogger(logger),
	)
	return &call{engine: e, desc: d, slices: slices, convention: conv}, nil
}

func newShapeCmd() *cobra.Command {
	var flags callFlags
	cmd := &cobra.Command{
		Use:   "shape KIND",
		Short: "Print the output shape of an integral tensor",
		Example: `  intor shape int1e_ovlp --basis h2o.yaml
  intor shape int3c2e --basis h2o.yaml --slices 0:5,0:5,5:9 --convention s2ij`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.resolve(args[0])
			if err != nil {
				return err
			}
			var shape tensor.Shape
			if c.convention == assemble.S2ij {
				shape, err = c.engine.TriangularShape(c.desc, c.slices)
			} else {
				shape, err = c.engine.Shape(c.desc, c.slices)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shape)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
