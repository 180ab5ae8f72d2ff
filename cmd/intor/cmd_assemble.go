package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/intor/internal/assemble"
	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/serialization"
	"github.com/born-ml/intor/internal/tensor"
)

func newAssembleCmd() *cobra.Command {
	var (
		flags  callFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "assemble KIND",
		Short: "Assemble an integral tensor and write it as SafeTensors",
		Long: `Evaluates every block of KIND over the requested shell ranges and writes the
assembled tensor to a SafeTensors file. Spinor bases produce complex128 tensors.

The tensor is stored under the kind's name; the file metadata records the kind,
layout, representation and shell ranges.`,
		Example: `  intor assemble int1e_kin --basis h2o.yaml
  intor assemble int2e --basis h2o.yaml --convention s2ij -o eri.safetensors`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.resolve(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = c.desc.Name + ".safetensors"
			}

			start := time.Now()
			entry, shape, err := c.run(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("assembled",
				zap.String("kind", c.desc.Name),
				zap.Stringer("convention", c.convention),
				zap.Ints("shape", shape),
				zap.Duration("elapsed", time.Since(start)),
			)

			meta := map[string]string{
				"kind":           c.desc.Name,
				"convention":     c.convention.String(),
				"representation": c.engine.Catalog().Representation().String(),
				"slices":         flags.slices,
			}
			if err := serialization.SaveFile(output, []serialization.Entry{entry}, meta); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %v -> %s\n", c.desc.Name, shape, output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: KIND.safetensors)")
	return cmd
}

// run assembles with the element type the catalog's representation produces.
func (c *call) run(ctx context.Context) (serialization.Entry, tensor.Shape, error) {
	if c.engine.Catalog().Representation() == basis.Spinor {
		return assembleEntry[complex128](ctx, c)
	}
	return assembleEntry[float64](ctx, c)
}

func assembleEntry[F float64 | complex128](ctx context.Context, c *call) (serialization.Entry, tensor.Shape, error) {
	out, err := assemble.Assemble[F](ctx, c.engine, c.desc, c.convention, c.slices)
	if err != nil {
		return serialization.Entry{}, nil, err
	}
	return serialization.EntryOf(c.desc.Name, out), out.Shape(), nil
}
