package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/baajur/yarnn/internal/backend/native"
	"github.com/baajur/yarnn/internal/tensor"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run matmul, softmax and axpy on small fixtures and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if catchErr := tensor.Catch(func() { err = runDemo(cmd.OutOrStdout()) }); catchErr != nil {
				return catchErr
			}
			return err
		},
	}
}

func runDemo(w io.Writer) error {
	backend := native.New()

	a := tensor.New[float32](2, 3)
	b := tensor.New[float32](3, 4)
	c := tensor.New[float32](2, 4)
	backend.LoadTensorU8(a, []uint8{1, 2, 3, 4, 5, 6})
	backend.LoadTensorU8(b, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	backend.MatMul(c, a, b)
	if err := printSection(w, "matmul", c); err != nil {
		return err
	}

	x := tensor.New[float32](3, 3)
	y := tensor.New[float32](3, 3)
	backend.LoadTensorU8(x, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9})
	backend.Softmax(y, x)
	if err := printSection(w, "softmax", y); err != nil {
		return err
	}

	p := tensor.New[float32](2, 2)
	q := tensor.New[float32](2, 2)
	backend.LoadTensorU8(p, []uint8{1, 2, 3, 4})
	backend.LoadTensorU8(q, []uint8{1, 2, 3, 4})
	backend.Axpy(p, 2, q)
	return printSection(w, "axpy", p)
}

func printSection(w io.Writer, title string, t *tensor.Tensor[float32]) error {
	if _, err := fmt.Fprintf(w, "# %s\n", title); err != nil {
		return fmt.Errorf("write %s: %w", title, err)
	}
	if err := tensor.Fprint(w, t); err != nil {
		return fmt.Errorf("write %s: %w", title, err)
	}
	return nil
}
