package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/baajur/yarnn/internal/backend/native"
	"github.com/baajur/yarnn/internal/envconfig"
	"github.com/baajur/yarnn/internal/nn"
	"github.com/baajur/yarnn/internal/optim"
	"github.com/baajur/yarnn/internal/tensor"
)

var errInvalidOptimizer = errors.New("optimizer must be \"adam\" or \"sgd\"")

type trainOptions struct {
	epochs    uint
	lr        float32
	optimizer string
	hidden    int
	reports   uint
	save      string
	load      string
}

func newTrainCmd() *cobra.Command {
	opts := trainOptions{}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a two-layer network on XOR",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("epochs") {
				opts.epochs = envconfig.Epochs()
			}
			if !cmd.Flags().Changed("lr") {
				opts.lr = envconfig.LearningRate()
			}
			if opts.optimizer != "adam" && opts.optimizer != "sgd" {
				return errInvalidOptimizer
			}
			if opts.hidden <= 0 {
				return fmt.Errorf("hidden size must be positive, got %d", opts.hidden)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if catchErr := tensor.Catch(func() { err = runTrain(cmd.OutOrStdout(), opts) }); catchErr != nil {
				return catchErr
			}
			return err
		},
	}

	cmd.Flags().UintVar(&opts.epochs, "epochs", 2000, "Number of training epochs (default from YARNN_EPOCHS)")
	cmd.Flags().Float32Var(&opts.lr, "lr", 0.01, "Learning rate (default from YARNN_LEARNING_RATE)")
	cmd.Flags().StringVar(&opts.optimizer, "optimizer", "adam", "Optimizer: adam or sgd")
	cmd.Flags().IntVar(&opts.hidden, "hidden", 8, "Hidden layer width")
	cmd.Flags().UintVar(&opts.reports, "reports", 10, "Number of loss reports printed during training")
	cmd.Flags().StringVar(&opts.save, "save", "", "Write trained parameters to this SafeTensors file")
	cmd.Flags().StringVar(&opts.load, "load", "", "Start from parameters in this SafeTensors file")

	return cmd
}

func runTrain(w io.Writer, opts trainOptions) error {
	backend := native.New()

	inputs := tensor.New[float32](4, 2)
	targets := tensor.New[float32](4, 1)
	backend.LoadTensorU8(inputs, []uint8{0, 0, 0, 1, 1, 0, 1, 1})
	backend.LoadTensorU8(targets, []uint8{0, 1, 1, 0})

	model := nn.NewSequential[float32](backend, 2)
	for _, layer := range []nn.Layer[float32]{
		nn.NewLinear[float32](backend, 2, opts.hidden),
		nn.NewSigmoid[float32](backend, opts.hidden),
		nn.NewLinear[float32](backend, opts.hidden, 1),
		nn.NewSigmoid[float32](backend, 1),
	} {
		if err := model.Add(layer); err != nil {
			return err
		}
	}

	if opts.load != "" {
		meta, err := model.Load(opts.load)
		if err != nil {
			return err
		}
		slog.Info("loaded parameters", "path", opts.load, "metadata", meta)
	}

	var opt optim.Optimizer[float32]
	switch opts.optimizer {
	case "sgd":
		opt = optim.NewSGD[float32](backend, optim.SGDConfig[float32]{LR: opts.lr, Momentum: 0.9})
	default:
		opt = optim.NewAdam[float32](backend, optim.AdamConfig[float32]{LR: opts.lr})
	}

	slog.Info("training", "optimizer", opts.optimizer, "epochs", opts.epochs, "lr", opts.lr, "hidden", opts.hidden)

	mse := nn.NewMSELoss[float32](backend)
	every := max(opts.epochs/max(opts.reports, 1), 1)

	progress := tablewriter.NewWriter(w)
	progress.SetHeader([]string{"EPOCH", "LOSS"})
	progress.SetBorder(false)
	for epoch := uint(1); epoch <= opts.epochs; epoch++ {
		loss := model.TrainStep(inputs, targets, mse, opt)
		if epoch%every == 0 || epoch == opts.epochs {
			progress.Append([]string{strconv.FormatUint(uint64(epoch), 10), formatFloat(loss)})
		}
	}
	progress.Render()

	out := model.Forward(inputs)
	predictions := make([]float32, out.Size())
	backend.StoreTensorF32(out, predictions)

	results := tablewriter.NewWriter(w)
	results.SetHeader([]string{"X0", "X1", "TARGET", "PREDICTION"})
	results.SetBorder(false)
	in := inputs.Read()
	for i, p := range predictions {
		results.Append([]string{
			formatFloat(in[2*i]),
			formatFloat(in[2*i+1]),
			formatFloat(targets.Read()[i]),
			formatFloat(p),
		})
	}
	results.Render()

	final := model.Loss(inputs, targets, mse)
	slog.Info("training finished", "loss", final)

	if opts.save != "" {
		meta := map[string]string{
			"optimizer": opts.optimizer,
			"epochs":    strconv.FormatUint(uint64(opts.epochs), 10),
			"hidden":    strconv.Itoa(opts.hidden),
			"loss":      formatFloat(final),
		}
		if err := model.Save(opts.save, meta); err != nil {
			return err
		}
		slog.Info("saved parameters", "path", opts.save)
	}
	return nil
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 4, 32)
}
