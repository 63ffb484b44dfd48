// Package train runs the example regression problem end to end: it builds a
// network on a tape, then repeats forward, backward and update for a fixed
// number of epochs while reporting the loss.
package train

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/pkg/errors"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/nn"
	"github.com/born-ml/grad/internal/optim"
	"github.com/born-ml/grad/internal/serialization"
	"github.com/born-ml/grad/internal/tensor"
)

// Result holds the outcome of a training run.
type Result struct {
	Losses      []float32                // Loss of every epoch, computed before that epoch's update
	Parameters  int                      // Number of trainable numbers in the model
	Predictions []float32                // Model output for each input after training
	State       map[string]tensor.Tensor // Trained parameters by name
}

// FinalLoss returns the loss of the last epoch.
func (r Result) FinalLoss() float32 {
	if len(r.Losses) == 0 {
		return 0
	}
	return r.Losses[len(r.Losses)-1]
}

// Run trains a freshly initialized network as described by cfg, writing one
// "Epoch: i/n - Loss l" line per reported epoch to w.
func Run(cfg Config, w io.Writer) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, errors.Wrap(err, "invalid config")
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	switch cfg.Mode {
	case ModeTensor:
		return runTensor(cfg, rng, w)
	default:
		return runScalar(cfg, rng, w)
	}
}

// step is one epoch of a training loop: forward, backward and update. It
// returns the epoch's loss.
type step func() float32

// loop runs epochs and reports progress, releasing each epoch's graph by
// truncating the tape back to mark.
func loop(cfg Config, w io.Writer, truncate func(), run step) ([]float32, error) {
	losses := make([]float32, 0, cfg.Epochs)
	for epoch := range cfg.Epochs {
		loss := run()
		truncate()

		if math.IsNaN(float64(loss)) || math.IsInf(float64(loss), 0) {
			return losses, errors.Errorf("epoch %d: loss diverged to %v", epoch, loss)
		}
		losses = append(losses, loss)

		if epoch%cfg.LogEvery == 0 || epoch == cfg.Epochs-1 {
			if _, err := fmt.Fprintf(w, "Epoch: %d/%d - Loss %v\n", epoch, cfg.Epochs-1, loss); err != nil {
				return losses, errors.Wrap(err, "write report")
			}
		}
	}
	return losses, nil
}

func runScalar(cfg Config, rng *rand.Rand, w io.Writer) (Result, error) {
	tape := autodiff.NewTape[tensor.Scalar]()
	model := nn.NewMLP(tape, cfg.Features(), cfg.Layers, rng)

	xs := make([][]autodiff.Scalar, len(cfg.Inputs))
	for i, row := range cfg.Inputs {
		xs[i] = make([]autodiff.Scalar, len(row))
		for j, v := range row {
			xs[i][j] = tape.Leaf(tensor.Scalar(v))
		}
	}
	ys := make([]autodiff.Scalar, len(cfg.Targets))
	for i, v := range cfg.Targets {
		ys[i] = tape.Leaf(tensor.Scalar(v))
	}

	params := model.Parameters()
	optimizer := newOptimizer(cfg, params)

	forward := func() []autodiff.Scalar {
		preds := make([]autodiff.Scalar, len(xs))
		for i, x := range xs {
			preds[i] = model.Forward(x)[0]
		}
		return preds
	}

	mark := tape.Mark()
	losses, err := loop(cfg, w, func() { tape.Truncate(mark) }, func() float32 {
		loss := nn.SquaredErrorLoss(ys, forward())
		optimizer.ZeroGrad()
		loss.Backward()
		optimizer.Step()
		return float32(loss.Data())
	})
	result := Result{Losses: losses, Parameters: len(params)}
	if err != nil {
		return result, err
	}

	for _, p := range forward() {
		result.Predictions = append(result.Predictions, float32(p.Data()))
	}
	tape.Truncate(mark)

	result.State = model.StateDict()
	return result, save(cfg, result)
}

func runTensor(cfg Config, rng *rand.Rand, w io.Writer) (Result, error) {
	tape := autodiff.NewTape[tensor.Tensor]()

	model := nn.NewSequential[tensor.Tensor]()
	in := cfg.Features()
	for i, out := range cfg.Layers {
		model.Add(nn.NewLinear(tape, in, out, rng))
		if i < len(cfg.Layers)-1 {
			model.Add(nn.NewReLU[tensor.Tensor]())
		}
		in = out
	}

	flat := make([]float32, 0, len(cfg.Inputs)*cfg.Features())
	for _, row := range cfg.Inputs {
		flat = append(flat, row...)
	}
	inputs, err := tensor.FromSlice(flat, tensor.Shape{len(cfg.Inputs), cfg.Features()})
	if err != nil {
		return Result{}, errors.Wrap(err, "build inputs")
	}
	targets, err := tensor.FromSlice(cfg.Targets, tensor.Shape{len(cfg.Targets), 1})
	if err != nil {
		return Result{}, errors.Wrap(err, "build targets")
	}
	x := tape.Leaf(inputs)
	y := tape.Leaf(targets)

	params := model.Parameters()
	optimizer := newOptimizer(cfg, params)

	mark := tape.Mark()
	losses, err := loop(cfg, w, func() { tape.Truncate(mark) }, func() float32 {
		// Seeding Backward with ones differentiates the sum over samples.
		loss := autodiff.SquaredError(y, model.Forward(x))
		optimizer.ZeroGrad()
		loss.Backward()
		optimizer.Step()
		return sum(loss.Data())
	})

	var count int
	for _, p := range params {
		count += p.Shape().NumElements()
	}
	result := Result{Losses: losses, Parameters: count}
	if err != nil {
		return result, err
	}

	result.Predictions = append(result.Predictions, model.Forward(x).Data().Data()...)
	tape.Truncate(mark)

	result.State = model.StateDict()
	return result, save(cfg, result)
}

// save writes the trained parameters when cfg.Save is set.
func save(cfg Config, result Result) error {
	if cfg.Save == "" {
		return nil
	}
	metadata := map[string]string{
		"mode":       cfg.Mode,
		"layers":     fmt.Sprint(cfg.Layers),
		"epochs":     strconv.Itoa(cfg.Epochs),
		"final_loss": strconv.FormatFloat(float64(result.FinalLoss()), 'g', -1, 32),
	}
	return errors.Wrap(serialization.WriteSafeTensors(cfg.Save, result.State, metadata), "save parameters")
}

func newOptimizer[D tensor.Payload[D]](cfg Config, params []autodiff.Value[D]) optim.Optimizer {
	if cfg.Optimizer == OptimizerAdam {
		return optim.NewAdam(params, optim.AdamConfig{LR: cfg.LR})
	}
	return optim.NewSGD(params, optim.SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum})
}

func sum(t tensor.Tensor) float32 {
	var s float32
	for _, v := range t.Data() {
		s += v
	}
	return s
}
