// Package nn provides core primitives for supervised training of small
// feedforward networks.
//
// The package defines the fundamental interfaces and types for the standard
// training loop (forward pass, loss, backpropagation, optimizer step):
//
//   - [Vector]: flat float64 vector used for activations and parameters
//   - [Layer]: differentiable network layer
//   - [Loss]: scalar loss with gradient
//   - [Optimizer]: parameter update rule
//   - [Schedule]: per-epoch learning rate
//   - [Trainer]: orchestrates epoch loops over minibatches
//
// # Example
//
//	net := nn.NewNetwork(layers.NewDense(4, 8, 1), layers.NewReLU(), layers.NewDense(8, 3, 2), layers.NewSoftmax())
//	tr := nn.NewTrainer(net, loss.NewCrossEntropy(), optim.NewSGD(), schedule.NewConstant(0.1))
//	result, _ := tr.Run(ctx, train, val, cfg)
//
// # Thread Safety
//
// Trainer instances are NOT thread-safe. For multi-seed replicas, use the
// [Ensemble] type which safely manages independent training runs.
package nn
