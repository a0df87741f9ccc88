// Package analysis provides learning-curve diagnostics for training runs.
//
// The package includes tools for characterizing a run from its per-epoch
// history:
//
//   - [MovingAverage]: smoothed view of a noisy loss curve
//   - [BestEpoch]: epoch with the lowest validation loss
//   - [ConvergenceEpoch]: first epoch where improvement stalls
//   - [OverfitGap]: final validation-minus-training loss gap
//
// # Overfitting Detection
//
// A growing gap between validation and training loss indicates memorization:
//
//	gap := analysis.OverfitGap(trainLoss, valLoss)
//	if gap > 0.5 {
//	    // Network is overfitting
//	}
package analysis
