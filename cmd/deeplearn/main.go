package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/aitechroberts/deep-learning/internal/analysis"
	"github.com/aitechroberts/deep-learning/internal/config"
	"github.com/aitechroberts/deep-learning/internal/dataset"
	"github.com/aitechroberts/deep-learning/internal/experiment"
	"github.com/aitechroberts/deep-learning/internal/fid"
	"github.com/aitechroberts/deep-learning/internal/nn"
	"github.com/aitechroberts/deep-learning/internal/optim"
	"github.com/aitechroberts/deep-learning/internal/schedule"
	"github.com/aitechroberts/deep-learning/internal/storage"
	"github.com/aitechroberts/deep-learning/internal/viz"
)

var (
	dataDir     string
	datasetName string
	epochs      int
	batchSize   int
	lr          float64
	optimizer   string
	scheduleStr string
	lossName    string
	valSplit    float64
	seed        int64
	replicas    int
	// Config file
	configFile string
	// Preset name
	preset string
	// Frame rate for live view
	frameRate int
	// JSON output for fid
	jsonOut bool
)

// main is the entry point for the deeplearn CLI; it registers commands and
// flags and executes the root command. It exits with status 1 if command
// execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "deeplearn",
		Short: "supervised training lab for small feedforward networks",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".deeplearn", "data directory")

	trainCmd := &cobra.Command{
		Use:   "train [arch]",
		Short: "train a network",
		Args:  cobra.ExactArgs(1),
		RunE:  runTraining,
	}
	trainCmd.Flags().StringVar(&datasetName, "dataset", "blobs", "dataset")
	trainCmd.Flags().IntVar(&epochs, "epochs", 10, "epochs")
	trainCmd.Flags().IntVar(&batchSize, "batch", 32, "minibatch size")
	trainCmd.Flags().Float64Var(&lr, "lr", 0.1, "learning rate")
	trainCmd.Flags().StringVar(&optimizer, "optimizer", "sgd", "optimizer")
	trainCmd.Flags().StringVar(&scheduleStr, "schedule", "constant", "learning rate schedule")
	trainCmd.Flags().StringVar(&lossName, "loss", "cross_entropy", "loss function")
	trainCmd.Flags().Float64Var(&valSplit, "val-split", 0.2, "validation fraction")
	trainCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	trainCmd.Flags().IntVar(&replicas, "replicas", 1, "seed-varied replicas (ensemble)")
	trainCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	trainCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run curves",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "learning curve analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	evalCmd := &cobra.Command{
		Use:   "eval [run_id]",
		Short: "evaluate saved weights",
		Args:  cobra.ExactArgs(1),
		RunE:  evalRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [arch]",
		Short: "benchmark training throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchArch,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [arch] [optimizer1] [optimizer2] ...",
		Short: "compare optimizers on the same architecture",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareOptimizers,
	}
	compareCmd.Flags().IntVar(&epochs, "epochs", 10, "epochs")
	compareCmd.Flags().IntVar(&batchSize, "batch", 32, "minibatch size")
	compareCmd.Flags().Float64Var(&lr, "lr", 0.1, "learning rate")
	compareCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	searchCmd := &cobra.Command{
		Use:   "search [arch]",
		Short: "grid search over learning rate and batch size",
		Args:  cobra.ExactArgs(1),
		RunE:  searchHyperparams,
	}
	searchCmd.Flags().IntVar(&epochs, "epochs", 10, "epochs per trial")
	searchCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	liveCmd := &cobra.Command{
		Use:   "live [arch]",
		Short: "train with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&datasetName, "dataset", "blobs", "dataset")
	liveCmd.Flags().IntVar(&epochs, "epochs", 50, "epochs")
	liveCmd.Flags().IntVar(&batchSize, "batch", 32, "minibatch size")
	liveCmd.Flags().Float64Var(&lr, "lr", 0.1, "learning rate")
	liveCmd.Flags().StringVar(&optimizer, "optimizer", "sgd", "optimizer")
	liveCmd.Flags().StringVar(&scheduleStr, "schedule", "constant", "learning rate schedule")
	liveCmd.Flags().StringVar(&lossName, "loss", "cross_entropy", "loss function")
	liveCmd.Flags().Float64Var(&valSplit, "val-split", 0.2, "validation fraction")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets [arch]",
		Short: "list available presets for an architecture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for architecture: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	fidCmd := &cobra.Command{
		Use:   "fid",
		Short: "compare the built-in fake sets against the reference by FID",
		RunE:  runFID,
	}
	fidCmd.Flags().BoolVar(&jsonOut, "json", false, "machine-readable output")

	rootCmd.AddCommand(trainCmd, listCmd, plotCmd, analyzeCmd, evalCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, benchCmd, compareCmd, searchCmd, liveCmd,
		presetsCmd, fidCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig applies preset < config file < changed CLI flags, the same
// precedence for every command that trains.
func resolveConfig(cmd *cobra.Command, arch string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Arch = arch

	if preset != "" {
		p := config.GetPreset(arch, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(arch))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Arch = arch
		*cfg = *loaded
	}

	if cmd.Flags().Changed("dataset") {
		cfg.Dataset = datasetName
	}
	if cmd.Flags().Changed("epochs") {
		cfg.Epochs = epochs
	}
	if cmd.Flags().Changed("batch") {
		cfg.BatchSize = batchSize
	}
	if cmd.Flags().Changed("lr") {
		cfg.LR = lr
	}
	if cmd.Flags().Changed("optimizer") {
		cfg.Optimizer = optimizer
	}
	if cmd.Flags().Changed("schedule") {
		cfg.Schedule = scheduleStr
	}
	if cmd.Flags().Changed("loss") {
		cfg.Loss = lossName
	}
	if cmd.Flags().Changed("val-split") {
		cfg.ValSplit = valSplit
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, nil
}

// buildTrainer assembles a trainer and its train/validation split from a
// resolved config.
func buildTrainer(registry *experiment.Registry, cfg *config.Config, trainerSeed int64) (*nn.Trainer, []nn.Sample, []nn.Sample, *dataset.Dataset, error) {
	ds, err := registry.GetDataset(cfg.Dataset, dataDir, trainerSeed)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	ds.Shuffle(trainerSeed)
	trainSet, valSet := ds.Split(1.0 - cfg.ValSplit)

	net, err := registry.GetArch(cfg.Arch, ds.Dim, ds.NumClasses, trainerSeed)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	lossFn, err := registry.GetLoss(cfg.Loss)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	params := cfg.Params()

	opt, err := registry.GetOptimizer(cfg.Optimizer, params)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	sched, err := registry.GetSchedule(cfg.Schedule, params)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	trainer := nn.NewTrainer(net, lossFn, opt, sched)
	return trainer, trainSet.Samples, valSet.Samples, ds, nil
}

func runTraining(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	if replicas > 1 {
		return runEnsemble(registry, cfg)
	}

	trainer, trainSet, valSet, _, err := buildTrainer(registry, cfg, cfg.Seed)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Arch:      cfg.Arch,
		Dataset:   cfg.Dataset,
		Loss:      cfg.Loss,
		Optimizer: cfg.Optimizer,
		Schedule:  cfg.Schedule,
		Epochs:    cfg.Epochs,
		BatchSize: cfg.BatchSize,
		ValSplit:  cfg.ValSplit,
		Seed:      cfg.Seed,
		Params:    cfg.Params(),
	})
	if err := exp.Setup(trainer, trainSet, valSet, registry.DefaultMetrics()); err != nil {
		return err
	}

	fmt.Printf("training %s on %s...\n", cfg.Arch, cfg.Dataset)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, trainErr := range result.Errors {
		fmt.Printf("warning: %v\n", trainErr)
	}

	runID, err := st.Save(storage.RunMetadata{
		Arch:      cfg.Arch,
		Dataset:   cfg.Dataset,
		Seed:      cfg.Seed,
		Epochs:    cfg.Epochs,
		BatchSize: cfg.BatchSize,
		ValSplit:  cfg.ValSplit,
		Optimizer: cfg.Optimizer,
		Schedule:  cfg.Schedule,
		Loss:      cfg.Loss,
	}, result, trainer.Network().Snapshot())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("epochs: %d\n", result.EpochsRun)
	fmt.Printf("parameters: %d\n", trainer.Network().NumParams())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runEnsemble(registry *experiment.Registry, cfg *config.Config) error {
	// Build every replica up front so errors surface here, not inside the
	// ensemble goroutines. All replicas share the first build's split; only
	// the weight initialization varies with the seed.
	trainers := make(map[int64]*nn.Trainer, replicas)
	var trainSet, valSet []nn.Sample
	for i := 0; i < replicas; i++ {
		s := cfg.Seed + int64(i)
		trainer, tset, vset, _, err := buildTrainer(registry, cfg, s)
		if err != nil {
			return err
		}
		trainers[s] = trainer
		if i == 0 {
			trainSet, valSet = tset, vset
		}
	}

	trainerFor := func(s int64) *nn.Trainer {
		return trainers[s]
	}

	runCfg := nn.DefaultConfig()
	runCfg.Epochs = cfg.Epochs
	runCfg.BatchSize = cfg.BatchSize

	fmt.Printf("training %d replicas of %s on %s...\n", replicas, cfg.Arch, cfg.Dataset)
	start := time.Now()

	ens := nn.NewEnsemble(trainerFor, replicas, cfg.Seed)
	results, err := ens.Run(context.Background(), trainSet, valSet, runCfg)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPLICA\tSEED\tTRAIN_LOSS\tVAL_LOSS")

	var losses []float64
	for i, r := range results {
		finalVal := r.Metrics["val_loss"]
		losses = append(losses, finalVal)
		fmt.Fprintf(w, "%d\t%d\t%.6f\t%.6f\n", i, cfg.Seed+int64(i), r.FinalTrainLoss(), finalVal)
	}
	w.Flush()

	mean, std := meanStd(losses)
	fmt.Printf("\nval_loss: %.6f ± %.6f\n", mean, std)
	return nil
}

func meanStd(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(vals))
	return mean, math.Sqrt(variance)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tARCH\tDATASET\tTIME\tEPOCHS\tBATCH\tOPT\tSCHED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Arch,
			run.Dataset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Epochs,
			run.BatchSize,
			run.Optimizer,
			run.Schedule,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	columns, rows, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("arch: %s\n", meta.Arch)
	fmt.Printf("epochs: %d\n\n", len(rows))

	for colIdx, name := range columns {
		data := make([]float64, len(rows))
		for i := range rows {
			if colIdx < len(rows[i]) {
				data[i] = rows[i][colIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs epoch", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

// historyColumn pulls one named column out of a loaded history.
func historyColumn(columns []string, rows [][]float64, name string) []float64 {
	idx := -1
	for i, col := range columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	data := make([]float64, 0, len(rows))
	for _, row := range rows {
		if idx < len(row) {
			data = append(data, row[idx])
		}
	}
	return data
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	columns, rows, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	trainLoss := historyColumn(columns, rows, "train_loss")
	valLoss := historyColumn(columns, rows, "val_loss")
	if len(trainLoss) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("learning curve analysis: %s\n", meta.ID)
	fmt.Printf("arch: %s\n\n", meta.Arch)

	smoothed := analysis.MovingAverage(trainLoss, 5)
	graph := asciigraph.Plot(smoothed,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("train loss (smoothed)"),
	)
	fmt.Println(graph)
	fmt.Println()

	if best := analysis.BestEpoch(valLoss); best >= 0 {
		fmt.Printf("best epoch: %d (val loss %.6f)\n", best, valLoss[best])
	}
	if conv := analysis.ConvergenceEpoch(trainLoss, 0.01); conv >= 0 {
		fmt.Printf("converged at epoch: %d\n", conv)
	} else {
		fmt.Println("still improving at final epoch")
	}
	fmt.Printf("overfit gap: %.6f\n", analysis.OverfitGap(trainLoss, valLoss))

	return nil
}

func evalRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	weights, err := st.LoadWeights(runID)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	// MNIST runs are evaluated on the held-out test split; synthetic runs on
	// the validation part of the regenerated set.
	evalName := meta.Dataset
	if meta.Dataset == "mnist" {
		evalName = "mnist-test"
	}
	ds, err := registry.GetDataset(evalName, dataDir, meta.Seed)
	if err != nil {
		return err
	}

	evalSamples := ds.Samples
	if evalName == meta.Dataset {
		// Reconstruct the run's own held-out split: same seed, same fraction.
		split := meta.ValSplit
		if split <= 0 {
			split = config.DefaultValSplit
		}
		ds.Shuffle(meta.Seed)
		_, valSet := ds.Split(1.0 - split)
		evalSamples = valSet.Samples
	}

	net, err := registry.GetArch(meta.Arch, ds.Dim, ds.NumClasses, meta.Seed)
	if err != nil {
		return err
	}
	if err := net.Restore(weights); err != nil {
		return err
	}

	lossFn, err := registry.GetLoss(meta.Loss)
	if err != nil {
		return err
	}

	trainer := nn.NewTrainer(net, lossFn, optim.NewSGD(), schedule.NewConstant(0))
	for _, m := range registry.DefaultMetrics() {
		trainer.AddMetric(m)
	}

	evalLoss := trainer.Evaluate(evalSamples)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("evaluated on: %s (%d samples)\n", evalName, len(evalSamples))
	fmt.Printf("loss: %.6f\n", evalLoss)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	columns, rows, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"epoch"}, columns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range rows {
		record := []string{strconv.Itoa(i)}
		for _, val := range row {
			record = append(record, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	columns, rows, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, columns, rows)
}

func benchArch(cmd *cobra.Command, args []string) error {
	arch := args[0]

	registry := experiment.NewRegistry()

	cfg := config.DefaultConfig()
	cfg.Arch = arch
	cfg.Seed = 42

	batchSizes := []int{8, 32, 128}

	fmt.Printf("benchmarking %s\n\n", arch)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BATCH\tEPOCHS\tSAMPLES\tTIME\tSAMPLES/SEC")

	for _, bs := range batchSizes {
		trainer, trainSet, valSet, _, err := buildTrainer(registry, cfg, cfg.Seed)
		if err != nil {
			return err
		}

		runCfg := nn.DefaultConfig()
		runCfg.Epochs = 3
		runCfg.BatchSize = bs
		runCfg.Seed = cfg.Seed

		start := time.Now()
		result, err := trainer.Run(context.Background(), trainSet, valSet, runCfg)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		samples := result.EpochsRun * len(trainSet)
		perSec := float64(samples) / elapsed.Seconds()

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", bs, result.EpochsRun, samples, elapsed, perSec)
	}

	return w.Flush()
}

func compareOptimizers(cmd *cobra.Command, args []string) error {
	arch := args[0]
	optimizers := args[1:]

	registry := experiment.NewRegistry()

	fmt.Printf("comparing optimizers for %s (epochs=%d, batch=%d, lr=%.4f)\n\n", arch, epochs, batchSize, lr)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s  %-12s\n", "optimizer", "train_loss", "val_loss", "accuracy", "time_ms")
	fmt.Println(strings.Repeat("-", 68))

	for _, optName := range optimizers {
		cfg := config.DefaultConfig()
		cfg.Arch = arch
		cfg.Optimizer = optName
		cfg.Epochs = epochs
		cfg.BatchSize = batchSize
		cfg.LR = lr
		cfg.Seed = seed

		// Adam wants a much smaller step than plain SGD.
		if optName == "adam" && !cmd.Flags().Changed("lr") {
			cfg.LR = 0.001
		}

		trainer, trainSet, valSet, _, err := buildTrainer(registry, cfg, cfg.Seed)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", optName, err)
			continue
		}
		for _, m := range registry.DefaultMetrics() {
			trainer.AddMetric(m)
		}

		runCfg := nn.DefaultConfig()
		runCfg.Epochs = cfg.Epochs
		runCfg.BatchSize = cfg.BatchSize
		runCfg.Seed = cfg.Seed

		start := time.Now()
		result, err := trainer.Run(context.Background(), trainSet, valSet, runCfg)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", optName, err)
			continue
		}

		fmt.Printf("%-12s  %12.6f  %12.6f  %12.4f  %12.2f\n",
			optName, result.FinalTrainLoss(), result.Metrics["val_loss"],
			result.Metrics["accuracy"], float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func searchHyperparams(cmd *cobra.Command, args []string) error {
	arch := args[0]

	registry := experiment.NewRegistry()

	grid := optim.NewGridSearch(
		[]string{"lr", "batch"},
		[][]float64{
			{0.001, 0.01, 0.1, 0.5},
			{16, 32, 64},
		},
	)

	trials := 0
	run := func(ctx context.Context, params map[string]float64) (*nn.Result, error) {
		cfg := config.DefaultConfig()
		cfg.Arch = arch
		cfg.LR = params["lr"]
		cfg.BatchSize = int(params["batch"])
		cfg.Epochs = epochs
		cfg.Seed = seed

		trainer, trainSet, valSet, _, err := buildTrainer(registry, cfg, cfg.Seed)
		if err != nil {
			return nil, err
		}

		runCfg := nn.DefaultConfig()
		runCfg.Epochs = cfg.Epochs
		runCfg.BatchSize = cfg.BatchSize
		runCfg.Seed = cfg.Seed

		trials++
		return trainer.Run(ctx, trainSet, valSet, runCfg)
	}

	fmt.Printf("grid search for %s (%d epochs per trial)...\n", arch, epochs)
	start := time.Now()

	best, bestVal, err := grid.Search(context.Background(), run, "val_loss")
	if err != nil {
		return err
	}

	fmt.Printf("completed %d trials in %v\n\n", trials, time.Since(start))
	fmt.Printf("best val_loss: %.6f\n", bestVal)
	for name, val := range best {
		fmt.Printf("  %s: %g\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	trainer, trainSet, valSet, _, err := buildTrainer(registry, cfg, cfg.Seed)
	if err != nil {
		return err
	}

	sched, err := registry.GetSchedule(cfg.Schedule, cfg.Params())
	if err != nil {
		return err
	}

	m := viz.NewModel(trainer, sched, trainSet, valSet, cfg.BatchSize, cfg.Epochs, cfg.Seed, cfg.Arch, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runFID(cmd *cobra.Command, args []string) error {
	ref, fakeI, fakeII, err := fid.DemoSummaries()
	if err != nil {
		return err
	}

	fidI, err := fid.Distance(fakeI, ref)
	if err != nil {
		return err
	}
	fidII, err := fid.Distance(fakeII, ref)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"dim":     ref.Dim(),
			"fid_i":   fidI,
			"fid_ii":  fidII,
			"verdict": fid.Verdict(fidI, fidII),
		})
	}

	fmt.Printf("FID against reference summary (dim=%d)\n", ref.Dim())
	fmt.Printf("fake image set I:  %.4f\n", fidI)
	fmt.Printf("fake image set II: %.4f\n", fidII)
	fmt.Println(fid.Verdict(fidI, fidII))
	return nil
}
