// Command toxiclf trains the toxicity classifier on a CSV table,
// cross-validates it and reports accuracy.
//
// Usage:
//
//	toxiclf -config toxiclf.yaml
//	toxiclf -data train.csv -log-level debug -plot loss.png
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/YuminosukeSato/toxiclf/core/model"
	"github.com/YuminosukeSato/toxiclf/pkg/dataset"
	"github.com/YuminosukeSato/toxiclf/pkg/errors"
	"github.com/YuminosukeSato/toxiclf/pkg/log"
	"github.com/YuminosukeSato/toxiclf/pkg/report"
	"github.com/YuminosukeSato/toxiclf/sklearn/linear_model"
	"github.com/YuminosukeSato/toxiclf/sklearn/model_selection"
	"github.com/YuminosukeSato/toxiclf/toxicity"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "toxiclf: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("toxiclf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	dataPath := fs.String("data", "", "training CSV (overrides config)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides config)")
	plotPath := fs.String("plot", "", "write the loss curve to this image file (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAppConfig(*configPath)
	if err != nil {
		return err
	}
	if *dataPath != "" {
		cfg.Data = *dataPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *plotPath != "" {
		cfg.Plot = *plotPath
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := log.GetLogger().With(log.ComponentKey, "cli")

	ds, err := dataset.LoadCSV(cfg.Data, cfg.LabelColumn)
	if err != nil {
		return err
	}
	nSamples, nFeatures := ds.Dims()
	logger.Info("Dataset loaded",
		"path", cfg.Data,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
	)

	if cfg.Folds > 0 {
		factory := func() (model.ProbabilisticClassifier, error) {
			return toxicity.New(cfg.Model)
		}
		splitter := model_selection.NewStratifiedKFold(cfg.Folds, true, cfg.Seed)
		res, err := model_selection.CrossValScore(ctx, factory, ds.X, ds.Y, splitter, cfg.NJobs)
		if err != nil {
			return errors.Wrap(err, "cross-validation")
		}
		if err := report.WriteCVSummary(stdout, res); err != nil {
			return err
		}
	}

	clf, err := toxicity.New(cfg.Model)
	if err != nil {
		return err
	}
	if err := clf.Fit(ds.X, ds.Y); err != nil {
		return errors.Wrap(err, "fit")
	}
	score, err := clf.Score(ds.X, ds.Y)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "train accuracy=%.4f\n", score)

	if cfg.Plot != "" {
		lr, ok := clf.Estimator().(*linear_model.LogisticRegression)
		if !ok {
			return errors.Newf("estimator %T has no loss curve", clf.Estimator())
		}
		if err := report.SaveLossCurve(lr.LossCurve(), cfg.Plot); err != nil {
			return err
		}
		logger.Info("Loss curve saved", "path", cfg.Plot)
	}
	return nil
}

// setupLogging installs the process-wide logger. With a log file set,
// records go to a size-rotated file instead of stderr.
func setupLogging(cfg logConfig, stderr io.Writer) (func(), error) {
	if cfg.File == "" {
		return func() {}, log.SetupLogger(cfg.Level, stderr)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	if err := log.SetupLogger(cfg.Level, rotator); err != nil {
		return nil, err
	}
	return func() { _ = rotator.Close() }, nil
}
