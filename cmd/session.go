package cmd

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/papapumpkin/wellplan/internal/config"
	"github.com/papapumpkin/wellplan/internal/server"
	"github.com/papapumpkin/wellplan/internal/session"
	"github.com/papapumpkin/wellplan/internal/telemetry"
)

// openSession builds a session from cfg and loads datasets when a dataset
// directory is configured. The returned cleanup closes the session and the
// telemetry file.
func openSession(cfg config.Config, logger io.Writer) (*session.Session, func(), error) {
	var emitter *telemetry.Emitter
	if cfg.TelemetryPath != "" {
		var err error
		emitter, err = telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			return nil, nil, err
		}
	}
	sess, err := session.New(session.Options{
		Wells:     cfg.Wells,
		WellNames: cfg.WellNames,
		Logger:    logger,
		Recorder:  telemetry.NewRecorder(emitter, logger),
	})
	if err != nil {
		_ = emitter.Close()
		return nil, nil, err
	}
	cleanup := func() {
		sess.Close()
		_ = emitter.Close()
	}
	if cfg.DatasetDir != "" {
		if err := sess.ReloadDatasets(cfg.DatasetDir); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("loading datasets: %w", err)
		}
	}
	return sess, cleanup, nil
}

// verboseWriter returns stderr when verbose is set and io.Discard otherwise.
func verboseWriter(verbose bool) io.Writer {
	if verbose {
		return os.Stderr
	}
	return io.Discard
}

// newLogger returns a console logger at debug level when verbose is set,
// and a JSON production logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	var zc zap.Config
	if verbose {
		zc = zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.OutputPaths = []string{"stdout"}
		zc.ErrorOutputPaths = []string{"stderr"}
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service_name", server.ServiceName)), nil
}
