// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ianlewis/go-cedict/resolve"
)

// newLogger returns a console logger writing to w. Debug messages are
// enabled when verbose is true.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// logReport logs each diagnostic at debug level and a summary per stage at
// info level.
func logReport(log *zap.Logger, r *resolve.Report) {
	for _, d := range r.Diagnostics {
		log.Debug("resolution diagnostic",
			zap.String("stage", string(d.Stage)),
			zap.Stringer("kind", d.Kind),
			zap.Stringer("entry", d.Entry),
			zap.Stringer("ref", d.Ref),
			zap.String("text", d.Text),
		)
	}

	for _, stage := range []resolve.Stage{
		resolve.StageClassifiers,
		resolve.StageVariants,
		resolve.StageReferences,
	} {
		log.Info("stage complete",
			zap.String("stage", string(stage)),
			zap.Int("diagnostics", len(r.ByStage(stage))),
		)
	}
	log.Info("resolution complete",
		zap.Int("classifiers", r.Classifiers),
		zap.Int("variants", r.Variants),
		zap.Int("deleted", r.Deleted),
		zap.Int("rewritten", r.Rewritten),
	)
}
