package gpuowl

import (
	"github.com/olympichek/gpuowl/builder"
	"github.com/olympichek/gpuowl/proofset"
	"github.com/olympichek/gpuowl/verifier"
	"github.com/sirupsen/logrus"
)

// Logger is the package-level logging sink used by the proof core. Callers
// embedding this module in a larger worker may replace it (and re-run init's
// propagation by calling SetLogger) to route proof-core log lines through
// their own logrus instance.
var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
	SetLogger(Logger)
}

// SetLogger overrides the logger used by every proof-core subpackage.
func SetLogger(l *logrus.Logger) {
	Logger = l
	proofset.Logger = l
	builder.Logger = l
	verifier.Logger = l
}
