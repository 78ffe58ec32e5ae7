// Command tyre-engine reads a Scenario (YAML or JSON) from a file argument or
// stdin, evaluates it, and writes the EvaluationLog JSON to stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cxd309/tyre-engine/internal/config"
	"github.com/cxd309/tyre-engine/internal/engine"
)

var (
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "warn", "log level (trace debug info warn error critical off)")
	format   = flag.String("format", "auto", "input format (auto json yaml)")

	log = logrus.WithField("module", "cli")
)

func main() {
	flag.Parse()
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})
	level, ok := logLevels[*logLevel]
	if !ok {
		fmt.Fprintf(os.Stderr, "log.level must be one of trace debug info warn error critical off, got %q\n", *logLevel)
		os.Exit(1)
	}
	logrus.SetLevel(level)

	f, err := config.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var scenario engine.Scenario
	if flag.NArg() > 0 {
		scenario, err = config.Load(flag.Arg(0), f)
	} else {
		var data []byte
		data, err = io.ReadAll(os.Stdin)
		if err == nil {
			scenario, err = config.Parse(data, f)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}
	log.Debugf("scenario %+v", scenario.Meta)

	result, err := engine.Evaluate(scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluation error: %v\n", err)
		os.Exit(1)
	}

	out, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshaling output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
