// Command pipelinedefctl validates one or more pipeline documents offline
// and prints their declared input/output schema. It never serves traffic:
// it exists to let a pipeline author catch a bad topology before handing
// it to a running instance of the subsystem.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gookit/color"
	"github.com/mitchellh/go-wordwrap"

	"github.com/specialistvlad/pipelinedef/internal/config/modelcatalog"
	pipelineconfig "github.com/specialistvlad/pipelinedef/internal/config/pipeline"
	"github.com/specialistvlad/pipelinedef/internal/ctxlog"
	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/modelmanager/httpclient"
	"github.com/specialistvlad/pipelinedef/internal/pipelinedef"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
)

// ExitError carries the process exit code alongside the message main
// prints to stderr before exiting.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const wrapWidth uint = 100

func run(outW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("pipelinedefctl", flag.ContinueOnError)
	flagSet.SetOutput(outW)
	flagSet.Usage = func() {
		fmt.Fprint(outW, `
pipelinedefctl - Offline validator for pipeline definition documents.

Usage:
  pipelinedefctl [options] PIPELINE_PATH

Arguments:
  PIPELINE_PATH
    Path to a single .hcl file or a directory of pipeline documents.

Options:
`)
		flagSet.PrintDefaults()
	}

	catalogFlag := flagSet.String("catalog", "", "Path to a static model catalog .hcl file for offline validation.")
	managerURLFlag := flagSet.String("manager-url", "", "Base URL of a live Model Manager to validate against instead of -catalog.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level: debug, info, warn, or error.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}

	path := flagSet.Arg(0)
	if path == "" {
		flagSet.Usage()
		return nil
	}

	if *catalogFlag == "" && *managerURLFlag == "" {
		return &ExitError{Code: 2, Message: "one of -catalog or -manager-url is required"}
	}

	logger := newLogger(*logLevelFlag, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	manager, closeManager, err := buildManager(*catalogFlag, *managerURLFlag)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if closeManager != nil {
		defer closeManager()
	}

	docs, err := pipelineconfig.Load(ctx, path)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if len(docs) == 0 {
		return &ExitError{Code: 2, Message: fmt.Sprintf("no pipeline documents found under %s", path)}
	}

	allPassed := true
	for _, doc := range docs {
		if !reportDocument(ctx, outW, manager, doc) {
			allPassed = false
		}
	}
	if !allPassed {
		return &ExitError{Code: 1, Message: "one or more pipeline documents failed validation"}
	}
	return nil
}

func buildManager(catalogPath, managerURL string) (modelmanager.Manager, func(), error) {
	if catalogPath != "" {
		mgr, err := modelcatalog.Load(catalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading model catalog: %w", err)
		}
		return mgr, nil, nil
	}
	client := httpclient.New(managerURL)
	return client, func() { client.Close() }, nil
}

func reportDocument(ctx context.Context, outW io.Writer, manager modelmanager.Manager, doc pipelineconfig.Document) bool {
	def := pipelinedef.New(doc.Name, manager)
	st := def.Reload(ctx, doc.NodeInfos, doc.Connections)

	if !st.Ok() {
		fmt.Fprintf(outW, "%s %s: %s\n", color.FgRed.Render("FAIL"), doc.Name,
			wordwrap.WrapString(st.Error(), wrapWidth))
		return false
	}

	fmt.Fprintf(outW, "%s %s\n", color.FgGreen.Render("PASS"), doc.Name)

	inputs, st := def.GetInputsInfo(ctx, 0)
	if st.Ok() {
		for name, info := range inputs {
			fmt.Fprintf(outW, "  input  %-20s %s %s\n", name, info.Precision, shapeOrUnspecified(info.Shape))
		}
	}
	outputs, st := def.GetOutputsInfo(ctx, 0)
	if st.Ok() {
		for name, info := range outputs {
			fmt.Fprintf(outW, "  output %-20s %s %s\n", name, info.Precision, shapeOrUnspecified(info.Shape))
		}
	}
	return true
}

func shapeOrUnspecified(shape []int64) string {
	if shape == nil {
		return "(unspecified)"
	}
	return pipelinemodel.ShapeString(shape)
}

func newLogger(levelStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level}))
}
