package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cadenza/cmd"
	"cadenza/services"
	"cadenza/types"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

func main() {
	asciiArt := `
  ____          _
 / ___|__ _  __| | ___ _ __  ______ _
| |   / _` + "`" + ` |/ _` + "`" + ` |/ _ \ '_ \|_  / _` + "`" + ` |
| |__| (_| | (_| |  __/ | | |/ / (_| |
 \____\__,_|\__,_|\___|_| |_/___\__,_|
`

	var (
		inputs  string
		bitrate int
		output  string
		server  bool
		port    int
	)

	flag.StringVar(&inputs, "input", "", "Comma-separated FLAC files or folders to convert")
	flag.IntVar(&bitrate, "bitrate", int(types.DefaultBitrate), "MP3 bitrate in kbps (128, 192, 256, 320)")
	flag.StringVar(&output, "output", "", "Output directory (default: alongside each source file)")
	flag.BoolVar(&server, "server", false, "Start in web server mode")
	flag.IntVar(&port, "port", 8080, "Port for web server mode")
	flag.Parse()

	// Server mode takes precedence
	if server {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logger.Sync()

		cmd.StartWebServer(port, logger)
		return
	}

	if inputs == "" {
		flag.Usage()
		os.Exit(2)
	}

	fmt.Print(asciiArt)
	runBatch(strings.Split(inputs, ","), bitrate, output)
}

// runBatch converts the given inputs sequentially with a terminal
// progress bar, then prints the success/failure tally.
func runBatch(inputs []string, bitrateKbps int, outputDir string) {
	rate, err := types.ParseBitrate(bitrateKbps)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}

	// Keep the terminal clean for the progress bar; failures are
	// reported per file below.
	logger := zap.NewNop()

	converter, err := services.NewConverter(logger)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}

	files, err := services.NewFileService(logger).CollectFlacFiles(inputs)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	var failures []types.ConversionResult
	_, summary, err := converter.ConvertBatch(context.Background(), files, rate, outputDir,
		func(index, total int, result types.ConversionResult) {
			bar.Describe(filepath.Base(result.InputPath))
			bar.Add(1)
			if !result.Succeeded() {
				failures = append(failures, result)
			}
		})
	if err != nil {
		log.Fatalf("Error: %s", err)
	}

	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "failed: %s: %s\n", f.InputPath, f.Error)
	}

	fmt.Printf("Done: %d succeeded, %d failed (of %d)\n", summary.Succeeded, summary.Failed, summary.Total)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
