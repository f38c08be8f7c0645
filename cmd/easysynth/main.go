package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cbegin/easysynth-go"
	"github.com/cbegin/easysynth-go/internal/config"
	"github.com/cbegin/easysynth-go/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		hiRate     = flag.Bool("48", false, "render at 48000 Hz instead of 44100")
		outPath    = flag.String("o", "", "output wav path; overrides the script's output command")
		seed       = flag.Int64("seed", 0, "random seed (0 = time based)")
		encode     = flag.Bool("encode", false, "run the configured encoder after writing the wav")
		verbosity  = flag.String("v", "", "log level: error|warn|info|debug|trace or 0-4")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: easysynth [flags] script.e2\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logging.Init("easysynth")
	cfg, err := loadConfig(*configPath, *hiRate)
	if err != nil {
		log.Fatal(err)
	}
	level := cfg.LogLevel
	if *verbosity != "" {
		level = *verbosity
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(lvl)

	opts := []easysynth.Option{
		easysynth.WithSampleRate(cfg.SampleRate),
		easysynth.WithOutputDir(cfg.OutputDir),
		easysynth.WithOutput(*outPath),
	}
	if *seed != 0 {
		opts = append(opts, easysynth.WithSeed(*seed))
	} else {
		opts = append(opts, easysynth.WithSeed(cfg.Seed))
	}
	if *encode || cfg.Encoder.Enabled {
		opts = append(opts, easysynth.WithEncoder(cfg.Encoder.Command, cfg.Encoder.Extension))
	}

	r, err := easysynth.New(opts...)
	if err != nil {
		log.Fatal(err)
	}
	res, err := r.RenderFile(context.Background(), flag.Arg(0))
	if err != nil {
		log.SetFlags(0)
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%.2fs)\n", res.WAVPath, float64(res.Frames)/float64(cfg.SampleRate))
	if res.EncodedPath != "" {
		fmt.Printf("encoded %s\n", res.EncodedPath)
	}
}

func loadConfig(path string, hiRate bool) (config.Config, error) {
	if path == "" {
		if hiRate {
			return config.DefaultFor(48000), nil
		}
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if hiRate && cfg.SampleRate != 48000 {
		cfg.SampleRate = 48000
	}
	return cfg, nil
}
