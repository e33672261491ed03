package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/driver/vulkango"
)

var (
	envFile = flag.String("env", "", "load environment variables from this file first")
	output  = flag.String("o", "", "write the report to this file, lz4 compressed when it ends in .lz4")
	indent  = flag.Bool("indent", false, "indent the JSON report")
	verbose = flag.Bool("v", false, "log loader and lifecycle messages")
)

var defaultConfiguration = core.InstanceConfiguration{
	AppName:       "vkinfo",
	AppVersion:    core.Version{Major: 1},
	EngineName:    "https://github.com/devblok/vkbind",
	EngineVersion: core.Version{Major: 1},
}

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
		core.SetLogger(logrus.StandardLogger())
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vkinfo:", err)
		os.Exit(1)
	}
}

func run() error {
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return fmt.Errorf("loading %s: %w", *envFile, err)
		}
		envy.Reload()
	}
	cfg, err := core.LoadInstanceConfiguration(defaultConfiguration)
	if err != nil {
		return err
	}

	driver, err := vulkango.Open()
	if err != nil {
		return fmt.Errorf("opening the vulkan library: %w", err)
	}
	builder, err := core.NewLoaderBuilder(driver)
	if err != nil {
		return err
	}
	report, err := collect(builder, cfg)
	if err != nil {
		return err
	}

	if *output == "" {
		return writeReport(os.Stdout, report, *indent, false)
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := writeReport(f, report, *indent, isCompressed(*output)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
