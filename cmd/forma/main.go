// cmd/forma/main.go
package main

import (
	"fmt"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/forma-editor/forma/internal/app"
	"github.com/forma-editor/forma/internal/config"
	"github.com/forma-editor/forma/internal/logger"
)

const version = "0.1.0"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}
	if filePath == "" {
		stlog.Fatalf("Usage: %s [flags] <document.html>", config.AppName)
	}

	// --- Configuration ---
	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, &flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		cacheDir, err := os.UserCacheDir()
		if err == nil {
			logPath = filepath.Join(cacheDir, config.ConfigDirName, config.DefaultLogFileName)
			_ = os.MkdirAll(filepath.Dir(logPath), 0755)
		} else {
			logPath = config.DefaultLogFileName
		}
	}

	var logFile *os.File
	if logPath == "-" {
		logFile = os.Stderr
	} else {
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", logPath, err)
		}
		defer logFile.Close()
	}

	logger.Init(cfg.Logger.Level(), logFile, &cfg.Logger)
	logger.Infof("Starting %s %s...", config.AppName, version)
	logger.Debugf("Document: %s", filePath)

	// --- Create and Run App ---
	formaApp, err := app.NewApp(filePath, cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		stlog.Fatalf("Error initializing application: %v", err)
	}

	if err := formaApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
