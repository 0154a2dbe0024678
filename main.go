package main

import (
	"log"
	"os"
	"strings"

	"collectcode/cmd"
	"collectcode/pkg/logging"
	"collectcode/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := logging.Setup(false, "collect-code", version.Version); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := logging.Logger

	if err := cmd.Execute(logger); err != nil {
		logger.Fatal("collect-code execution failed", zap.Error(err))
	}

	// Syncing a console stderr fails with EINVAL on some platforms.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
