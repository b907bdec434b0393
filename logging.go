package main

import (
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging points the standard logger at the configured log file with
// rotation. An empty logFile keeps stderr, which is what you want in sim
// mode where termbox owns the terminal anyway.
func setupLogging(s *settings) {
	logFile := s.GetString("logFile")
	if logFile == "" || logFile == "-" {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	})
}
