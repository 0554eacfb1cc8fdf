package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"
)

const (
	LogFile        = "boostfindings.log"
	LogLevelEnvVar = "BOOST_LOG_LEVEL"
)

var Version string

func setupLogging(toFile bool) {
	if toFile {
		logFile, err := os.OpenFile(LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Println("Failed to open log file:", err)
		} else {
			log.SetOutput(logFile)
		}
	}

	log.SetLevel(log.InfoLevel)
	if value, ok := os.LookupEnv(LogLevelEnvVar); ok {
		setLogLevel(value)
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func setLogLevel(value string) {
	level, err := log.ParseLevel(value)
	if err != nil {
		log.Warnf("Ignoring invalid log level %q", value)
		return
	}
	log.SetLevel(level)
}

func main() {
	if _, exists := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME"); exists {
		// CloudWatch collects stdout, so no log file in Lambda.
		setupLogging(false)
		log.Println("Starting in Lambda mode")
		lambda.Start(Handler)
	} else {
		setupLogging(true)
		log.Println("Starting in CLI mode")
		cli := &Cli{}
		if err := cli.Execute(); err != nil {
			log.Fatalf("Error executing command: %v", err)
		}
	}
}
