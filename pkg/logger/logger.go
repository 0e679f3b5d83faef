package logger

import (
	"io"
	"log"
	"os"
)

var (
	InfoLog  *log.Logger
	WarnLog  *log.Logger
	ErrorLog *log.Logger
	logFile  *os.File
)

func init() {
	Init()
}

// Init sets up console-only logging, the default until InitLogger
// attaches a file.
func Init() {
	InfoLog = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLog = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// InitLogger initializes the logger with a file output and console output.
func InitLogger(filename string) error {
	var err error
	logFile, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)

	InfoLog = log.New(multiWriter, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLog = log.New(multiWriter, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(multiWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// Close releases the log file, if one was opened. Logging keeps working
// on the console afterwards.
func Close() {
	if logFile == nil {
		return
	}
	logFile.Close()
	logFile = nil
	Init()
}

func Infof(format string, v ...interface{}) {
	InfoLog.Printf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	WarnLog.Printf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	ErrorLog.Printf(format, v...)
}
