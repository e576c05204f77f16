// Package logger is a standardized event logging framework for the
// interpreter. Every executed line produces one JSON object on its own line
// so the log can be tailed, grepped, and summarized with Report.
package logger
