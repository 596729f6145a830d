// Package testlog provides a logging.Logger implementation backed by
// testing.T, for use in package tests across this module.
package testlog

import (
	"testing"

	"github.com/ausocean/utils/logging"
)

// T adapts a *testing.T to the logging.Logger interface.
type T testing.T

func New(t *testing.T) *T { return (*T)(t) }

func (tl *T) Debug(msg string, args ...interface{})   { tl.Log(logging.Debug, msg, args...) }
func (tl *T) Info(msg string, args ...interface{})    { tl.Log(logging.Info, msg, args...) }
func (tl *T) Warning(msg string, args ...interface{}) { tl.Log(logging.Warning, msg, args...) }
func (tl *T) Error(msg string, args ...interface{})   { tl.Log(logging.Error, msg, args...) }
func (tl *T) Fatal(msg string, args ...interface{})   { tl.Log(logging.Fatal, msg, args...) }
func (tl *T) SetLevel(lvl int8)                       {}

func (tl *T) Log(lvl int8, msg string, args ...interface{}) {
	var l string
	switch lvl {
	case logging.Warning:
		l = "warning"
	case logging.Debug:
		l = "debug"
	case logging.Info:
		l = "info"
	case logging.Error:
		l = "error"
	case logging.Fatal:
		l = "fatal"
	}
	msg = l + ": " + msg

	if len(args) == 0 {
		(*testing.T)(tl).Log(msg)
		return
	}

	msg += " ("
	for i := 0; i < len(args); i += 2 {
		msg += " %v:\"%v\""
	}
	msg += " )"

	(*testing.T)(tl).Logf(msg, args...)
}
