package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-mdpdf"
)

// Converter is the part of *mdpdf.Converter the CLI uses.
type Converter interface {
	ConvertFile(ctx context.Context, req mdpdf.Request) (*mdpdf.Result, error)
	Close() error
}

var _ Converter = (*mdpdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and the converter factory.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Getenv       func(string) string
	Environ      func() []string
	NewConverter func(opts ...mdpdf.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewConverter: func(opts ...mdpdf.Option) (Converter, error) {
			return mdpdf.NewConverter(opts...)
		},
	}
}
