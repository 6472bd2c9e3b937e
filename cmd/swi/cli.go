package main

import (
	"context"
	"io"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB
	Sets   swi.WrapperSetService

	// NewInducer returns a fresh inducer. A non-nil table is loaded as the
	// current selection. Inducers are not shared between goroutines.
	NewInducer func(table swi.WrapperTable) swi.Inducer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose      bool `short:"v" help:"Log training and storage operations to stderr"`
	PageMetadata bool `help:"Add page-level metadata (title, author, date) to the metadata tree"`

	Train   TrainCmd   `cmd:"" help:"Train a wrapper set from a manifest of labeled pages"`
	Predict PredictCmd `cmd:"" help:"Extract values from pages with a trained wrapper set"`
	List    ListCmd    `cmd:"" help:"List all wrapper sets"`
	Show    ShowCmd    `cmd:"" help:"Show the wrappers of a set"`
	Export  ExportCmd  `cmd:"" help:"Write a wrapper set to a JSON or XML file"`
	Import  ImportCmd  `cmd:"" help:"Save wrappers from a JSON or XML file as a set"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a wrapper set"`
}

// TrainCmd is the "train" subcommand.
type TrainCmd struct {
	Name     string `arg:"" help:"Wrapper set name"`
	Manifest string `arg:"" type:"existingfile" help:"YAML manifest listing pages and their labels"`
	Out      string `short:"o" help:"Also write the wrappers to this file (.json or .xml)"`
}

// PredictCmd is the "predict" subcommand.
type PredictCmd struct {
	Pages       []string `arg:"" name:"page" help:"HTML pages to extract from"`
	Set         string   `short:"s" help:"Wrapper set name"`
	Wrappers    string   `short:"w" type:"existingfile" help:"Read wrappers from a file instead of the database"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
	Strict      bool     `help:"Fail when a label resolves no value on some page"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name   string `arg:"" help:"Wrapper set name"`
	Format string `short:"f" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name string `arg:"" help:"Wrapper set name"`
	Path string `arg:"" help:"Destination file (.json or .xml)"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name string `arg:"" help:"Wrapper set name"`
	Path string `arg:"" type:"existingfile" help:"Source file (.json or .xml)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Wrapper set name"`
	Force bool   `help:"Confirm deletion"`
}
