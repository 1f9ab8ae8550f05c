// Copyright 2025 InterviewAce Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cor (Chain of Responsibility) provides the building blocks for the
// analysis pipeline. A run is expressed as an ordered chain of commands that
// share a context object; each command reads its input from the context,
// does one unit of work, and writes its output back for the next command.
// Errors are collected in the context rather than thrown, which is what lets
// the pipeline degrade to a zero-valued report instead of failing the host
// process.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys used to pipe the primary data flow between
// consecutive commands in a chain.
const (
	// CtxIn is the default key for a command's primary input. The chain
	// populates it with the previous command's output.
	CtxIn = "__IN__"
	// CtxOut is the default key where a command places its primary output.
	CtxOut = "__OUT__"
)

// Context is the shared state object passed through a chain of commands for
// one analysis run. It carries data, collected errors, and the list of
// temporary files that must be removed when the run ends.
type Context interface {
	// SetContext sets the standard Go context, used for cancellation
	// signals and OpenTelemetry span propagation.
	SetContext(context context.Context)

	// GetContext retrieves the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair. Returns the Context for chaining.
	Add(key string, value interface{}) Context

	// AddError records an error produced by a command, keyed by the
	// command name.
	AddError(key string, err error)

	// GetErrors returns all errors collected during the run.
	GetErrors() map[string]error

	// Get retrieves a value by key, or nil when absent.
	Get(key string) interface{}

	// Remove deletes a key-value pair.
	Remove(key string)

	// HasErrors reports whether any command has recorded an error.
	HasErrors() bool

	// AddTempFile registers a temporary file created during the run.
	// Registered files are removed by Close on every exit path.
	AddTempFile(file string)

	// GetTempFiles returns all registered temporary file paths.
	GetTempFiles() []string

	// Close removes every registered temporary file, retrying each
	// deletion a bounded number of times with a short backoff to absorb
	// platform file-lock delays. A deletion that still fails after the
	// final attempt is logged, never fatal. Defer this at the start of a
	// run.
	Close()
}

// Executable is any object with a core execution step.
type Executable interface {
	// Execute contains the primary business logic. It reads inputs from
	// and writes outputs to the given Context.
	Execute(context Context)
}

// Command is an atomic, testable unit of work within a chain.
type Command interface {
	Executable

	// GetName returns the command's unique name, used for logging and
	// telemetry.
	GetName() string

	// GetInputParam returns the context key for the command's primary
	// input.
	GetInputParam() string

	// GetOutputParam returns the context key for the command's primary
	// output.
	GetOutputParam() string

	// IsExecutable is the precondition check run before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the OpenTelemetry tracer for this command.
	GetTracer() trace.Tracer

	// GetMeter returns the OpenTelemetry meter for creating metrics.
	GetMeter() metric.Meter

	// GetSuccessCounter returns the counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns the counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. A Chain is itself a Command, so chains
// can be nested.
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing
	// after a command records an error.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
