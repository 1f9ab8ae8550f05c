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

// Package cor provides the building blocks for the analysis pipeline. This
// file defines `BaseChain`, the default Chain implementation.
//
// Logic Flow:
//  1. Execute starts an OpenTelemetry span covering the whole chain.
//  2. Commands run strictly in order; each gets a child span.
//  3. Before each command the chain checks the context for prior errors and
//     stops unless continueOnFailure is set.
//  4. After each command the chain "flip-flops" the piping keys: whatever
//     the command wrote to CtxOut becomes the next command's CtxIn.
//  5. The chain span is marked Ok or Error from the final context state.
package cor

import (
	"fmt"

	"go.opentelemetry.io/otel/codes"
)

// BaseChain is the default implementation of the Chain interface. It holds a
// slice of commands to be executed sequentially.
type BaseChain struct {
	BaseCommand
	continueOnFailure bool      // Whether to keep executing after a command fails.
	commands          []Command // The ordered list of commands.
}

// NewBaseChain is the constructor for BaseChain.
//
// Inputs:
//   - name: a string name for this chain, used for logging and telemetry.
//
// Outputs:
//   - *BaseChain: a pointer to the newly instantiated chain.
func NewBaseChain(name string) *BaseChain {
	return &BaseChain{BaseCommand: *NewBaseCommand(name)}
}

// ContinueOnFailure is a builder method that sets the error handling
// behavior of the chain. When true, the chain executes every command even
// after one records an error; when false (the default), the chain stops at
// the first failure.
func (c *BaseChain) ContinueOnFailure(continueOnFailure bool) Chain {
	c.continueOnFailure = continueOnFailure
	return c
}

// AddCommand appends a command to the end of the chain's execution sequence.
// Returns the chain for fluent construction.
func (c *BaseChain) AddCommand(command Command) Chain {
	c.commands = append(c.commands, command)
	return c
}

// IsExecutable checks if the chain can run: a valid Go context must exist.
func (c *BaseChain) IsExecutable(context Context) bool {
	return context.GetContext() != nil
}

// Execute orchestrates the sequential execution of all commands in the
// chain.
//
// Inputs:
//   - chCtx: the shared `cor.Context` for the entire run.
func (c *BaseChain) Execute(chCtx Context) {
	parentCtx := chCtx.GetContext()

	// One span for the entire chain execution.
	outerCtx, chainSpan := c.Tracer.Start(parentCtx, fmt.Sprintf("%s_execute", c.GetName()))
	defer chainSpan.End()

	for _, command := range c.commands {
		commandContext, commandSpan := c.Tracer.Start(outerCtx, command.GetName())

		// A previous command may have failed; stop here unless the
		// chain is configured to press on.
		if chCtx.HasErrors() && !c.continueOnFailure {
			commandSpan.SetStatus(codes.Error, "previous error on chain; skipping execution")
			commandSpan.End()
			break
		}

		if command.IsExecutable(chCtx) {
			// Run the command under its own span, then restore the
			// chain's context so sibling commands trace flat rather
			// than nested.
			chCtx.SetContext(commandContext)
			command.Execute(chCtx)
			chCtx.SetContext(outerCtx)
		} else {
			commandSpan.SetStatus(codes.Error, fmt.Sprintf("command not executable: %s", command.GetName()))
		}

		if chCtx.HasErrors() {
			commandSpan.SetStatus(codes.Error, "error during or after command execution")
		} else {
			commandSpan.SetStatus(codes.Ok, "command completed successfully")
		}
		commandSpan.End()

		// Flip-flop the piping keys: the output of the command that
		// just ran becomes the input of the next one.
		outputValue := chCtx.Get(CtxOut)
		chCtx.Remove(CtxIn)
		if outputValue != nil {
			chCtx.Add(CtxIn, outputValue)
		}
		chCtx.Remove(CtxOut)
	}

	if !chCtx.HasErrors() {
		chainSpan.SetStatus(codes.Ok, "chain completed successfully")
	} else {
		chainSpan.SetStatus(codes.Error, "chain failed to execute")
	}
}
