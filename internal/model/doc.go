// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory representation of a test sequence and
// of the results produced by running it.
//
// # Core Concepts
//
//   - Block: a registered, invocable device action with an explicit, ordered
//     input schema. Blocks are owned by the registry and never mutated after
//     it has been loaded.
//
//   - Step: one slot in a sequence. A step either references a block by its
//     (module, block) pair or is an empty placeholder. References are resolved
//     against the registry at the moment they are used.
//
//   - Container: a named, ordered list of steps, presented to the operator as
//     a "test case". A container always holds at least one step.
//
//   - Session: every container currently open. Exactly one session exists per
//     running application and it is replaced wholesale on import.
//
//   - StepResult / ContainerResult / RunResult: the transient outcome of a run,
//     consumed by the report generator and never persisted.
//
// The package has no knowledge of files, manifests or presentation. The
// registry, runner and codec packages build on it.
package model
