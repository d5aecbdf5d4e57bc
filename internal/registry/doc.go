// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package registry provides the block catalog the rest of the tool is built
// around.
//
// The Registry maps a module name and a block name to a model.Block. It is
// assembled once at startup from two halves: HCL manifests that describe each
// block (its label, description and ordered input schema) and the compiled Go
// actions that implement them, looked up by the manifest's `on_run` name in a
// handlers.Handlers store.
//
// A manifest unit that cannot be turned into blocks is skipped with a warning
// so a single broken module never prevents the tool from starting.
package registry
