// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package blocks embeds the manifests of the built-in block modules. Each
// manifest names the Go handlers that implement its blocks; the handlers are
// registered by the packages under modules/.
package blocks

import "embed"

// FS holds every built-in *.hcl manifest.
//
//go:embed *.hcl
var FS embed.FS
