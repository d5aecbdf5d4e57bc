// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package report renders a RunResult as a standalone HTML page and can upload
// the page to a pre-signed URL.
package report
