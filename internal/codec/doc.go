// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package codec persists sessions as JSON test-case files and manages the
// directory that holds them.
//
// A test case named "Power Cycle" is stored as power_cycle.json:
//
//	{
//	  "containers": [
//	    {
//	      "name": "Boot",
//	      "steps": [
//	        {"module": "Power_Supply", "block": "Turn ON"},
//	        {"module": "Timers", "block": "Sleep (time)", "inputs": {"sec": 5}}
//	      ]
//	    }
//	  ]
//	}
//
// Placeholders are never written. Steps whose block is no longer registered
// are dropped on import with a warning.
package codec
