// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package config defines the hardware configuration of a test bench and its
// HCL loader. The file tells block modules where the device, the relay board,
// the trace port and the remote bench live:
//
//	adb {
//	  path        = "adb"
//	  serial      = "emulator-5554"
//	  reboot_wait = "3s"
//	}
//
//	relay {
//	  port = "/dev/ttyUSB0"
//	  baud = 9600
//	}
//
// Every block is optional. A missing file yields Defaults().
package config
