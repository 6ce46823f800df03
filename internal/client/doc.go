// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the backup client application runtime.
//
// It wires local storages, the remote store, client services and the
// background backup worker into a single process lifecycle, and forwards
// run states and outcomes to a [ProgressRenderer].
package client
