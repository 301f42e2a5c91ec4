// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/tribes-music/session-service/cmd"

func main() {
	cmd.Execute()
}
