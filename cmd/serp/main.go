// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/ovk/serp/internal/cli"

func main() {
	cli.Execute()
}
