// SPDX-License-Identifier: MPL-2.0

package main

import cmd "vagabond-cli/cmd/vagabond"

func main() {
	cmd.Execute()
}
