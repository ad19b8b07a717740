// Command wellplan is the oilfield layout workbench.
package main

import "github.com/papapumpkin/wellplan/cmd"

func main() {
	cmd.Execute()
}
