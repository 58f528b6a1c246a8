package main

import "github.com/LegacyCodeHQ/crawlgraph/cmd"

func main() {
	cmd.Execute()
}
