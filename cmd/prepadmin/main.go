package main

import "github.com/dmitrijs2005/prepadmin/cmd/prepadmin/cmd"

func main() {
	cmd.Execute()
}
