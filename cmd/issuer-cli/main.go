package main

import "github.com/mintdao/issuer/cmd/issuer-cli/cmd"

func main() {
	cmd.Execute()
}
