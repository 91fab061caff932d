package main

import "github.com/frahmantamala/parc-info/cmd"

func main() {
	cmd.Execute()
}
