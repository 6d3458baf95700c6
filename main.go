package main

import "github.com/llehouerou/fmcli/cmd"

func main() {
	cmd.Execute()
}
