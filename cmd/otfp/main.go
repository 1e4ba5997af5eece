package main

import "github.com/OpenTraceLab/OpenTraceFootprint/cmd/otfp/cmd"

func main() {
	cmd.Execute()
}
