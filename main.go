package main

import (
	"github.com/MuMuJun97/PyMesh/cmd"
)

func main() {
	cmd.Execute()
}
