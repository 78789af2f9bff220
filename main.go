package main

import (
	"log"

	"github.com/skyops/dronecoord/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
