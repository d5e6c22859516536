// cmd/server is the bare HTTP entry point for container deployments that do
// not need the full supplyhub CLI.
package main

import (
	"log"

	"github.com/supplyhub/supplyhub/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
