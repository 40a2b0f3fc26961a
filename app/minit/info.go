package minit

import (
	"log"
	"runtime"

	"github.com/artwhale/go-artwhale/build"
)

func PrintVersion() {
	log.Printf("ArtWhale version: %s", build.UserVersion())
	log.Printf("System version: %s", runtime.GOARCH+"/"+runtime.GOOS)
	log.Printf("Golang version: %s", runtime.Version())
}
