package minit

import (
	"log"
	_ "net/http/pprof"
	"os"
	"runtime/pprof"
	"time"
)

const (
	EnvEnableProfiling = "ARTWHALE_PROF"
	cpuProfile         = "artwhale.cpuprof"
	heapProfile        = "artwhale.memprof"
)

// ProfileIfEnabled writes cpu and heap profiles while the daemon runs when
// ARTWHALE_PROF is set.
func ProfileIfEnabled() (func(), error) {
	if os.Getenv(EnvEnableProfiling) == "" {
		return func() {}, nil
	}

	ofi, err := os.Create(cpuProfile)
	if err != nil {
		return nil, err
	}

	if err := pprof.StartCPUProfile(ofi); err != nil {
		log.Println("start cpu profile failed: ", err)
	}

	done := make(chan struct{})
	go func() {
		tk := time.NewTicker(30 * time.Second)
		defer tk.Stop()
		for {
			select {
			case <-tk.C:
				if err := writeHeapProfile(); err != nil {
					log.Println("write heap profile failed: ", err)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		pprof.StopCPUProfile()
		if err := ofi.Close(); err != nil {
			log.Println("stop cpu profile failed: ", err)
		}
	}, nil
}

func writeHeapProfile() error {
	mprof, err := os.Create(heapProfile)
	if err != nil {
		return err
	}
	defer mprof.Close()
	return pprof.WriteHeapProfile(mprof)
}
