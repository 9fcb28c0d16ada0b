package bean

import (
	"runtime"
	"sync"

	"github.com/e1732a364fed/vs_profile/utils"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Stored is one persisted record: its kind tag and its bytes.
type Stored struct {
	Kind Kind
	Data []byte
}

type Result struct {
	Bean Bean
	Err  error
}

// DecodeBatch decodes items on at most workers goroutines. A failed item only fails its
// own Result; failed counts them.
func DecodeBatch(items []Stored, workers int) (results []Result, failed int) {
	results = make([]Result, len(items))
	if len(items) == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = utils.Clamp(workers, 1, len(items))

	var failCount atomic.Int32
	var wg sync.WaitGroup
	jobs := make(chan int)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				b, err := Decode(items[i].Kind, items[i].Data)
				results[i] = Result{Bean: b, Err: err}
				if err != nil {
					failCount.Inc()
					if ce := utils.CanLogWarn("decode stored record failed"); ce != nil {
						ce.Write(zap.Int("index", i), zap.Stringer("kind", items[i].Kind), zap.Error(err))
					}
				}
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, int(failCount.Load())
}
