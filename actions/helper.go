package actions

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/Memily89/smart-sales-memily89/components"
	"github.com/Memily89/smart-sales-memily89/logger"
)

// NewRunGuid returns the identifier carried by every log line of a run.
func NewRunGuid() string {
	return xid.New().String()
}

// waitCounter adapts sync.WaitGroup to the single-increment interface the
// pipeline components expect.
type waitCounter struct {
	wg sync.WaitGroup
}

func (w *waitCounter) Add()  { w.wg.Add(1) }
func (w *waitCounter) Done() { w.wg.Done() }
func (w *waitCounter) Wait() { w.wg.Wait() }

// GetPanicHandlerFunc creates a func that components defer to convert a
// goroutine panic into an error on errChan instead of killing the process.
// Only the first panic of a pipeline is reported.
func GetPanicHandlerFunc(log logger.Logger, errChan chan error) components.PanicHandlerFunc {
	once := sync.Once{}
	return func() {
		if r := recover(); r != nil { // if there was a panic...
			var msg string
			switch x := r.(type) {
			case *logrus.Entry: // raised by logger.Panic.
				msg = x.Message
			case error:
				msg = x.Error()
			case string:
				msg = x
			default:
				msg = "unexpected panic type found during recovery"
			}
			log.Error("recovered pipeline panic: ", msg)
			once.Do(func() {
				select {
				case errChan <- errors.New(msg):
				default:
				}
			})
		}
	}
}
