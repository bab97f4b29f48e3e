// Package audit registra o que o profissional logado fez, fora do caminho
// da requisição.
package audit

import (
	"sync"

	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

const (
	ActionSignIn   = "sign_in"
	ActionSignOut  = "sign_out"
	ActionSignUp   = "sign_up"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionSession  = "session_logged"
	EntityUser     = "user"
	EntitySchedule = "schedule"
	EntityPatient  = "patient"

	queueSize = 100
)

type Event struct {
	VisitorID string
	UserID    *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Dispatcher entrega eventos a um Sink numa goroutine própria. Fila cheia
// descarta o evento: auditoria nunca bloqueia uma requisição.
type Dispatcher struct {
	sink   Sink
	logger *logging.Logger
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Record(ev); err != nil {
			d.logger.Error("audit record failed", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch aceita nil para que handlers não precisem checar.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close esvazia a fila e espera o worker terminar. Dispatch depois de
// Close entra em pânico.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}

// ID é um atalho para os campos *uint de Event.
func ID(v uint) *uint {
	return &v
}
