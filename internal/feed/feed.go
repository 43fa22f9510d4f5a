// Package feed fans out "collection changed" notifications per owner over
// Redis pub/sub. Subscribers re-read the collection after each event, so a
// lost message only delays a refresh until the next change.
package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Colecciones observables.
const (
	Insumos       = "insumos"
	Kits          = "kits"
	Clientes      = "clientes"
	Ventas        = "ventas"
	Egresos       = "egresos"
	GastosDiarios = "gastos_diarios"
	Comandas      = "comandas"
)

// Todas lists every collection a client may subscribe to.
var Todas = []string{Insumos, Kits, Clientes, Ventas, Egresos, GastosDiarios, Comandas}

// Valida reports whether name is a known collection.
func Valida(name string) bool {
	for _, c := range Todas {
		if c == name {
			return true
		}
	}
	return false
}

// Cambio is one change notification.
type Cambio struct {
	Coleccion string
	Owner     uuid.UUID
	At        time.Time
}

// Publisher is the write side used by services after a successful commit.
type Publisher interface {
	Publicar(ctx context.Context, owner uuid.UUID, coleccion string) error
}

// Hub publishes and subscribes through a Redis client.
type Hub struct {
	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub { return &Hub{rdb: rdb} }

func canal(owner uuid.UUID, coleccion string) string {
	return fmt.Sprintf("cambios:%s:%s", owner, coleccion)
}

// Publicar notifies subscribers of owner that coleccion changed.
func (h *Hub) Publicar(ctx context.Context, owner uuid.UUID, coleccion string) error {
	return h.rdb.Publish(ctx, canal(owner, coleccion), time.Now().UTC().Format(time.RFC3339Nano)).Err()
}

// Suscribir opens a subscription to the given collections of owner. With no
// collections it subscribes to all of them. The caller must Close it.
func (h *Hub) Suscribir(ctx context.Context, owner uuid.UUID, colecciones ...string) (*Suscripcion, error) {
	if len(colecciones) == 0 {
		colecciones = Todas
	}
	canales := make([]string, len(colecciones))
	for i, c := range colecciones {
		canales[i] = canal(owner, c)
	}
	ps := h.rdb.Subscribe(ctx, canales...)
	// wait for the subscription confirmation so no publish is missed after return
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("suscripcion a cambios: %w", err)
	}
	return newSuscripcion(owner, ps.Channel(), ps.Close), nil
}

// Suscripcion delivers Cambio values until closed. Close is idempotent and
// safe to call from any goroutine.
type Suscripcion struct {
	owner  uuid.UUID
	out    chan Cambio
	done   chan struct{}
	once   sync.Once
	closer func() error
}

func newSuscripcion(owner uuid.UUID, msgs <-chan *redis.Message, closer func() error) *Suscripcion {
	s := &Suscripcion{
		owner:  owner,
		out:    make(chan Cambio, 16),
		done:   make(chan struct{}),
		closer: closer,
	}
	go s.loop(msgs)
	return s
}

func (s *Suscripcion) loop(msgs <-chan *redis.Message) {
	defer close(s.out)
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			c := Cambio{Coleccion: coleccionDeCanal(msg.Channel), Owner: s.owner, At: time.Now()}
			select {
			case s.out <- c:
			case <-s.done:
				return
			}
		}
	}
}

func coleccionDeCanal(ch string) string {
	if i := strings.LastIndexByte(ch, ':'); i >= 0 {
		return ch[i+1:]
	}
	return ch
}

// Cambios returns the delivery channel. It is closed after Close.
func (s *Suscripcion) Cambios() <-chan Cambio { return s.out }

func (s *Suscripcion) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		if s.closer != nil {
			err = s.closer()
		}
	})
	return err
}
