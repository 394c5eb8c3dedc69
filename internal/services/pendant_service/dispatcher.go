package pendant_service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/internal/middleware/logging"
	"github.com/iwtcode/pendantService/models"
)

const (
	dispatchQueueSize   = 256
	subscriberQueueSize = 64
	publishTimeout      = 5 * time.Second
)

// EventDispatcher раздает события подписчикам и отправляет их во внешние системы.
// Publish не блокирует главный цикл: Kafka и журнал обслуживает отдельная горутина.
type EventDispatcher struct {
	producer interfaces.KafkaService
	journal  interfaces.OccurrenceLog
	logger   *logging.Logger

	queue chan models.Event

	mu     sync.Mutex
	subs   map[int]chan models.Event
	nextID int
	closed bool

	wg sync.WaitGroup
}

// NewEventDispatcher создает диспетчер. producer и journal могут быть nil.
func NewEventDispatcher(producer interfaces.KafkaService, journal interfaces.OccurrenceLog, logger *logging.Logger) *EventDispatcher {
	return &EventDispatcher{
		producer: producer,
		journal:  journal,
		logger:   logger.WithPrefix("EVENTS"),
		queue:    make(chan models.Event, dispatchQueueSize),
		subs:     make(map[int]chan models.Event),
	}
}

func (d *EventDispatcher) Start() {
	d.wg.Add(1)
	go d.worker()
}

// Stop дожидается отправки событий из очереди.
func (d *EventDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	for id, ch := range d.subs {
		close(ch)
		delete(d.subs, id)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Subscribe возвращает канал событий и функцию отписки.
// Медленный подписчик теряет события, а не задерживает остальных.
func (d *EventDispatcher) Subscribe() (<-chan models.Event, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan models.Event, subscriberQueueSize)
	if d.closed {
		close(ch)
		return ch, func() {}
	}
	id := d.nextID
	d.nextID++
	d.subs[id] = ch

	return ch, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if c, ok := d.subs[id]; ok {
			close(c)
			delete(d.subs, id)
		}
	}
}

func (d *EventDispatcher) Publish(ev models.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	for _, ch := range d.subs {
		select {
		case ch <- ev:
		default:
		}
	}

	if d.producer == nil && d.journal == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("Event queue is full, dropping event", "type", ev.Type, "key", ev.Key())
	}
}

func (d *EventDispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *EventDispatcher) deliver(ev models.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if d.journal != nil && ev.Interlock != nil {
		if err := d.journal.Append(ctx, *ev.Interlock); err != nil {
			d.logger.Error("Failed to append occurrence to journal", "code", ev.Interlock.Code, "error", err)
		}
	}

	if d.producer == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		d.logger.Error("Failed to serialize event for Kafka", "type", ev.Type, "error", err)
		return
	}
	if err := d.producer.Produce(ctx, []byte(ev.Key()), data); err != nil {
		d.logger.Error("Failed to send event to Kafka", "type", ev.Type, "error", err)
	}
}
