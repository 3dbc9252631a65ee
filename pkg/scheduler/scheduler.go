// Package scheduler runs recurring maintenance tasks on fixed intervals.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task is a named function run on a fixed interval
type Task struct {
	Name     string
	Interval time.Duration
	Fn       func(context.Context) error
}

// Scheduler runs its registered tasks until stopped. Each task runs once at
// startup and then on its interval.
type Scheduler struct {
	tasks   []*Task
	mutex   sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddTask registers a task. Tasks added after Start are ignored until the
// next Start.
func (s *Scheduler) AddTask(name string, interval time.Duration, fn func(context.Context) error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
}

// Start launches one goroutine per registered task
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(ctx, task)
	}

	log.Printf("Scheduler started with %d tasks", len(s.tasks))
}

// Stop cancels all tasks and waits for them to finish
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	if !s.running {
		s.mutex.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mutex.Unlock()

	s.wg.Wait()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) runTask(ctx context.Context, task *Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	if err := task.Fn(ctx); err != nil {
		log.Printf("Error running task %s: %v", task.Name, err)
	}

	for {
		select {
		case <-ticker.C:
			if err := task.Fn(ctx); err != nil {
				log.Printf("Error running task %s: %v", task.Name, err)
			}
		case <-ctx.Done():
			return
		}
	}
}
