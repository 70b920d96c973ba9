package db

import (
	"context"
	"database/sql"
)

type TxFn func(ctx context.Context, tx *sql.Tx) error

// Worker funnels every write through one goroutine so SQLite only ever
// sees a single writer. Reads go straight to the *sql.DB.
type Worker struct {
	conn *sql.DB
	jobs chan job
	done chan struct{}
}

type job struct {
	ctx context.Context
	fn  TxFn
	ch  chan error
}

func NewWorker(conn *sql.DB) *Worker {
	w := &Worker{
		conn: conn,
		jobs: make(chan job, 256),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) Close() {
	close(w.jobs)
	<-w.done
}

// Do runs fn inside a transaction on the worker goroutine and returns its
// result. If the caller's context expires while the job is queued or
// executing, Do returns ctx.Err(); the worker still finishes the
// transaction and the discarded result lands in the buffered channel.
func (w *Worker) Do(ctx context.Context, fn TxFn) error {
	ch := make(chan error, 1)
	j := job{ctx: ctx, fn: fn, ch: ch}

	select {
	case w.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer close(w.done)

	for j := range w.jobs {
		tx, err := w.conn.BeginTx(j.ctx, nil)
		if err != nil {
			j.ch <- err
			continue
		}

		if err := j.fn(j.ctx, tx); err != nil {
			_ = tx.Rollback()
			j.ch <- err
			continue
		}

		j.ch <- tx.Commit()
	}
}
