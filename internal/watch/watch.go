// Package watch, bir dosya her yazıldığında geri çağırma fonksiyonu çalıştırır.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce, ardışık yazmaların tek çağrıya indirildiği süredir.
const DefaultDebounce = 300 * time.Millisecond

// Watcher tek bir dosyayı izler. Dosyanın dizini izlenir; böylece dosyayı
// silip yeniden yazan editörler de yakalanır.
type Watcher struct {
	file     string
	callback func() error
	watcher  *fsnotify.Watcher

	// Debounce sıfırsa DefaultDebounce kullanılır.
	Debounce time.Duration
	// OnError, geri çağırma ve izleyici hatalarını alır. nil ise hatalar yutulur.
	OnError func(error)
}

// New, file için bir izleyici kurar. callback Run başlarken bir kez, sonra
// her değişiklikte çağrılır.
func New(file string, callback func() error) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", file, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch: add %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{file: abs, callback: callback, watcher: fw}, nil
}

// Run, ctx iptal edilene kadar bloklar. İlk çağrı hata verirse izleme
// başlamadan o hata döner.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.callback(); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if path, err := filepath.Abs(event.Name); err != nil || path != w.file {
				continue
			}
			timer.Reset(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.callback(); err != nil {
				w.report(err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

func (w *Watcher) report(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}

// File, izlenen dosyanın mutlak yoludur.
func (w *Watcher) File() string { return w.file }
