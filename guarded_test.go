package annolock

import (
	"sync"
	"testing"
)

func TestGuarded_Do(t *testing.T) {
	g := NewGuarded(map[string]int{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				g.Do(func(v *map[string]int) { (*v)["count"]++ })
			}
		}()
	}
	wg.Wait()
	g.Do(func(v *map[string]int) {
		if got := (*v)["count"]; got != 1600 {
			t.Error("expected 1600, got", got)
		}
	})
}

func TestGuarded_TryDo(t *testing.T) {
	g := NewGuarded(0)
	g.Do(func(v *int) {
		if elsewhere(func() bool { return g.TryDo(func(v *int) { *v = 1 }) }) {
			t.Error("TryDo ran while the value was locked")
		}
	})
	if !g.TryDo(func(v *int) { *v = 2 }) {
		t.Fatal("expected TryDo to run")
	}
	g.Do(func(v *int) {
		if *v != 2 {
			t.Error("expected 2, got", *v)
		}
	})
}

func TestRWGuarded(t *testing.T) {
	for _, mode := range []RecursionMode{NonRecursive, Recursive} {
		t.Run(mode.String(), func(t *testing.T) {
			g := NewRWGuarded([]int{}, mode)
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(2)
				go func(i int) {
					defer wg.Done()
					g.Write(func(v *[]int) { *v = append(*v, i) })
				}(i)
				go func() {
					defer wg.Done()
					g.Read(func(v *[]int) { _ = len(*v) })
				}()
			}
			wg.Wait()
			g.Read(func(v *[]int) {
				if len(*v) != 8 {
					t.Error("expected 8 entries, got", len(*v))
				}
				res := make(chan bool)
				go func() { res <- g.TryWrite(func(*[]int) {}) }()
				if <-res {
					t.Error("TryWrite ran while read-locked")
				}
				go func() { res <- g.TryRead(func(*[]int) {}) }()
				if !<-res {
					t.Error("TryRead should share the read lock")
				}
			})
			if !g.TryWrite(func(v *[]int) { *v = nil }) {
				t.Fatal("expected TryWrite to run")
			}
		})
	}
}
