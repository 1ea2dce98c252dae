package pixelsort

import "testing"

func TestOptions(t *testing.T) {
	o := buildOptions(nil)
	if o.workers != 0 || o.progress != nil {
		t.Errorf("default options = %+v", o)
	}

	called := false
	o = buildOptions([]Option{WithWorkers(3), nil, WithProgress(func(int, int) { called = true })})
	if o.workers != 3 {
		t.Errorf("workers = %d, want 3", o.workers)
	}
	o.progress(1, 1)
	if !called {
		t.Error("progress callback not installed")
	}
}
