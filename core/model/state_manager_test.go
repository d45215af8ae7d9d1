package model_test

import (
	"sync"
	"testing"

	"github.com/mizuhira/lsqfit/core/model"
)

func TestStateManagerLifecycle(t *testing.T) {
	sm := model.NewStateManager()

	if sm.IsFitted() {
		t.Error("New state manager should not be fitted")
	}
	if err := sm.RequireFitted(); err == nil {
		t.Error("RequireFitted should fail before fitting")
	}

	sm.SetDimensions(3, 100)
	sm.SetFitted()

	if !sm.IsFitted() {
		t.Error("State manager should be fitted after SetFitted")
	}
	if err := sm.RequireFitted(); err != nil {
		t.Errorf("RequireFitted should succeed after fitting: %v", err)
	}

	features, samples := sm.GetDimensions()
	if features != 3 || samples != 100 {
		t.Errorf("GetDimensions() = (%d, %d), want (3, 100)", features, samples)
	}

	sm.Reset()
	if sm.IsFitted() {
		t.Error("State manager should not be fitted after Reset")
	}
	features, samples = sm.GetDimensions()
	if features != 0 || samples != 0 {
		t.Errorf("Dimensions should be zero after Reset, got (%d, %d)", features, samples)
	}
}

func TestStateManagerConcurrentReads(t *testing.T) {
	sm := model.NewStateManager()
	sm.SetDimensions(5, 200)
	sm.SetFitted()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !sm.IsFitted() {
				t.Error("Concurrent read saw unfitted state")
			}
			features, _ := sm.GetDimensions()
			if features != 5 {
				t.Errorf("Concurrent read saw features=%d, want 5", features)
			}
		}()
	}
	wg.Wait()
}
