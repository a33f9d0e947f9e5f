package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize int
		wantSize   int
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSampler_NilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "Creating slides") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSampler_LabelAndBucket(t *testing.T) {
	s := NewProgressSampler(10)

	if !s.ShouldLog(5, "Planning structure") {
		t.Error("first event should log")
	}
	if s.ShouldLog(7, "Planning structure") {
		t.Error("same label within bucket should not log")
	}
	if !s.ShouldLog(15, "Planning structure") {
		t.Error("crossing a bucket should log")
	}
	if !s.ShouldLog(15, "Writing manuscript") {
		t.Error("label change should log")
	}
	if s.ShouldLog(12, "") {
		t.Error("lower percent without label should not log")
	}
	if !s.ShouldLog(100, "Done") {
		t.Error("completion should log")
	}

	s.Reset()
	if s.lastLabel != "" || s.lastBucket != -1 {
		t.Errorf("reset left state: %+v", s)
	}
}
