package signalscan

import "testing"

func TestDetectEventsMajorOutlier(t *testing.T) {
	// mean 17.5, population std ~12.99: 40 clears the 1.5 std bar (~37.0),
	// the rest stay below the 0.75 std bar (~27.2).
	volumes := map[int]int{0: 10, 1: 10, 2: 10, 3: 40}
	flags := DetectEvents(volumes)

	if flags[3] != EventMajor {
		t.Fatalf("cluster 3 = %q, want %q", flags[3], EventMajor)
	}
	for _, cid := range []int{0, 1, 2} {
		if flags[cid] != EventNormal {
			t.Fatalf("cluster %d = %q, want %q", cid, flags[cid], EventNormal)
		}
	}
}

func TestDetectEventsEmerging(t *testing.T) {
	// mean 14, population std ~7.79: 25 is above mean + 0.75 std (~19.8)
	// but below mean + 1.5 std (~25.7).
	volumes := map[int]int{0: 8, 1: 9, 2: 25}
	flags := DetectEvents(volumes)
	if flags[2] != EventEmerging {
		t.Fatalf("cluster 2 = %q, want %q", flags[2], EventEmerging)
	}
	if flags[0] != EventNormal || flags[1] != EventNormal {
		t.Fatalf("small clusters flagged: %v", flags)
	}
}

func TestDetectEventsUniformVolumes(t *testing.T) {
	// Zero spread: no volume exceeds the mean, everything is Normal.
	flags := DetectEvents(map[int]int{0: 5, 1: 5, 2: 5})
	for cid, f := range flags {
		if f != EventNormal {
			t.Fatalf("cluster %d = %q, want %q", cid, f, EventNormal)
		}
	}
}

func TestDetectEventsSingleCluster(t *testing.T) {
	flags := DetectEvents(map[int]int{0: 100})
	if flags[0] != EventNormal {
		t.Fatalf("single cluster = %q, want %q", flags[0], EventNormal)
	}
}

func TestDetectEventsEmpty(t *testing.T) {
	if flags := DetectEvents(nil); len(flags) != 0 {
		t.Fatalf("expected no flags, got %v", flags)
	}
}
