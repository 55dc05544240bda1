package config

import "testing"

func testDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:      ScalingConfig{SpawnReduction: 0.5, HoleGrowth: 1.0},
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())

	tests := []struct {
		seconds  float64
		expected float64
	}{
		{0, 0.0},
		{50, 0.5},
		{100, 1.0},
		{500, 1.0},
		{-10, 0.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.seconds); got != tc.expected {
			t.Errorf("Level(%v) = %v, expected %v", tc.seconds, got, tc.expected)
		}
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	cfg := testDifficulty()
	cfg.InitialLevel = 0.5
	d := NewDifficultyManager(cfg)

	if got := d.Level(0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	if got := d.Level(50); got != 0.75 {
		t.Errorf("Level(50) = %v, expected 0.75", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := testDifficulty()
	cfg.Enabled = false
	cfg.InitialLevel = 0.3
	d := NewDifficultyManager(cfg)

	if d.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
	if got := d.Level(1000); got != 0.3 {
		t.Errorf("Level() with progression off = %v, expected 0.3", got)
	}

	cfg = testDifficulty()
	cfg.Progression.Type = "none"
	if NewDifficultyManager(cfg).IsEnabled() {
		t.Error("progression type none should disable difficulty")
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())

	if got := d.SpawnInterval(4, 0); got != 4 {
		t.Errorf("SpawnInterval(4, 0) = %v, expected 4", got)
	}
	if got := d.SpawnInterval(4, 100); got != 2 {
		t.Errorf("SpawnInterval(4, 100) = %v, expected 2", got)
	}
	if got := d.SpawnInterval(0.6, 100); got != minSpawnInterval {
		t.Errorf("SpawnInterval should not drop below %v, got %v", minSpawnInterval, got)
	}
	if got := d.HoleRadius(1.5, 100); got != 3 {
		t.Errorf("HoleRadius(1.5, 100) = %v, expected 3", got)
	}
}
