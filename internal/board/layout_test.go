package board

import (
	"encoding/json"
	"testing"
)

func TestWithNumbersDealsInIDOrder(t *testing.T) {
	l := NewLayout([]Terrain{TerrainWood, TerrainDesert, TerrainOre, TerrainSheep})

	numbered, err := l.WithNumbers([]int{2, 3, 4})
	if err != nil {
		t.Fatalf("WithNumbers failed: %v", err)
	}

	// Tokens come off the end of the pool.
	want := []int{4, NoNumber, 3, 2}
	for i, c := range numbered.Cells {
		if c.Number != want[i] {
			t.Errorf("cell %d number = %d, want %d", i, c.Number, want[i])
		}
	}

	for _, c := range l.Cells {
		if c.HasNumber() {
			t.Errorf("WithNumbers modified the receiver at cell %d", c.ID)
		}
	}
}

func TestWithNumbersWrongPoolSize(t *testing.T) {
	l := NewLayout([]Terrain{TerrainWood, TerrainDesert})

	if _, err := l.WithNumbers([]int{2, 3}); err == nil {
		t.Error("WithNumbers should reject a pool larger than the producing cells")
	}
	if _, err := l.WithNumbers(nil); err == nil {
		t.Error("WithNumbers should reject an empty pool")
	}
}

func TestValidateStandardDeal(t *testing.T) {
	tpl := MustStandard()

	l, err := NewLayout(tpl.Terrains).WithNumbers(tpl.Numbers)
	if err != nil {
		t.Fatalf("WithNumbers failed: %v", err)
	}
	if err := l.Validate(tpl); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	desert, ok := l.Desert()
	if !ok || desert.HasNumber() {
		t.Errorf("Desert() = %+v, %v", desert, ok)
	}
}

func TestValidateRejects(t *testing.T) {
	tpl := MustStandard()
	base, err := NewLayout(tpl.Terrains).WithNumbers(tpl.Numbers)
	if err != nil {
		t.Fatalf("WithNumbers failed: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(l *Layout)
	}{
		{"short", func(l *Layout) { l.Cells = l.Cells[:18] }},
		{"wrong id", func(l *Layout) { l.Cells[3].ID = 4 }},
		{"numbered desert", func(l *Layout) { l.Cells[18].Number = 6 }},
		{"missing number", func(l *Layout) { l.Cells[0].Number = NoNumber }},
		{"swapped terrain", func(l *Layout) { l.Cells[0].Terrain = TerrainOre }},
		{"swapped number", func(l *Layout) { l.Cells[0].Number = 3 }},
	}

	for _, tt := range tests {
		l := base.Clone()
		tt.mutate(&l)
		if err := l.Validate(tpl); err == nil {
			t.Errorf("Validate(%s) should fail", tt.name)
		}
	}
}

func TestLayoutJSON(t *testing.T) {
	l, err := NewLayout([]Terrain{TerrainDesert, TerrainWheat}).WithNumbers([]int{8})
	if err != nil {
		t.Fatalf("WithNumbers failed: %v", err)
	}

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `[{"id":0,"terrain":"desert","number":null},{"id":1,"terrain":"wheat","number":8}]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Layout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Cells[0].HasNumber() || back.Cells[1].Number != 8 {
		t.Errorf("Unmarshal = %+v", back.Cells)
	}

	empty, _ := json.Marshal(Layout{})
	if string(empty) != "[]" {
		t.Errorf("empty layout = %s, want []", empty)
	}
}

func TestPipWeight(t *testing.T) {
	tests := []struct {
		number int
		want   int
	}{
		{2, 1}, {12, 1},
		{3, 2}, {11, 2},
		{4, 3}, {10, 3},
		{5, 4}, {9, 4},
		{6, 5}, {8, 5},
		{7, 0}, {NoNumber, 0}, {13, 0},
	}

	for _, tt := range tests {
		if got := PipWeight(tt.number); got != tt.want {
			t.Errorf("PipWeight(%d) = %d, want %d", tt.number, got, tt.want)
		}
	}
}

func TestTerrainRune(t *testing.T) {
	tests := []struct {
		terrain Terrain
		want    rune
	}{
		{TerrainWood, 'W'},
		{TerrainBrick, 'B'},
		{TerrainSheep, 'S'},
		{TerrainWheat, 'H'},
		{TerrainOre, 'O'},
		{TerrainDesert, 'D'},
		{Terrain("lava"), '?'},
	}

	for _, tt := range tests {
		if got := tt.terrain.Rune(); got != tt.want {
			t.Errorf("%q.Rune() = %q, want %q", tt.terrain, got, tt.want)
		}
	}
}
