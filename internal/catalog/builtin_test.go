package catalog

import (
	"context"
	"math"
	"testing"

	"github.com/litescript/ls-starfield/internal/astro"
)

func TestBuiltin_Load(t *testing.T) {
	res, err := Builtin{}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Stars) != len(BuiltinNames()) {
		t.Fatalf("stars = %d, names = %d", len(res.Stars), len(BuiltinNames()))
	}
	for i, s := range res.Stars {
		r := math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
		if math.Abs(r-1) > 1e-12 {
			t.Errorf("%s: |p| = %v, want 1", BuiltinNames()[i], r)
		}
		if s.Mag >= 6.5 {
			t.Errorf("%s: magnitude %v is too faint to draw", BuiltinNames()[i], s.Mag)
		}
	}
	if BuiltinNames()[0] != "Sirius" {
		t.Errorf("first star = %s, want Sirius", BuiltinNames()[0])
	}
}

func TestBuiltin_Positions(t *testing.T) {
	res, err := Builtin{}.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	pos := make(map[string]astro.Star)
	for i, name := range BuiltinNames() {
		pos[name] = res.Stars[i]
	}

	// Polaris sits within a degree of the pole (+Y).
	if y := pos["Polaris"].Y; y < math.Cos(1*math.Pi/180) {
		t.Errorf("Polaris y = %v, want near 1", y)
	}

	// Mizar and Alcor are a naked-eye double about 0.2° apart.
	mizar := astro.SkyCoordOf(pos["Mizar"].Vec())
	alcor := astro.SkyCoordOf(pos["Alcor"].Vec())
	if sep := astro.AngularSeparation(mizar, alcor); sep > 0.3 {
		t.Errorf("Mizar-Alcor separation = %v°, want < 0.3°", sep)
	}
}

func TestBuiltin_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Builtin{}).Load(ctx); err == nil {
		t.Error("cancelled context should fail")
	}
}
