package storyboard

import (
	"errors"
	"testing"

	"osbc/osufile"
)

func TestParseLayer(t *testing.T) {
	t.Run("named_spelling", func(t *testing.T) {
		for name, want := range map[string]Layer{
			"Background": LayerBackground,
			"Fail":       LayerFail,
			"Pass":       LayerPass,
			"Foreground": LayerForeground,
		} {
			got, err := ParseLayer(name)
			if err != nil {
				t.Fatalf("ParseLayer(%q) failed: %v", name, err)
			}
			if got != want {
				t.Fatalf("ParseLayer(%q) = %d, want %d", name, got, want)
			}
		}
	})

	t.Run("numeric_spelling", func(t *testing.T) {
		got, err := ParseLayer("3")
		if err != nil {
			t.Fatalf("ParseLayer failed: %v", err)
		}
		if got != LayerForeground {
			t.Fatalf("ParseLayer(\"3\") = %d, want %d", got, LayerForeground)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := ParseLayer("Overlay"); err == nil {
			t.Fatalf("expected error for unknown layer")
		}
	})
}

func TestLayerRender(t *testing.T) {
	if got := LayerPass.Render(5); got != "2" {
		t.Fatalf("legacy render = %q, want \"2\"", got)
	}
	if got := LayerPass.Render(osufile.LatestVersion); got != "Pass" {
		t.Fatalf("named render = %q, want \"Pass\"", got)
	}
}

func TestParseOrigin(t *testing.T) {
	t.Run("both_spellings", func(t *testing.T) {
		for _, s := range []string{"BottomCentre", "4"} {
			got, err := ParseOrigin(s)
			if err != nil {
				t.Fatalf("ParseOrigin(%q) failed: %v", s, err)
			}
			if got != OriginBottomCentre {
				t.Fatalf("ParseOrigin(%q) = %d, want %d", s, got, OriginBottomCentre)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := ParseOrigin("Middle"); err == nil {
			t.Fatalf("expected error for unknown origin")
		}
	})
}

func TestOriginRender(t *testing.T) {
	if got := OriginTopRight.Render(4); got != "3" {
		t.Fatalf("legacy render = %q, want \"3\"", got)
	}
	if got := OriginTopRight.Render(osufile.LatestVersion); got != "TopRight" {
		t.Fatalf("named render = %q, want \"TopRight\"", got)
	}
}

func TestParseLoopType(t *testing.T) {
	for s, want := range map[string]LoopType{
		"LoopForever": LoopForever,
		"0":           LoopForever,
		"LoopOnce":    LoopOnce,
		"1":           LoopOnce,
	} {
		got, err := ParseLoopType(s)
		if err != nil {
			t.Fatalf("ParseLoopType(%q) failed: %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseLoopType(%q) = %d, want %d", s, got, want)
		}
	}
	if _, err := ParseLoopType("LoopTwice"); err == nil {
		t.Fatalf("expected error for unknown loop type")
	}
}

func TestParseEasing(t *testing.T) {
	for _, s := range []string{"0", "34"} {
		if _, err := ParseEasing(s); err != nil {
			t.Fatalf("ParseEasing(%q) failed: %v", s, err)
		}
	}
	for _, s := range []string{"-1", "35"} {
		_, err := ParseEasing(s)
		var unknown *UnknownEasingError
		if !errors.As(err, &unknown) {
			t.Fatalf("ParseEasing(%q): expected UnknownEasingError, got %v", s, err)
		}
	}
	if _, err := ParseEasing("x"); err == nil {
		t.Fatalf("expected error for non-numeric easing")
	}
}

func TestParseObject(t *testing.T) {
	t.Run("sprite", func(t *testing.T) {
		obj, err := ParseObject(`Sprite,Background,Centre,"bg.png",320,240`, osufile.LatestVersion)
		if err != nil {
			t.Fatalf("ParseObject failed: %v", err)
		}
		if obj.Layer != LayerBackground || obj.Origin != OriginCentre {
			t.Fatalf("wrong layer/origin: %v/%v", obj.Layer, obj.Origin)
		}
		sprite, ok := obj.Type.(*Sprite)
		if !ok {
			t.Fatalf("expected Sprite, got %T", obj.Type)
		}
		// quotes are part of the path, not syntax
		if sprite.Path != `"bg.png"` {
			t.Fatalf("path = %q", sprite.Path)
		}
		if obj.Position.String() != "320,240" {
			t.Fatalf("position = %q", obj.Position)
		}
	})

	t.Run("sprite_numeric_enums", func(t *testing.T) {
		obj, err := ParseObject("Sprite,3,1,bg.png,0,0", osufile.LatestVersion)
		if err != nil {
			t.Fatalf("ParseObject failed: %v", err)
		}
		if obj.Layer != LayerForeground || obj.Origin != OriginCentre {
			t.Fatalf("wrong layer/origin: %v/%v", obj.Layer, obj.Origin)
		}
	})

	t.Run("animation", func(t *testing.T) {
		obj, err := ParseObject("Animation,Foreground,Centre,frames.png,320,240,10,41.7,LoopOnce", osufile.LatestVersion)
		if err != nil {
			t.Fatalf("ParseObject failed: %v", err)
		}
		anim, ok := obj.Type.(*Animation)
		if !ok {
			t.Fatalf("expected Animation, got %T", obj.Type)
		}
		if anim.FrameCount != 10 || anim.FrameDelay.String() != "41.7" || anim.LoopType != LoopOnce {
			t.Fatalf("wrong animation fields: %d %s %v", anim.FrameCount, anim.FrameDelay, anim.LoopType)
		}
	})

	t.Run("animation_default_loop_type", func(t *testing.T) {
		obj, err := ParseObject("Animation,Foreground,Centre,frames.png,320,240,10,50", osufile.LatestVersion)
		if err != nil {
			t.Fatalf("ParseObject failed: %v", err)
		}
		if obj.Type.(*Animation).LoopType != LoopForever {
			t.Fatalf("omitted loop type must default to LoopForever")
		}
	})

	t.Run("unknown_object_type", func(t *testing.T) {
		_, err := ParseObject("2,100,163", osufile.LatestVersion)
		var unknown *UnknownObjectTypeError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownObjectTypeError, got %v", err)
		}
		if unknown.Token != "2" {
			t.Fatalf("token = %q", unknown.Token)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		for line, field := range map[string]string{
			"Sprite":                           "layer",
			"Sprite,Background":                "origin",
			"Sprite,Background,Centre":         "filepath",
			"Sprite,Background,Centre,bg.png,": "y",
			"Animation,Foreground,Centre,frames.png,320,240":    "frame_count",
			"Animation,Foreground,Centre,frames.png,320,240,10": "frame_delay",
		} {
			_, err := ParseObject(line, osufile.LatestVersion)
			var missing *MissingObjectFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("%q: expected MissingObjectFieldError, got %v", line, err)
			}
			if missing.Field != field {
				t.Fatalf("%q: field = %q, want %q", line, missing.Field, field)
			}
		}
	})

	t.Run("invalid_fields", func(t *testing.T) {
		for line, field := range map[string]string{
			"Sprite,Overlay,Centre,bg.png,320,240":    "layer",
			"Sprite,Background,Middle,bg.png,320,240": "origin",
			"Sprite,Background,Centre,bg.png,x,240":   "x",
			// trailing fields fold into the last positional value
			"Sprite,Background,Centre,bg.png,320,240,junk":               "y",
			"Animation,Foreground,Centre,f.png,320,240,x,50":             "frame_count",
			"Animation,Foreground,Centre,f.png,320,240,10,x":             "frame_delay",
			"Animation,Foreground,Centre,f.png,320,240,10,50,LoopOnce,x": "loop_type",
		} {
			_, err := ParseObject(line, osufile.LatestVersion)
			var bad *ObjectFieldError
			if !errors.As(err, &bad) {
				t.Fatalf("%q: expected ObjectFieldError, got %v", line, err)
			}
			if bad.Field != field {
				t.Fatalf("%q: field = %q, want %q", line, bad.Field, field)
			}
		}
	})
}

func TestObjectRender(t *testing.T) {
	t.Run("sprite_round_trip", func(t *testing.T) {
		line := `Sprite,Background,Centre,"bg.png",320,240`
		obj, err := ParseObject(line, osufile.LatestVersion)
		if err != nil {
			t.Fatalf("ParseObject failed: %v", err)
		}
		if got := obj.Render(osufile.LatestVersion); got != line {
			t.Fatalf("render = %q, want %q", got, line)
		}
	})

	t.Run("legacy_enum_spelling", func(t *testing.T) {
		obj, err := ParseObject("Sprite,Pass,TopLeft,bg.png,0,0", osufile.LatestVersion)
		if err != nil {
			t.Fatalf("ParseObject failed: %v", err)
		}
		want := "Sprite,2,0,bg.png,0,0"
		if got := obj.Render(5); got != want {
			t.Fatalf("render = %q, want %q", got, want)
		}
	})

	t.Run("fractional_scale_round_trip", func(t *testing.T) {
		line := "Sprite,Background,Centre,bg.png,320.50,240.00"
		obj, err := ParseObject(line, osufile.LatestVersion)
		if err != nil {
			t.Fatalf("ParseObject failed: %v", err)
		}
		if got := obj.Render(osufile.LatestVersion); got != line {
			t.Fatalf("render = %q, want %q", got, line)
		}
	})

	t.Run("animation_round_trip", func(t *testing.T) {
		line := "Animation,Foreground,BottomRight,frames.png,12.5,-16,10,41.70,LoopOnce"
		obj, err := ParseObject(line, osufile.LatestVersion)
		if err != nil {
			t.Fatalf("ParseObject failed: %v", err)
		}
		if got := obj.Render(osufile.LatestVersion); got != line {
			t.Fatalf("render = %q, want %q", got, line)
		}
	})
}
