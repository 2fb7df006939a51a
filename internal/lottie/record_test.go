package lottie

import "testing"

func TestFromPayload_Fields(t *testing.T) {
	rec, ok := FromPayload(decode(t, validBody))
	if !ok {
		t.Fatal("FromPayload rejected a valid payload")
	}
	if rec.BMVersion != "5.5.2" {
		t.Errorf("BMVersion: got %q, want 5.5.2", rec.BMVersion)
	}
	if rec.NumLayers != 1 {
		t.Errorf("NumLayers: got %d, want 1", rec.NumLayers)
	}
	if rec.Width != 100 || rec.Height != 100 {
		t.Errorf("size: got %gx%g, want 100x100", rec.Width, rec.Height)
	}
	if rec.FrameRate != 30 {
		t.Errorf("FrameRate: got %g, want 30", rec.FrameRate)
	}
	if rec.NumFrames != 30 {
		t.Errorf("NumFrames: got %g, want 30", rec.NumFrames)
	}
	if rec.Meta != nil {
		t.Errorf("Meta: got %v, want nil", rec.Meta)
	}
}

func TestFromPayload_FrameCountNotClamped(t *testing.T) {
	obj := decode(t, validBody)
	obj["ip"] = 50.0
	obj["op"] = 20.0
	rec, ok := FromPayload(obj)
	if !ok {
		t.Fatal("FromPayload rejected payload")
	}
	if rec.NumFrames != -30 {
		t.Errorf("NumFrames: got %g, want -30 (no clamping)", rec.NumFrames)
	}
}

func TestFromPayload_FractionalFrames(t *testing.T) {
	obj := decode(t, validBody)
	obj["ip"] = 0.5
	obj["op"] = 24.25
	rec, _ := FromPayload(obj)
	if rec.NumFrames != 23.75 {
		t.Errorf("NumFrames: got %g, want 23.75", rec.NumFrames)
	}
}

func TestFromPayload_MetaCopied(t *testing.T) {
	obj := decode(t, validBody)
	obj["meta"] = map[string]any{"g": "LottieFiles", "a": "someone", "k": []any{"loader"}}
	rec, _ := FromPayload(obj)
	if rec.Meta == nil {
		t.Fatal("Meta not copied")
	}
	if rec.Meta["g"] != "LottieFiles" {
		t.Errorf("Meta[g]: got %v", rec.Meta["g"])
	}
}

func TestFromPayload_RejectsShapeMismatch(t *testing.T) {
	obj := decode(t, validBody)
	delete(obj, "fr")
	if _, ok := FromPayload(obj); ok {
		t.Error("FromPayload accepted payload without fr")
	}
}
