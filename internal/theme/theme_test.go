package theme

import "testing"

func TestLookupNormalizesAndFallsBack(t *testing.T) {
	if got := Lookup("  dark_tech "); got.ID != DarkTech {
		t.Fatalf("Lookup normalized name = %q, want %q", got.ID, DarkTech)
	}
	if got := Lookup(""); got.ID != Default {
		t.Fatalf("blank name = %q, want default", got.ID)
	}
	if got := Lookup("NEON"); got.ID != Default {
		t.Fatalf("unknown name = %q, want default", got.ID)
	}
	if Known("NEON") || !Known("minimal_clean") {
		t.Fatal("unexpected Known result")
	}
}

func TestThemesShareTypography(t *testing.T) {
	for _, id := range IDs() {
		th := Lookup(id)
		if th.FontFamily != "Calibri" || th.TitleSize != 48 || th.BodySize != 22 || th.CaptionSize != 18 {
			t.Fatalf("%s: unexpected typography %+v", id, th)
		}
	}
	if len(IDs()) != 5 {
		t.Fatalf("expected 5 themes, got %d", len(IDs()))
	}
}

func TestOnlyBoldGradientUsesGradient(t *testing.T) {
	for _, id := range IDs() {
		th := Lookup(id)
		if th.UseGradient != (id == BoldGradient) {
			t.Fatalf("%s: UseGradient = %v", id, th.UseGradient)
		}
	}
	bold := Lookup(BoldGradient)
	if bold.GradientStart.Hex() != "6366F1" || bold.GradientEnd.Hex() != "A855F7" {
		t.Fatalf("unexpected gradient %s -> %s", bold.GradientStart.Hex(), bold.GradientEnd.Hex())
	}
}

func TestDisplayName(t *testing.T) {
	if got := Lookup(LightProfessional).DisplayName(); got != "Light Professional" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := Lookup(DarkTech).DisplayName(); got != "Dark Tech" {
		t.Fatalf("DisplayName = %q", got)
	}
}
