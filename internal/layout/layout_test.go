package layout

import (
	"testing"

	"deckwright/internal/deck"
)

func TestSelectRuleOrder(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want Name
	}{
		{"first with image", Input{Index: 0, Total: 5, HasImage: true, BulletCount: 3}, HeroBackground},
		{"first without image", Input{Index: 0, Total: 5, BulletCount: 3}, BoldSectionDivider},
		{"single slide deck", Input{Index: 0, Total: 1, BulletCount: 3}, BoldSectionDivider},
		{"last slide", Input{Index: 4, Total: 5, HasImage: true, BulletCount: 1}, Conclusion},
		{"image few bullets", Input{Index: 2, Total: 5, HasImage: true, BulletCount: 2}, HeroRight},
		{"image one bullet", Input{Index: 2, Total: 5, HasImage: true, BulletCount: 1}, HeroRight},
		{"image many bullets", Input{Index: 2, Total: 5, HasImage: true, BulletCount: 3}, TwoColumn},
		{"dense", Input{Index: 2, Total: 5, BulletCount: 4}, CardLayout},
		{"sparse", Input{Index: 2, Total: 5, BulletCount: 2}, MinimalText},
		{"standard", Input{Index: 2, Total: 5, BulletCount: 3}, AccentLeftLayout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Select(tc.in); got != tc.want {
				t.Fatalf("Select(%+v) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestSelectFiveSlideDeck(t *testing.T) {
	img := deck.StringPtr("https://images.example/x.jpg")
	slides := []deck.SlideWithImage{
		{Slide: deck.Slide{Number: 1, Bullets: []string{"a", "b", "c"}}},
		{Slide: deck.Slide{Number: 2, Bullets: []string{"a", "b"}}, ImageURL: img},
		{Slide: deck.Slide{Number: 3, Bullets: []string{"a", "b", "c", "d"}}},
		{Slide: deck.Slide{Number: 4, Bullets: []string{"a", "b", "c"}}, ImageURL: img},
		{Slide: deck.Slide{Number: 5, Bullets: []string{"a", "b"}}},
	}
	want := []Name{BoldSectionDivider, HeroRight, CardLayout, TwoColumn, Conclusion}
	for i, slide := range slides {
		if got := SelectSlide(slide, i, len(slides)); got != want[i] {
			t.Fatalf("slide %d: got %s, want %s", i, got, want[i])
		}
	}
}

func TestImageFocusIsNeverSelected(t *testing.T) {
	for total := 1; total <= 8; total++ {
		for index := 0; index < total; index++ {
			for bullets := 0; bullets <= 8; bullets++ {
				for _, hasImage := range []bool{false, true} {
					if got := Select(Input{Index: index, Total: total, HasImage: hasImage, BulletCount: bullets}); got == ImageFocus {
						t.Fatalf("IMAGE_FOCUS selected for index=%d total=%d bullets=%d image=%v", index, total, bullets, hasImage)
					}
				}
			}
		}
	}
}

func TestSelectIsPure(t *testing.T) {
	in := Input{Index: 3, Total: 6, HasImage: true, BulletCount: 3}
	first := Select(in)
	for i := 0; i < 10; i++ {
		if got := Select(in); got != first {
			t.Fatalf("Select not deterministic: %s vs %s", got, first)
		}
	}
}

func TestBlankImageURLCountsAsNoImage(t *testing.T) {
	slide := deck.SlideWithImage{Slide: deck.Slide{Bullets: []string{"a", "b", "c"}}, ImageURL: deck.StringPtr(" ")}
	if got := SelectSlide(slide, 0, 3); got != BoldSectionDivider {
		t.Fatalf("got %s, want %s", got, BoldSectionDivider)
	}
}

func TestTemplateForUnknownFallsBack(t *testing.T) {
	tpl := TemplateFor(Name("NOPE"))
	if tpl.Name != TitleAndBullets {
		t.Fatalf("fallback template = %s", tpl.Name)
	}
}

func TestTemplatesFitCanvas(t *testing.T) {
	for _, name := range All {
		tpl := TemplateFor(name)
		for label, b := range map[string]*Box{"title": tpl.Title, "body": tpl.Body, "image": tpl.Image, "subtitle": tpl.Subtitle, "caption": tpl.Caption} {
			if b == nil {
				continue
			}
			if b.Left < 0 || b.Top < 0 || b.Right() > SlideWidth+1e-9 || b.Bottom() > SlideHeight+1e-9 {
				t.Fatalf("%s %s box %+v exceeds canvas", name, label, *b)
			}
		}
	}
}

func TestTemplateForReturnsCopies(t *testing.T) {
	tpl := TemplateFor(TitleAndBullets)
	tpl.Title.Height = 99
	if TemplateFor(TitleAndBullets).Title.Height == 99 {
		t.Fatal("template mutation leaked into registry")
	}
}
