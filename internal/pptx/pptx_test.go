package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func readPackage(t *testing.T, p *Presentation) map[string]string {
	t.Helper()
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if zr.File[0].Name != "[Content_Types].xml" {
		t.Fatalf("first entry = %s, want [Content_Types].xml", zr.File[0].Name)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(data)
	}
	return parts
}

func assertWellFormed(t *testing.T, name, content string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("%s is not well-formed: %v", name, err)
		}
	}
}

func TestInches(t *testing.T) {
	if got := Inches(1); got != 914400 {
		t.Fatalf("Inches(1) = %d", got)
	}
	if got := Inches(0.5); got != 457200 {
		t.Fatalf("Inches(0.5) = %d", got)
	}
	r := RectInches(0.59, 0.47, 12.15, 0.95)
	if r.X != 539496 || r.Y != 429768 {
		t.Fatalf("unexpected rect %+v", r)
	}
}

func TestWriteEmptyPresentation(t *testing.T) {
	parts := readPackage(t, New(13.333, 7.5))
	for _, name := range []string{
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/notesMasters/notesMaster1.xml",
		"ppt/theme/theme1.xml",
		"_rels/.rels",
		"docProps/app.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Fatalf("missing part %s", name)
		}
	}
	if strings.Contains(parts["ppt/presentation.xml"], "sldIdLst") {
		t.Fatalf("empty deck should not list slides")
	}
	for name, content := range parts {
		assertWellFormed(t, name, content)
	}
}

func TestWriteSlidesWithShapesPicturesAndNotes(t *testing.T) {
	p := New(13.333, 7.5)
	p.Title = "Tides & Currents"
	p.Creator = "deckwright"
	p.Created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p.Palette = Palette{Dark: "0F172A", Light: "#f7f9fc", Accent: "2563EB", Font: "Calibri"}

	first := p.AddSlide()
	first.SetBackground(Fill{Color: "6366F1", GradientTo: "A855F7", GradientAngle: 135})
	first.AddRect(RectInches(0, 0, 13.333, 0.04), Solid("2563EB"))
	first.AddTextBox(RectInches(0.59, 2.6, 12.15, 1.2), Paragraph{
		Text: "Tides <and> \"currents\"", Size: 52, Bold: true, Align: AlignCenter, Color: "0F172A", Font: "Calibri",
	})

	second := p.AddSlide()
	second.SetBackground(Solid("FFFFFF"))
	second.AddRect(RectInches(0, 0, 13.333, 7.5), Fill{Color: "0F172A", Transparency: 0.55})
	second.AddRoundRect(RectInches(0.59, 1.5, 12.15, 5.3), Solid("FFFFFF"), 0.05)
	if err := second.AddPicture(RectInches(6.3, 0, 7, 7.5), []byte("png-bytes"), "png"); err != nil {
		t.Fatalf("AddPicture: %v", err)
	}
	if err := second.AddPicture(RectInches(1, 1, 1, 1), []byte("jpeg-bytes"), "jpeg"); err != nil {
		t.Fatalf("AddPicture: %v", err)
	}
	second.AddTextBox(RectInches(0.59, 1.6, 5.5, 5), Paragraph{Text: "•  one", Size: 20, LineSpacing: 1.4, SpaceAfter: 4})
	second.SetNotes("First line\n\nSecond line")

	parts := readPackage(t, p)
	for name, content := range parts {
		if strings.HasSuffix(name, ".xml") || strings.HasSuffix(name, ".rels") {
			assertWellFormed(t, name, content)
		}
	}

	pres := parts["ppt/presentation.xml"]
	if !strings.Contains(pres, `<p:sldId id="256" r:id="rId5"/>`) || !strings.Contains(pres, `<p:sldId id="257" r:id="rId6"/>`) {
		t.Fatalf("slide list wrong: %s", pres)
	}
	if !strings.Contains(pres, `<p:sldSz cx="12191695" cy="6858000"/>`) {
		t.Fatalf("slide size wrong: %s", pres)
	}

	s1 := parts["ppt/slides/slide1.xml"]
	for _, want := range []string{
		`<a:lin ang="8100000" scaled="0"/>`,
		`Tides &lt;and&gt; &#34;currents&#34;`,
		`sz="5200" b="1"`,
		`algn="ctr"`,
	} {
		if !strings.Contains(s1, want) {
			t.Fatalf("slide1 missing %q", want)
		}
	}

	s2 := parts["ppt/slides/slide2.xml"]
	for _, want := range []string{
		`<a:alpha val="45000"/>`,
		`<a:gd name="adj" fmla="val 5000"/>`,
		`r:embed="rId2"`,
		`r:embed="rId3"`,
		`<a:lnSpc><a:spcPct val="140000"/></a:lnSpc><a:spcAft><a:spcPts val="400"/></a:spcAft>`,
	} {
		if !strings.Contains(s2, want) {
			t.Fatalf("slide2 missing %q", want)
		}
	}
	if parts["ppt/media/image1.png"] != "png-bytes" || parts["ppt/media/image2.jpeg"] != "jpeg-bytes" {
		t.Fatalf("media parts not written")
	}
	if _, ok := parts["ppt/notesSlides/notesSlide1.xml"]; !ok {
		t.Fatalf("notes slide missing")
	}
	if !strings.Contains(parts["ppt/slides/_rels/slide2.xml.rels"], "../notesSlides/notesSlide1.xml") {
		t.Fatalf("slide2 does not link its notes")
	}
	if strings.Contains(parts["ppt/slides/_rels/slide1.xml.rels"], "notesSlide") {
		t.Fatalf("slide1 has no notes and should not link any")
	}
	notes := parts["ppt/notesSlides/notesSlide1.xml"]
	if !strings.Contains(notes, "<a:t>First line</a:t>") || !strings.Contains(notes, "<a:t>Second line</a:t>") {
		t.Fatalf("notes text missing: %s", notes)
	}

	ct := parts["[Content_Types].xml"]
	for _, want := range []string{`Extension="png"`, `Extension="jpeg"`, `/ppt/slides/slide2.xml`, `/ppt/notesSlides/notesSlide1.xml`} {
		if !strings.Contains(ct, want) {
			t.Fatalf("content types missing %q", want)
		}
	}
	if !strings.Contains(parts["ppt/theme/theme1.xml"], `<a:lt1><a:srgbClr val="F7F9FC"/></a:lt1>`) {
		t.Fatalf("palette not applied to theme")
	}
	if !strings.Contains(parts["docProps/core.xml"], "<dc:title>Tides &amp; Currents</dc:title>") {
		t.Fatalf("core title missing")
	}
}

func TestAddPictureRejectsUnknownFormat(t *testing.T) {
	s := New(10, 7.5).AddSlide()
	if err := s.AddPicture(RectInches(0, 0, 1, 1), []byte("x"), "webp"); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if err := s.AddPicture(RectInches(0, 0, 1, 1), nil, "png"); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage for empty data, got %v", err)
	}
	if s.PictureCount() != 0 {
		t.Fatalf("rejected pictures should not be added")
	}
}

func TestNormalizeColor(t *testing.T) {
	cases := map[Color]string{"#abcdef": "ABCDEF", "123456": "123456", "xyz": "000000", "GGGGGG": "000000"}
	for in, want := range cases {
		if got := normalizeColor(in); got != want {
			t.Fatalf("normalizeColor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLanguageAppliesToTextRunsAndNotes(t *testing.T) {
	p := New(13.333, 7.5)
	s := p.AddSlide()
	s.AddTextBox(RectInches(1, 1, 5, 1), Paragraph{Text: "Hallo"})
	s.SetNotes("Notizen\n\nEnde")

	parts := readPackage(t, p)
	if !strings.Contains(parts["ppt/slides/slide1.xml"], `<a:rPr lang="en-US"`) {
		t.Fatalf("expected en-US default")
	}

	p.Language = "de-DE"
	parts = readPackage(t, p)
	if !strings.Contains(parts["ppt/slides/slide1.xml"], `<a:rPr lang="de-DE"`) {
		t.Fatalf("slide runs not tagged de-DE")
	}
	notes := parts["ppt/notesSlides/notesSlide1.xml"]
	if strings.Contains(notes, "en-US") || !strings.Contains(notes, `<a:endParaRPr lang="de-DE"`) {
		t.Fatalf("notes not tagged de-DE: %s", notes)
	}
}
